package insights

import (
	"fmt"
	"strings"
)

// EmptyMessage is shown in place of a report when there is nothing to analyse.
const EmptyMessage = "No data available for analysis."

// Render formats a report as the plain-text insights page.
func Render(r *Report) string {
	if r == nil {
		return EmptyMessage + "\n"
	}

	var b strings.Builder
	b.WriteString("=== MENTAL HEALTH INSIGHTS ===\n\n")
	fmt.Fprintf(&b, "Analysis Period: %s to %s\n", r.PeriodStart, r.PeriodEnd)
	fmt.Fprintf(&b, "Total Entries: %d\n\n", r.Count)

	b.WriteString("AVERAGES:\n")
	fmt.Fprintf(&b, "• Mood Score: %.1f/10\n", r.Averages.Mood)
	fmt.Fprintf(&b, "• Energy Level: %.1f/10\n", r.Averages.Energy)
	fmt.Fprintf(&b, "• Sleep Hours: %s hours\n", optional(r.Averages.Sleep))
	fmt.Fprintf(&b, "• Stress Level: %s/10\n", optional(r.Averages.Stress))
	fmt.Fprintf(&b, "• Anxiety Level: %s/10\n\n", optional(r.Averages.Anxiety))

	if r.Trend != nil {
		fmt.Fprintf(&b, "RECENT TREND: Your mood appears to be %s over the last %d entries.\n\n",
			r.Trend.Direction, r.Trend.Window)
	}

	if len(r.Sleep) > 0 {
		b.WriteString("SLEEP INSIGHTS:\n")
		fmt.Fprintf(&b, "• Best mood with ~%d hours of sleep\n", r.Sleep[0].Hours)
		if len(r.Sleep) > 1 {
			fmt.Fprintf(&b, "• Good mood also with ~%d hours\n", r.Sleep[1].Hours)
		}
		b.WriteString("\n")
	}

	if r.Goals != nil {
		b.WriteString("GOAL PROGRESS:\n")
		fmt.Fprintf(&b, "• %d of %d goals completed (%.1f%%)\n\n",
			r.Goals.Completed, r.Goals.Total, r.Goals.Percent)
	}

	b.WriteString("RECOMMENDATIONS:\n")
	for _, rec := range r.Recommendations {
		fmt.Fprintf(&b, "• %s\n", rec)
	}
	return b.String()
}

func optional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", *v)
}
