package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/sadopc/moodlog/internal/insights"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const reportTitle = "Mental Health Insights"

type reportMeta struct {
	Title      string `yaml:"title"`
	ExportDate string `yaml:"export_date"`
	Entries    int    `yaml:"entries"`
}

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		&frontmatter.Extender{},
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		goldmarkhtml.WithXHTML(),
	),
)

var page = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.75rem; text-align: left; }
.meta { color: #777; font-size: 0.9rem; }
</style>
</head>
<body>
<p class="meta">Exported {{.ExportDate}}</p>
{{.Body}}
</body>
</html>
`))

// ToMarkdown writes the insights report as GitHub-flavoured Markdown with a
// YAML front matter block.
func ToMarkdown(r *insights.Report, exportedAt time.Time, path string) error {
	if err := writeFile(path, []byte(renderMarkdown(r, exportedAt))); err != nil {
		return fmt.Errorf("write markdown file: %w", err)
	}
	return nil
}

// ToHTML renders the Markdown report to a standalone HTML page.
func ToHTML(r *insights.Report, exportedAt time.Time, path string) error {
	data, err := renderHTML(renderMarkdown(r, exportedAt))
	if err != nil {
		return err
	}
	if err := writeFile(path, data); err != nil {
		return fmt.Errorf("write html file: %w", err)
	}
	return nil
}

func renderHTML(source string) ([]byte, error) {
	ctx := parser.NewContext()
	var body bytes.Buffer
	if err := md.Convert([]byte(source), &body, parser.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	meta := reportMeta{Title: reportTitle}
	if fm := frontmatter.Get(ctx); fm != nil {
		if err := fm.Decode(&meta); err != nil {
			return nil, fmt.Errorf("decode front matter: %w", err)
		}
	}

	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title      string
		ExportDate string
		Body       template.HTML
	}{meta.Title, meta.ExportDate, template.HTML(body.String())})
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return out.Bytes(), nil
}

func renderMarkdown(r *insights.Report, exportedAt time.Time) string {
	count := 0
	if r != nil {
		count = r.Count
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", reportTitle)
	fmt.Fprintf(&b, "export_date: %q\n", exportedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "entries: %d\n", count)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", reportTitle)

	if r == nil {
		b.WriteString(insights.EmptyMessage + "\n")
		return b.String()
	}

	title := cases.Title(language.English)

	fmt.Fprintf(&b, "**Analysis period:** %s to %s  \n", r.PeriodStart, r.PeriodEnd)
	fmt.Fprintf(&b, "**Total entries:** %d\n\n", r.Count)

	b.WriteString("## Averages\n\n")
	b.WriteString("| Metric | Average |\n|---|---|\n")
	fmt.Fprintf(&b, "| Mood Score | %.1f/10 |\n", r.Averages.Mood)
	fmt.Fprintf(&b, "| Energy Level | %.1f/10 |\n", r.Averages.Energy)
	fmt.Fprintf(&b, "| Sleep Hours | %s |\n", mdOptional(r.Averages.Sleep, " hours"))
	fmt.Fprintf(&b, "| Stress Level | %s |\n", mdOptional(r.Averages.Stress, "/10"))
	fmt.Fprintf(&b, "| Anxiety Level | %s |\n\n", mdOptional(r.Averages.Anxiety, "/10"))

	if r.Trend != nil {
		b.WriteString("## Recent Trend\n\n")
		fmt.Fprintf(&b, "**%s** over the last %d entries (mood %d → %d).\n\n",
			title.String(r.Trend.Direction), r.Trend.Window, r.Trend.Oldest, r.Trend.Newest)
	}

	if len(r.Sleep) > 0 {
		b.WriteString("## Sleep Insights\n\n")
		b.WriteString("| Sleep (h) | Mean Mood | Entries |\n|---|---|---|\n")
		for _, s := range r.Sleep {
			fmt.Fprintf(&b, "| ~%d | %.1f | %d |\n", s.Hours, s.MeanMood, s.Entries)
		}
		b.WriteString("\n")
	}

	if r.Goals != nil {
		b.WriteString("## Goal Progress\n\n")
		fmt.Fprintf(&b, "%d of %d goals completed (%.1f%%)\n\n", r.Goals.Completed, r.Goals.Total, r.Goals.Percent)
	}

	b.WriteString("## Recommendations\n\n")
	for _, rec := range r.Recommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}
	return b.String()
}

func mdOptional(v *float64, unit string) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%s", *v, unit)
}
