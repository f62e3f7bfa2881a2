package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/moodlog/internal/insights"
	"github.com/sadopc/moodlog/internal/store"
	"github.com/sadopc/moodlog/internal/tracker"
)

const chartedDays = 14

type insightsModel struct {
	svc    *tracker.Service
	width  int
	height int

	report *insights.Report
	recent []insights.DayMood
	loaded bool

	moodChart  barchart.Model
	sleepChart barchart.Model
	text       viewport.Model
}

func newInsightsModel(svc *tracker.Service) insightsModel {
	return insightsModel{
		svc:        svc,
		moodChart:  barchart.New(40, 10),
		sleepChart: barchart.New(24, 10),
		text:       viewport.New(60, 10),
	}
}

func (m *insightsModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.text.Width = max(20, w-8)
	m.text.Height = max(3, h-m.chartHeight()-10)
	m.buildCharts()
}

type insightsDataMsg struct {
	report *insights.Report // nil when nothing is logged
	recent []insights.DayMood
}

func (m insightsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		r, err := m.svc.Insights(ctx)
		if err != nil && !errors.Is(err, insights.ErrEmptyDataset) {
			return statusMsg{text: fmt.Sprintf("Failed to generate insights: %v", err), isError: true}
		}
		entries, err := m.svc.History(ctx, chartedDays)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Failed to generate insights: %v", err), isError: true}
		}
		return insightsDataMsg{report: r, recent: insights.RecentMoods(entries, chartedDays)}
	}
}

func (m insightsModel) update(msg tea.Msg) (insightsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case insightsDataMsg:
		m.report = msg.report
		m.recent = msg.recent
		m.loaded = true
		m.text.SetContent(insights.Render(m.report))
		m.text.GotoTop()
		m.buildCharts()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Refresh) {
			return m, tea.Sequence(m.refresh(), statusCmd("Insights regenerated", false))
		}
	}

	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	return m, cmd
}

func (m insightsModel) chartHeight() int {
	if m.height > 36 {
		return 12
	}
	return 8
}

func (m *insightsModel) buildCharts() {
	h := m.chartHeight()
	moodWidth := max(20, (m.width-12)*2/3)
	sleepWidth := max(12, m.width-12-moodWidth)

	m.moodChart = barchart.New(moodWidth, h)
	var moods []barchart.BarData
	for _, d := range m.recent {
		moods = append(moods, barchart.BarData{
			Label: dayLabel(d.Date),
			Values: []barchart.BarValue{{
				Name:  d.Date,
				Value: float64(d.Mood),
				Style: lipgloss.NewStyle().Foreground(moodColor(d.Mood)),
			}},
		})
	}
	if len(moods) > 0 {
		m.moodChart.PushAll(moods)
		m.moodChart.Draw()
	}

	m.sleepChart = barchart.New(sleepWidth, h)
	var sleep []barchart.BarData
	if m.report != nil {
		for _, b := range m.report.Sleep {
			sleep = append(sleep, barchart.BarData{
				Label: fmt.Sprintf("~%dh", b.Hours),
				Values: []barchart.BarValue{{
					Name:  fmt.Sprintf("%d hours", b.Hours),
					Value: b.MeanMood,
					Style: lipgloss.NewStyle().Foreground(colorSecondary),
				}},
			})
		}
	}
	if len(sleep) > 0 {
		m.sleepChart.PushAll(sleep)
		m.sleepChart.Draw()
	}
}

// dayLabel shortens 2024-03-01 to 03-01.
func dayLabel(date string) string {
	if len(date) == len(store.DateLayout) {
		return date[5:]
	}
	return date
}

func moodColor(score int) lipgloss.Color {
	switch {
	case score <= 3:
		return colorError
	case score <= 6:
		return colorWarning
	}
	return colorSuccess
}

func (m insightsModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Insights")

	if !m.loaded {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("Generating insights..."),
		))
	}
	if m.report == nil {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render(insights.EmptyMessage),
			"", mutedStyle.Render("  Log a check-in first, then press r."),
		))
	}

	moodPanel := lipgloss.JoinVertical(lipgloss.Left,
		subtitleStyle.Render(fmt.Sprintf("Mood, last %d entries", len(m.recent))),
		m.moodChart.View(),
	)
	sleepPanel := lipgloss.JoinVertical(lipgloss.Left,
		subtitleStyle.Render("Mean mood by sleep"),
		m.sleepChart.View(),
	)
	charts := lipgloss.JoinHorizontal(lipgloss.Top, moodPanel, "    ", sleepPanel)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", charts, "", m.text.View(), "",
		mutedStyle.Render("  r: regenerate  ↑/↓: scroll"),
	))
}
