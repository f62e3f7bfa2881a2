package tui

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/moodlog/internal/tracker"
)

type exportFormat struct {
	label string
	ext   string
}

var exportFormats = []exportFormat{
	{"CSV (mood entries)", "csv"},
	{"JSON (entries and goals)", "json"},
	{"Markdown insights report", "md"},
	{"HTML insights report", "html"},
}

// App is the root Bubble Tea model.
type App struct {
	svc       *tracker.Service
	exportDir string
	width     int
	height    int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	checkin  checkinModel
	history  historyModel
	goals    goalsModel
	insights insightsModel

	help        help.Model
	status      string
	statusError bool
}

// NewApp builds the TUI over svc. Exports are written to exportDir.
func NewApp(svc *tracker.Service, exportDir string) App {
	h := help.New()
	h.ShowAll = false

	return App{
		svc:        svc,
		exportDir:  exportDir,
		activeView: viewCheckin,
		checkin:    newCheckinModel(svc),
		history:    newHistoryModel(svc),
		goals:      newGoalsModel(svc),
		insights:   newInsightsModel(svc),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.refreshAll()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.checkin.setSize(a.width, contentHeight)
		a.history.setSize(a.width, contentHeight)
		a.goals.setSize(a.width, contentHeight)
		a.insights.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (form or confirmation), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewCheckin)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewHistory)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewGoals)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewInsights)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		return a, nil

	case dataChangedMsg:
		a.status = msg.status
		a.statusError = false
		return a, a.refreshAll()

	case exportDoneMsg:
		a.status = "Data exported to " + msg.path
		a.statusError = false
		return a, nil

	// Data loads go to their owner regardless of which view is showing.
	case checkinDataMsg:
		var cmd tea.Cmd
		a.checkin, cmd = a.checkin.update(msg)
		return a, cmd
	case historyDataMsg:
		var cmd tea.Cmd
		a.history, cmd = a.history.update(msg)
		return a, cmd
	case goalsDataMsg:
		var cmd tea.Cmd
		a.goals, cmd = a.goals.update(msg)
		return a, cmd
	case insightsDataMsg:
		var cmd tea.Cmd
		a.insights, cmd = a.insights.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewCheckin:
		a.checkin, cmd = a.checkin.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewGoals:
		a.goals, cmd = a.goals.update(msg)
	case viewInsights:
		a.insights, cmd = a.insights.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewCheckin:
		return a.checkin.formActive
	case viewHistory:
		return a.history.confirming()
	case viewGoals:
		return a.goals.formActive || a.goals.confirm != nil
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewCheckin:
		return a.checkin.refresh()
	case viewHistory:
		return a.history.refresh()
	case viewGoals:
		return a.goals.refresh()
	case viewInsights:
		return a.insights.refresh()
	}
	return nil
}

func (a App) refreshAll() tea.Cmd {
	return tea.Batch(
		a.checkin.refresh(),
		a.history.refresh(),
		a.goals.refresh(),
		a.insights.refresh(),
	)
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewCheckin:
		content = a.checkin.view()
	case viewHistory:
		content = a.history.view()
	case viewGoals:
		content = a.goals.view()
	case viewInsights:
		content = a.insights.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("moodlog")
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := statusBarStyle
		if a.statusError {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)
	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(status)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker() string {
	rows := []string{
		titleStyle.Render("Export Format"),
		mutedStyle.Render("Files are written to " + a.exportDir),
		"",
	}
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f.label))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(exportFormats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(f exportFormat) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		path := filepath.Join(a.exportDir, a.svc.ExportName(f.ext))

		var err error
		switch f.ext {
		case "csv":
			err = a.svc.ExportCSV(ctx, path)
		case "json":
			err = a.svc.ExportJSON(ctx, path)
		default:
			err = a.svc.ExportReport(ctx, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Failed to export data: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
