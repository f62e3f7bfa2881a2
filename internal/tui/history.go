package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/moodlog/internal/store"
	"github.com/sadopc/moodlog/internal/tracker"
)

type historyModel struct {
	svc    *tracker.Service
	width  int
	height int

	entries []store.MoodEntry
	cursor  int
	offset  int // first visible row

	confirm *confirmPrompt
}

func newHistoryModel(svc *tracker.Service) historyModel {
	return historyModel{svc: svc}
}

func (h *historyModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

func (h historyModel) confirming() bool { return h.confirm != nil }

type historyDataMsg struct {
	entries []store.MoodEntry
}

func (h historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, err := h.svc.History(context.Background(), 0)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Failed to load history: %v", err), isError: true}
		}
		return historyDataMsg{entries: entries}
	}
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	if msg, ok := msg.(historyDataMsg); ok {
		h.entries = msg.entries
		if h.cursor >= len(h.entries) {
			h.cursor = max(0, len(h.entries)-1)
		}
		h.clampOffset()
		return h, nil
	}
	if h.confirm != nil {
		done, cmd := h.confirm.update(msg)
		if done {
			h.confirm = nil
		}
		return h, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Up):
			if h.cursor > 0 {
				h.cursor--
			}
			h.clampOffset()
		case key.Matches(msg, keys.Down):
			if h.cursor < len(h.entries)-1 {
				h.cursor++
			}
			h.clampOffset()
		case key.Matches(msg, keys.Delete):
			if len(h.entries) == 0 {
				return h, statusCmd("Please select an entry to delete.", true)
			}
			e := h.entries[h.cursor]
			h.confirm = newConfirmPrompt(
				fmt.Sprintf("Delete the %s entry (mood %d)?", e.Date, e.MoodScore),
				h.deleteEntry(e.ID),
			)
			return h, h.confirm.form.Init()
		case key.Matches(msg, keys.DeleteDay):
			if len(h.entries) == 0 {
				return h, statusCmd("Please select an entry to delete.", true)
			}
			date := h.entries[h.cursor].Date
			h.confirm = newConfirmPrompt(
				fmt.Sprintf("Delete all %d entries on %s?", h.countOn(date), date),
				h.deleteDay(date),
			)
			return h, h.confirm.form.Init()
		}
	}
	return h, nil
}

func (h historyModel) countOn(date string) int {
	n := 0
	for _, e := range h.entries {
		if e.Date == date {
			n++
		}
	}
	return n
}

func (h historyModel) deleteEntry(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := h.svc.DeleteEntry(context.Background(), id); err != nil {
			return statusMsg{text: fmt.Sprintf("Failed to delete entry: %v", err), isError: true}
		}
		return dataChangedMsg{status: "Entry deleted successfully!"}
	}
}

func (h historyModel) deleteDay(date string) tea.Cmd {
	return func() tea.Msg {
		n, err := h.svc.DeleteEntriesOn(context.Background(), date)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Failed to delete entries: %v", err), isError: true}
		}
		return dataChangedMsg{status: fmt.Sprintf("Deleted %d entries from %s", n, date)}
	}
}

// visibleRows is how many table rows fit below the title and header.
func (h historyModel) visibleRows() int {
	return max(1, h.height-10)
}

func (h *historyModel) clampOffset() {
	rows := h.visibleRows()
	if h.cursor < h.offset {
		h.offset = h.cursor
	}
	if h.cursor >= h.offset+rows {
		h.offset = h.cursor - rows + 1
	}
	if h.offset < 0 {
		h.offset = 0
	}
}

func (h historyModel) view() string {
	w := h.width - 4
	title := titleStyle.Render("History") + "  " + mutedStyle.Render(fmt.Sprintf("%d entries", len(h.entries)))

	if h.confirm != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", h.confirm.view())
		return activePanelStyle.Width(w).Render(content)
	}

	if len(h.entries) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No entries yet. Press 1 to log a check-in."),
		)
		return panelStyle.Width(w).Render(content)
	}

	rows := []string{title, ""}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-10s %4s %6s %6s %6s %7s  %s",
		"Date", "Mood", "Energy", "Sleep", "Stress", "Anxiety", "Notes")))

	end := min(len(h.entries), h.offset+h.visibleRows())
	for i := h.offset; i < end; i++ {
		e := h.entries[i]
		cursor := "  "
		style := normalItemStyle
		if i == h.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-10s %4d %6d %6s %6s %7s  %s",
			cursor, e.Date, e.MoodScore, e.EnergyLevel,
			formatSleep(e.SleepHours), formatLevel(e.StressLevel), formatLevel(e.AnxietyLevel),
			formatNotes(e.Notes))))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  d: delete entry  D: delete all entries on date  ↑/↓: move"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
