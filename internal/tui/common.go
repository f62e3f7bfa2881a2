package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// viewState represents the currently active view.
type viewState int

const (
	viewCheckin viewState = iota
	viewHistory
	viewGoals
	viewInsights
)

var viewNames = []string{"Check-in", "History", "Goals", "Insights"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// dataChangedMsg is sent after any write so every view reloads.
type dataChangedMsg struct {
	status string
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}

func changedCmd(status string) tea.Cmd {
	return func() tea.Msg {
		return dataChangedMsg{status: status}
	}
}

// --- Confirmation ---

// confirmPrompt is a yes/no huh form guarding a destructive action.
type confirmPrompt struct {
	title  string
	form   *huh.Form
	answer *bool
	action tea.Cmd
}

func newConfirmPrompt(title string, action tea.Cmd) *confirmPrompt {
	answer := false
	c := &confirmPrompt{title: title, answer: &answer, action: action}
	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(c.answer),
		),
	).WithShowHelp(false)
	return c
}

// update feeds msg to the form. done reports that the prompt should close;
// cmd carries the action when the user said yes.
func (c *confirmPrompt) update(msg tea.Msg) (done bool, cmd tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		return true, nil
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	switch c.form.State {
	case huh.StateCompleted:
		if *c.answer {
			return true, c.action
		}
		return true, nil
	case huh.StateAborted:
		return true, nil
	}
	return false, cmd
}

func (c *confirmPrompt) view() string {
	return c.form.View()
}

// --- Helpers ---

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func formatSleep(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatLevel(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func formatNotes(v *string) string {
	if v == nil {
		return ""
	}
	return truncate(*v, 50)
}

func moodBar(score int) string {
	return fmt.Sprintf("%-10s", strings.Repeat("█", score))
}
