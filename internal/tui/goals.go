package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/moodlog/internal/store"
	"github.com/sadopc/moodlog/internal/tracker"
)

type goalsModel struct {
	svc    *tracker.Service
	width  int
	height int

	goals  []store.Goal
	cursor int

	formActive bool
	form       *huh.Form
	formErr    string

	// Form field pointers (survive value copies)
	formTitle  *string
	formDesc   *string
	formTarget *string

	confirm *confirmPrompt
}

func newGoalsModel(svc *tracker.Service) goalsModel {
	title, desc, target := "", "", ""
	return goalsModel{
		svc:        svc,
		formTitle:  &title,
		formDesc:   &desc,
		formTarget: &target,
	}
}

func (g *goalsModel) setSize(w, h int) {
	g.width = w
	g.height = h
}

type goalsDataMsg struct {
	goals []store.Goal
}

func (g goalsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		goals, err := g.svc.Goals(context.Background())
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Failed to load goals: %v", err), isError: true}
		}
		return goalsDataMsg{goals: goals}
	}
}

func (g goalsModel) update(msg tea.Msg) (goalsModel, tea.Cmd) {
	if msg, ok := msg.(goalsDataMsg); ok {
		g.goals = msg.goals
		if g.cursor >= len(g.goals) {
			g.cursor = max(0, len(g.goals)-1)
		}
		return g, nil
	}
	if g.formActive && g.form != nil {
		return g.updateForm(msg)
	}
	if g.confirm != nil {
		done, cmd := g.confirm.update(msg)
		if done {
			g.confirm = nil
		}
		return g, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Up):
			if g.cursor > 0 {
				g.cursor--
			}
		case key.Matches(msg, keys.Down):
			if g.cursor < len(g.goals)-1 {
				g.cursor++
			}
		case key.Matches(msg, keys.New):
			*g.formTitle, *g.formDesc, *g.formTarget = "", "", ""
			g.formErr = ""
			return g.showGoalForm()
		case key.Matches(msg, keys.Toggle):
			if len(g.goals) == 0 {
				return g, statusCmd("Please select a goal to complete.", true)
			}
			return g, g.toggle(g.goals[g.cursor])
		case key.Matches(msg, keys.Delete):
			if len(g.goals) == 0 {
				return g, statusCmd("Please select a goal to delete.", true)
			}
			goal := g.goals[g.cursor]
			g.confirm = newConfirmPrompt(
				fmt.Sprintf("Delete goal %q?", goal.Title),
				g.delete(goal.ID),
			)
			return g, g.confirm.form.Init()
		}
	}
	return g, nil
}

func (g goalsModel) toggle(goal store.Goal) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if goal.Completed {
			if err := g.svc.ReopenGoal(ctx, goal.ID); err != nil {
				return statusMsg{text: fmt.Sprintf("Failed to reopen goal: %v", err), isError: true}
			}
			return dataChangedMsg{status: "Goal reopened"}
		}
		if err := g.svc.CompleteGoal(ctx, goal.ID); err != nil {
			return statusMsg{text: fmt.Sprintf("Failed to complete goal: %v", err), isError: true}
		}
		return dataChangedMsg{status: "Goal marked as completed!"}
	}
}

func (g goalsModel) delete(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := g.svc.DeleteGoal(context.Background(), id); err != nil {
			return statusMsg{text: fmt.Sprintf("Failed to delete goal: %v", err), isError: true}
		}
		return dataChangedMsg{status: "Goal deleted successfully!"}
	}
}

func (g goalsModel) showGoalForm() (goalsModel, tea.Cmd) {
	g.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Goal Title").Value(g.formTitle).Validate(huh.ValidateNotEmpty()),
			huh.NewText().Title("Description").Lines(3).Value(g.formDesc),
			huh.NewInput().Title("Target Date (YYYY-MM-DD)").Placeholder("optional").Value(g.formTarget),
		),
	).WithShowHelp(true).WithShowErrors(true)

	g.formActive = true
	return g, g.form.Init()
}

func (g goalsModel) updateForm(msg tea.Msg) (goalsModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			g.formActive = false
			g.form = nil
			g.formErr = ""
			return g, nil
		}
	}

	form, cmd := g.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		g.form = f
	}

	if g.form.State == huh.StateCompleted {
		g.formActive = false
		g.form = nil

		_, err := g.svc.AddGoal(context.Background(), tracker.GoalInput{
			Title:       *g.formTitle,
			Description: *g.formDesc,
			TargetDate:  *g.formTarget,
		})
		if tracker.IsValidation(err) {
			g.formErr = err.Error()
			next, cmd := g.showGoalForm()
			return next, tea.Batch(cmd, statusCmd("Invalid goal: "+err.Error(), true))
		}
		if err != nil {
			return g, statusCmd(fmt.Sprintf("Failed to add goal: %v", err), true)
		}
		g.formErr = ""
		return g, changedCmd("Goal added successfully!")
	}

	return g, cmd
}

func (g goalsModel) view() string {
	w := g.width - 4

	if g.formActive && g.form != nil {
		rows := []string{titleStyle.Render("New Goal")}
		if g.formErr != "" {
			rows = append(rows, errorStyle.Render(g.formErr))
		}
		rows = append(rows, "", g.form.View())
		return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	if g.confirm != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Goals"), "", g.confirm.view())
		return activePanelStyle.Width(w).Render(content)
	}

	return g.renderGoalList(w)
}

func (g goalsModel) renderGoalList(w int) string {
	title := titleStyle.Render("Goals")

	if len(g.goals) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No goals yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-12s %-28s %-12s %s", "Status", "Title", "Target", "Description"))
	rows = append(rows, header)

	for i, goal := range g.goals {
		status := warningStyle.Render(fmt.Sprintf("%-12s", "In Progress"))
		if goal.Completed {
			status = successStyle.Render(fmt.Sprintf("%-12s", "Completed"))
		}
		cursor := "  "
		style := normalItemStyle
		if i == g.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		target := "No target"
		if goal.TargetDate != nil {
			target = *goal.TargetDate
		}
		desc := ""
		if goal.Description != nil {
			desc = truncate(*goal.Description, 100)
		}
		// Descriptions may span lines; keep one row per goal.
		desc = strings.ReplaceAll(desc, "\n", " ")

		row := style.Render(cursor) + status + " " +
			style.Render(fmt.Sprintf("%-28s %-12s", truncate(goal.Title, 28), target)) +
			" " + mutedStyle.Render(desc)
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  c: complete/reopen  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
