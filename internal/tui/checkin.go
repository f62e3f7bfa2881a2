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

const recentCheckins = 5

// checkinFields backs the form. Held by pointer so values survive the model
// copies bubbletea makes, and so a rejected submission reopens with them.
type checkinFields struct {
	date        string
	mood        int
	energy      int
	sleep       string
	stress      int // 0 = not recorded
	anxiety     int
	activities  string
	triggers    string
	medications string
	notes       string
}

func (f *checkinFields) reset(in tracker.MoodInput) {
	*f = checkinFields{
		date:        in.Date,
		mood:        in.Mood,
		energy:      in.Energy,
		sleep:       in.Sleep,
		activities:  in.Activities,
		triggers:    in.Triggers,
		medications: in.Medications,
		notes:       in.Notes,
	}
	if in.Stress != nil {
		f.stress = *in.Stress
	}
	if in.Anxiety != nil {
		f.anxiety = *in.Anxiety
	}
}

func (f *checkinFields) input() tracker.MoodInput {
	in := tracker.MoodInput{
		Date:        f.date,
		Mood:        f.mood,
		Energy:      f.energy,
		Sleep:       f.sleep,
		Activities:  f.activities,
		Triggers:    f.triggers,
		Medications: f.medications,
		Notes:       f.notes,
	}
	if f.stress > 0 {
		stress := f.stress
		in.Stress = &stress
	}
	if f.anxiety > 0 {
		anxiety := f.anxiety
		in.Anxiety = &anxiety
	}
	return in
}

type checkinModel struct {
	svc    *tracker.Service
	width  int
	height int

	recent []store.MoodEntry

	formActive bool
	form       *huh.Form
	fields     *checkinFields
	formErr    string
}

func newCheckinModel(svc *tracker.Service) checkinModel {
	f := &checkinFields{}
	f.reset(tracker.DefaultMoodInput(svc.Now()))
	return checkinModel{
		svc:    svc,
		fields: f,
	}
}

func (c *checkinModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type checkinDataMsg struct {
	recent []store.MoodEntry
}

func (c checkinModel) refresh() tea.Cmd {
	return func() tea.Msg {
		recent, _ := c.svc.History(context.Background(), recentCheckins)
		return checkinDataMsg{recent: recent}
	}
}

func (c checkinModel) update(msg tea.Msg) (checkinModel, tea.Cmd) {
	if msg, ok := msg.(checkinDataMsg); ok {
		c.recent = msg.recent
		return c, nil
	}
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.New), key.Matches(msg, keys.Enter):
			c.fields.reset(tracker.DefaultMoodInput(c.svc.Now()))
			c.formErr = ""
			return c.openForm()
		}
	}
	return c, nil
}

func scoreOptions() []huh.Option[int] {
	return huh.NewOptions(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
}

func optionalScoreOptions() []huh.Option[int] {
	return append([]huh.Option[int]{huh.NewOption("not recorded", 0)}, scoreOptions()...)
}

// openForm builds the form over the current field values.
func (c checkinModel) openForm() (checkinModel, tea.Cmd) {
	f := c.fields
	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(&f.date),
			huh.NewSelect[int]().Title("Mood (1-10)").Options(scoreOptions()...).Inline(true).Value(&f.mood),
			huh.NewSelect[int]().Title("Energy (1-10)").Options(scoreOptions()...).Inline(true).Value(&f.energy),
			huh.NewInput().Title("Sleep hours").Placeholder("leave empty if unknown").Value(&f.sleep),
			huh.NewSelect[int]().Title("Stress (1-10)").Options(optionalScoreOptions()...).Inline(true).Value(&f.stress),
			huh.NewSelect[int]().Title("Anxiety (1-10)").Options(optionalScoreOptions()...).Inline(true).Value(&f.anxiety),
		),
		huh.NewGroup(
			huh.NewInput().Title("Activities (comma-separated)").Value(&f.activities),
			huh.NewInput().Title("Triggers").Value(&f.triggers),
			huh.NewInput().Title("Medications").Value(&f.medications),
			huh.NewText().Title("Notes").Lines(4).Value(&f.notes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c checkinModel) updateForm(msg tea.Msg) (checkinModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			c.formErr = ""
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		c.form = nil
		return c.submit()
	}
	return c, cmd
}

func (c checkinModel) submit() (checkinModel, tea.Cmd) {
	_, err := c.svc.LogMood(context.Background(), c.fields.input())
	if tracker.IsValidation(err) {
		c.formErr = err.Error()
		next, cmd := c.openForm()
		return next, tea.Batch(cmd, statusCmd("Invalid entry: "+err.Error(), true))
	}
	if err != nil {
		return c, statusCmd(fmt.Sprintf("Failed to save entry: %v", err), true)
	}

	c.formErr = ""
	c.fields.reset(tracker.DefaultMoodInput(c.svc.Now()))
	return c, changedCmd("Entry saved successfully!")
}

func (c checkinModel) view() string {
	w := c.width - 4

	if c.formActive && c.form != nil {
		rows := []string{titleStyle.Render("New Check-in")}
		if c.formErr != "" {
			rows = append(rows, errorStyle.Render(c.formErr))
		}
		rows = append(rows, "", c.form.View())
		return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	today := c.svc.Now().Format(store.DateLayout)
	return lipgloss.JoinVertical(lipgloss.Left,
		c.renderTodayPanel(w, today),
		c.renderRecentPanel(w),
	)
}

func (c checkinModel) renderTodayPanel(w int, today string) string {
	title := titleStyle.Render("Today") + "  " + mutedStyle.Render(today)

	var logged []store.MoodEntry
	for _, e := range c.recent {
		if e.Date == today {
			logged = append(logged, e)
		}
	}

	if len(logged) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No check-in yet today. Press n to log how you feel."),
		)
		return panelStyle.Width(w).Render(content)
	}

	rows := []string{title, ""}
	for _, e := range logged {
		rows = append(rows, fmt.Sprintf("  mood %s %2d   energy %2d   sleep %s",
			highlightStyle.Render(moodBar(e.MoodScore)), e.MoodScore, e.EnergyLevel, formatSleep(e.SleepHours)))
	}
	rows = append(rows, "", mutedStyle.Render("  n: log another check-in"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (c checkinModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Check-ins")
	if len(c.recent) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No entries yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	rows := []string{title}
	for _, e := range c.recent {
		rows = append(rows, fmt.Sprintf("  %s  %s %2d  %s",
			e.Date, highlightStyle.Render(moodBar(e.MoodScore)), e.MoodScore, mutedStyle.Render(formatNotes(e.Notes))))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
