package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ritmo/internal/core"
	"github.com/sadopc/ritmo/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	lunchStart   *string
	lunchEnd     *string
	shiftStart   *string
	showComplexa *string
	showLocked   *string
	dailyGoal    *string
}

func newSettingsModel(s *store.Store) settingsModel {
	ls, le, ss := "", "", ""
	sc, sl, dg := "", "", ""
	return settingsModel{
		store:        s,
		lunchStart:   &ls,
		lunchEnd:     &le,
		shiftStart:   &ss,
		showComplexa: &sc,
		showLocked:   &sl,
		dailyGoal:    &dg,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	// Load current values
	*s.lunchStart = ""
	*s.lunchEnd = ""
	if lunch, err := s.store.LunchWindow(); err == nil && lunch != nil {
		*s.lunchStart = core.ClockTime(lunch.Start)
		*s.lunchEnd = core.ClockTime(lunch.End)
	}
	shift, _ := s.store.ShiftStart()
	*s.shiftStart = core.ClockTime(shift)
	*s.showComplexa = boolOption(s.getVal("show_complexa", "1"))
	*s.showLocked = boolOption(s.getVal("show_locked_awards", "0"))
	goal, _ := s.store.DailyGoal()
	*s.dailyGoal = strconv.Itoa(goal)

	yesNo := []huh.Option[string]{
		huh.NewOption("Yes", "1"),
		huh.NewOption("No", "0"),
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Lunch start (HH:MM, empty to clear)").Value(s.lunchStart),
			huh.NewInput().Title("Lunch end (HH:MM)").Value(s.lunchEnd),
			huh.NewInput().Title("Shift start (HH:MM)").Value(s.shiftStart),
		).Title("Schedule"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Show complex transactions").Options(yesNo...).Value(s.showComplexa),
			huh.NewSelect[string]().Title("Show locked awards").Options(yesNo...).Value(s.showLocked),
			huh.NewInput().Title("Daily goal (transactions)").Value(s.dailyGoal),
		).Title("Display"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.saveSettings()
		return s, s.refresh()
	}

	return s, cmd
}

func (s settingsModel) saveSettings() {
	start, startOK := clockToSecs(*s.lunchStart)
	end, endOK := clockToSecs(*s.lunchEnd)
	if startOK && endOK && start != end {
		s.store.SetLunchWindow(&core.LunchWindow{Start: start, End: end})
	} else {
		s.store.SetLunchWindow(nil)
	}

	if shift, ok := clockToSecs(*s.shiftStart); ok {
		s.store.SetShiftStart(shift)
	}

	s.store.SetShowComplexa(*s.showComplexa == "1")
	s.store.SetShowLockedAwards(*s.showLocked == "1")

	if goal, err := strconv.Atoi(strings.TrimSpace(*s.dailyGoal)); err == nil && goal > 0 {
		s.store.SetSetting("daily_goal", strconv.Itoa(goal))
	}
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case "lunch_start", "lunch_end":
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
			if secs < 0 {
				return "not set"
			}
			return core.ClockTime(secs)
		}
	case "shift_start":
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
			return core.ClockTime(secs)
		}
	case "show_complexa", "show_locked_awards":
		if v == "1" {
			return "yes"
		}
		return "no"
	case "balance_seconds":
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return core.FormatSigned(int64(f))
		}
	}
	return v
}

func boolOption(v string) string {
	if v == "1" {
		return "1"
	}
	return "0"
}

// clockToSecs parses "HH:MM" into seconds of day.
func clockToSecs(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*3600 + m*60, true
}
