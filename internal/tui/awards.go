package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ritmo/internal/core"
	"github.com/sadopc/ritmo/internal/store"
)

type awardsModel struct {
	store  *store.Store
	width  int
	height int

	set        core.AwardSet
	showLocked bool
}

func newAwardsModel(s *store.Store) awardsModel {
	return awardsModel{store: s}
}

func (a *awardsModel) setSize(w, h int) {
	a.width = w
	a.height = h
}

type awardsDataMsg struct {
	set        core.AwardSet
	showLocked bool
}

func (a awardsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		snap, err := a.store.Snapshot()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		show, _ := a.store.ShowLockedAwards()
		return awardsDataMsg{set: core.EvaluateAwards(snap), showLocked: show}
	}
}

func (a awardsModel) update(msg tea.Msg) (awardsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case awardsDataMsg:
		a.set = msg.set
		a.showLocked = msg.showLocked
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.ShowLocked) {
			a.showLocked = !a.showLocked
			a.store.SetShowLockedAwards(a.showLocked)
			return a, nil
		}
	}
	return a, nil
}

func (a awardsModel) view() string {
	w := a.width - 4

	unlocked := len(a.set.Unlocked)
	title := titleStyle.Render("Awards")
	counter := highlightStyle.Render(fmt.Sprintf("%d/%d unlocked", unlocked, core.CatalogSize()))
	header := fmt.Sprintf("%s  %s", title, counter)

	cards := core.FormatAwards(a.set, a.showLocked)
	if len(cards) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("Nothing unlocked yet. Press t to peek at the locked ones."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")
	for _, card := range cards {
		rows = append(rows, a.renderCard(card))
	}

	toggle := "t: show locked"
	if a.showLocked {
		toggle = "t: hide locked"
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  "+toggle))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (a awardsModel) renderCard(card core.Award) string {
	if card.Locked {
		line := fmt.Sprintf("  🔒 %-20s %s", card.Title, card.Detail)
		return lockedAwardStyle.Render(line)
	}
	line := fmt.Sprintf("  %s %-20s %s", card.Icon, card.Title, card.Short)
	return unlockedAwardStyle.Render(line)
}
