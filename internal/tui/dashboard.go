package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ritmo/internal/core"
	"github.com/sadopc/ritmo/internal/store"
)

type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	snap      core.Snapshot
	derived   core.Derived
	stats     core.Stats
	dayparts  core.DaypartReport
	advice    core.Advice
	dailyGoal int
	loaded    bool
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{store: s}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	snap      core.Snapshot
	dailyGoal int
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		snap, err := d.store.Snapshot()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		goal, _ := d.store.DailyGoal()
		return dashboardDataMsg{snap: snap, dailyGoal: goal}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.snap = msg.snap
		d.dailyGoal = msg.dailyGoal
		d.derived = core.ComputeDerived(msg.snap)
		d.stats = core.ComputeStats(msg.snap.Transactions)
		d.dayparts = core.ClassifyDayparts(msg.snap.Transactions)
		d.advice = core.BuildAdvice(msg.snap.Transactions, msg.snap.BalanceSeconds)
		d.loaded = true
		return d, nil
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	balancePanel := d.renderBalancePanel(contentWidth)
	statsPanel := d.renderStatsPanel(contentWidth)
	daypartPanel := d.renderDaypartPanel(contentWidth)
	advicePanel := d.renderAdvicePanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, balancePanel, statsPanel, daypartPanel, advicePanel)
}

func (d dashboardModel) renderBalancePanel(w int) string {
	saldo := int64(math.Round(d.derived.Saldo))
	display := core.FormatSigned(saldo)

	var readout string
	var indicator string
	if d.derived.EndedWithinMargin {
		readout = balanceGoodStyle.Width(w - 6).Render(display)
		indicator = successStyle.Render("●  WITHIN MARGIN")
	} else {
		readout = balanceBadStyle.Width(w - 6).Render(display)
		indicator = errorStyle.Render("▲  OUT OF MARGIN")
	}
	if d.derived.Count == 0 {
		readout = balanceStyle.Width(w - 6).Render(display)
		indicator = mutedStyle.Render("■  NO TRANSACTIONS YET")
	}

	streak := ""
	if d.derived.NearStreak > 0 {
		streak = highlightStyle.Render(fmt.Sprintf("streak: %d within 1min", d.derived.NearStreak))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, readout, indicator, streak)
	if d.derived.EndedWithinMargin && d.derived.Count > 0 {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderStatsPanel(w int) string {
	title := titleStyle.Render("Today")
	goal := fmt.Sprintf("%d/%d transactions", d.stats.Count, d.dailyGoal)
	header := fmt.Sprintf("%s  %s", title, highlightStyle.Render(goal))

	if d.stats.Count == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			mutedStyle.Render("No transactions yet. Press n on the Log tab to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header)
	rows = append(rows, fmt.Sprintf("  avg difference   %s", core.FormatSigned(d.stats.AvgDifference)))
	rows = append(rows, fmt.Sprintf("  total worked     %s", formatSeconds(d.stats.SumTimeSpent)))
	rows = append(rows, fmt.Sprintf("  p90 |difference| %s", core.FormatShort(d.derived.P90Abs)))
	if d.derived.ReturnCount > 0 {
		rows = append(rows, fmt.Sprintf("  returns          %d", d.derived.ReturnCount))
	}
	if d.snap.ShowComplexa && d.derived.ComplexCount > 0 {
		rows = append(rows, fmt.Sprintf("  complex          %d", d.derived.ComplexCount))
	}

	if len(d.stats.TopItems) > 0 {
		rows = append(rows, "")
		rows = append(rows, subtitleStyle.Render("  Most worked items"))
		for _, item := range d.stats.TopItems {
			rows = append(rows, fmt.Sprintf("    %-24s ×%d", item.Item, item.Count))
		}
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderDaypartPanel(w int) string {
	title := titleStyle.Render("Rhythm")
	if len(d.dayparts.Buckets) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No timed transactions yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, b := range d.dayparts.Buckets {
		marker := ""
		if b.Key == d.dayparts.Best {
			marker = successStyle.Render(" ★ best")
		} else if b.Key == d.dayparts.Worst {
			marker = errorStyle.Render(" ▼ worst")
		}
		avg := toneStyle(b.Tone()).Render(formatSeconds(int64(math.Round(b.AvgTimeSpent()))))
		rows = append(rows, fmt.Sprintf("  %-10s %2d transactions  avg %s%s",
			string(b.Key), b.Count, avg, marker))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderAdvicePanel(w int) string {
	title := titleStyle.Render("Coach")
	if len(d.advice.Suggestions) == 0 && len(d.advice.FunFacts) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Log a transaction to get advice"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, s := range d.advice.Suggestions {
		rows = append(rows, "  • "+s)
	}
	if len(d.advice.FunFacts) > 0 {
		rows = append(rows, "")
		rows = append(rows, subtitleStyle.Render("  Fun facts"))
		for _, f := range d.advice.FunFacts {
			rows = append(rows, mutedStyle.Render("  ◦ "+f))
		}
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
