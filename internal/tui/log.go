package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ritmo/internal/core"
	"github.com/sadopc/ritmo/internal/store"
)

var transactionTypes = []string{"normal", core.TypeReturn, core.TypeComplex}

type logModel struct {
	store  *store.Store
	width  int
	height int

	transactions []store.Transaction
	paused       []store.PausedWork
	cursor       int
	showComplexa bool

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formItem  *string
	formType  *string
	formTMA   *string
	formSpent *string
}

func newLogModel(s *store.Store) logModel {
	item, typ, tma, spent := "", transactionTypes[0], "", ""
	return logModel{
		store:     s,
		formItem:  &item,
		formType:  &typ,
		formTMA:   &tma,
		formSpent: &spent,
	}
}

func (l *logModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

type logDataMsg struct {
	transactions []store.Transaction
	paused       []store.PausedWork
	showComplexa bool
}

func (l logModel) refresh() tea.Cmd {
	return func() tea.Msg {
		txs, _ := l.store.ListTransactions()
		paused, _ := l.store.ListPausedWork()
		show, _ := l.store.ShowComplexa()
		return logDataMsg{transactions: txs, paused: paused, showComplexa: show}
	}
}

func (l logModel) update(msg tea.Msg) (logModel, tea.Cmd) {
	if l.formActive && l.form != nil {
		return l.updateForm(msg)
	}

	switch msg := msg.(type) {
	case logDataMsg:
		l.transactions = msg.transactions
		l.paused = msg.paused
		l.showComplexa = msg.showComplexa
		if l.cursor >= len(l.visible()) {
			l.cursor = max(0, len(l.visible())-1)
		}
		return l, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if l.cursor > 0 {
				l.cursor--
			}
		case key.Matches(msg, keys.Down):
			if l.cursor < len(l.visible())-1 {
				l.cursor++
			}
		case key.Matches(msg, keys.New):
			return l.showNewForm()
		case key.Matches(msg, keys.Delete):
			visible := l.visible()
			if len(visible) > 0 {
				id := visible[l.cursor].ID
				if err := l.store.DeleteTransaction(id); err != nil {
					return l, func() tea.Msg {
						return statusMsg{text: fmt.Sprintf("Delete error: %v", err), isError: true}
					}
				}
				return l, tea.Batch(
					l.refresh(),
					func() tea.Msg { return transactionDeletedMsg{} },
				)
			}
		}
	}
	return l, nil
}

// visible filters complex transactions out of the list when the setting
// hides them. The stored data is untouched; this is display only.
func (l logModel) visible() []store.Transaction {
	if l.showComplexa {
		return l.transactions
	}
	var out []store.Transaction
	for _, tx := range l.transactions {
		if tx.Type != core.TypeComplex {
			out = append(out, tx)
		}
	}
	return out
}

func (l logModel) showNewForm() (logModel, tea.Cmd) {
	*l.formItem = ""
	*l.formType = transactionTypes[0]
	*l.formTMA = ""
	*l.formSpent = ""

	typeOptions := make([]huh.Option[string], len(transactionTypes))
	for i, t := range transactionTypes {
		typeOptions[i] = huh.NewOption(t, t)
	}

	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Item").Value(l.formItem),
			huh.NewSelect[string]().Title("Type").Options(typeOptions...).Value(l.formType),
			huh.NewInput().Title("Target (seconds)").Value(l.formTMA),
			huh.NewInput().Title("Time spent (seconds)").Value(l.formSpent),
		),
	).WithShowHelp(true).WithShowErrors(true)

	l.formActive = true
	return l, l.form.Init()
}

func (l logModel) updateForm(msg tea.Msg) (logModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			l.formActive = false
			l.form = nil
			return l, nil
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.formActive = false
		if *l.formItem != "" {
			tma := parseSeconds(*l.formTMA)
			spent := parseSeconds(*l.formSpent)
			now := time.Now()
			_, err := l.store.AddTransaction(store.Transaction{
				Item:       strings.TrimSpace(*l.formItem),
				Type:       *l.formType,
				TMA:        tma,
				TimeSpent:  spent,
				Difference: spent - tma,
				Timestamp:  &now,
			})
			if err != nil {
				return l, func() tea.Msg {
					return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
				}
			}
			return l, tea.Batch(
				l.refresh(),
				func() tea.Msg { return transactionAddedMsg{} },
			)
		}
		return l, l.refresh()
	}

	return l, cmd
}

func parseSeconds(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (l logModel) view() string {
	w := l.width - 4

	if l.formActive && l.form != nil {
		title := titleStyle.Render("New Transaction")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", l.form.View())
		return panelStyle.Width(w).Render(content)
	}

	listPanel := l.renderList(w)
	if len(l.paused) == 0 {
		return listPanel
	}
	return lipgloss.JoinVertical(lipgloss.Left, listPanel, l.renderPaused(w))
}

func (l logModel) renderList(w int) string {
	title := titleStyle.Render("Transaction Log")
	visible := l.visible()

	if len(visible) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No transactions yet. Press n to log one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-24s %-10s %8s %8s %10s  %s",
		"", "Item", "Type", "Target", "Spent", "Diff", "Time"))
	rows = append(rows, header)

	for i, tx := range visible {
		cursor := "  "
		style := normalItemStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		diff := core.FormatSigned(tx.Difference)
		diffStyled := diff
		switch {
		case tx.Difference == 0:
			diffStyled = successStyle.Render(diff)
		case tx.Difference > 0:
			diffStyled = warningStyle.Render(diff)
		default:
			diffStyled = highlightStyle.Render(diff)
		}

		clock := "--:--"
		if tx.Timestamp != nil {
			clock = tx.Timestamp.Format("15:04")
		}

		row := style.Render(fmt.Sprintf("%s%-24s %-10s %8d %8d ", cursor, tx.Item, tx.Type, tx.TMA, tx.TimeSpent)) +
			fmt.Sprintf("%10s  %s", diffStyled, mutedStyle.Render(clock))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: delete  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (l logModel) renderPaused(w int) string {
	title := titleStyle.Render("Paused Work")
	var rows []string
	rows = append(rows, title)
	for _, p := range l.paused {
		updated := ""
		if p.UpdatedAt != nil {
			updated = mutedStyle.Render("  " + p.UpdatedAt.Format("15:04"))
		}
		rows = append(rows, fmt.Sprintf("  ⏸ %-24s %-10s %s accumulated%s",
			p.Item, p.Type, core.FormatShort(p.AccumulatedSeconds), updated))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
