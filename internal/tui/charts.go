package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ritmo/internal/core"
	"github.com/sadopc/ritmo/internal/store"
)

type chartMode int

const (
	chartHistogram chartMode = iota
	chartDayparts
	chartBalance
)

var chartModeNames = []string{"Histogram", "Dayparts", "Balance"}

type chartsModel struct {
	store  *store.Store
	width  int
	height int

	mode chartMode
	snap core.Snapshot

	chart barchart.Model
}

func newChartsModel(s *store.Store) chartsModel {
	return chartsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (c *chartsModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type chartsDataMsg struct {
	snap core.Snapshot
}

func (c chartsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		snap, err := c.store.Snapshot()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		return chartsDataMsg{snap: snap}
	}
}

func (c chartsModel) update(msg tea.Msg) (chartsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chartsDataMsg:
		c.snap = msg.snap
		c.buildChart()
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			c.mode = (c.mode + 2) % 3
			c.buildChart()
			return c, nil
		case key.Matches(msg, keys.Right), key.Matches(msg, keys.Tab):
			c.mode = (c.mode + 1) % 3
			c.buildChart()
			return c, nil
		}
	}
	return c, nil
}

func (c *chartsModel) buildChart() {
	chartWidth := c.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if c.height > 30 {
		chartHeight = 16
	}

	c.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	switch c.mode {
	case chartDayparts:
		bars = c.daypartBars()
	case chartBalance:
		bars = c.balanceBars()
	default:
		bars = c.histogramBars()
	}

	c.chart.PushAll(bars)
	c.chart.Draw()
}

// histogramBars renders the fixed difference distribution.
func (c chartsModel) histogramBars() []barchart.BarData {
	diffs := make([]int64, 0, len(c.snap.Transactions))
	for _, tx := range c.snap.Transactions {
		diffs = append(diffs, tx.Difference)
	}

	var bars []barchart.BarData
	for i, bin := range core.PrepareHistogram(diffs) {
		style := lipgloss.NewStyle().Foreground(colorSecondary)
		if i < 3 {
			style = lipgloss.NewStyle().Foreground(colorHighlight)
		} else if i > 3 {
			style = lipgloss.NewStyle().Foreground(colorWarning)
		}
		bars = append(bars, barchart.BarData{
			Label: bin.Label,
			Values: []barchart.BarValue{
				{Name: bin.Label, Value: float64(bin.Count), Style: style},
			},
		})
	}
	return bars
}

// daypartBars renders average time spent per daypart.
func (c chartsModel) daypartBars() []barchart.BarData {
	rep := core.ClassifyDayparts(c.snap.Transactions)

	var bars []barchart.BarData
	for _, b := range rep.Buckets {
		var color lipgloss.Color
		switch b.Tone() {
		case core.ToneGood:
			color = colorSuccess
		case core.ToneWarn:
			color = colorWarning
		default:
			color = colorError
		}
		bars = append(bars, barchart.BarData{
			Label: string(b.Key),
			Values: []barchart.BarValue{
				{Name: string(b.Key), Value: b.AvgTimeSpent() / 60.0, Style: lipgloss.NewStyle().Foreground(color)},
			},
		})
	}
	if len(bars) == 0 {
		bars = append(bars, barchart.BarData{
			Label:  "no data",
			Values: []barchart.BarValue{{Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}},
		})
	}
	return bars
}

// balanceBars renders the magnitude of the running balance after each
// transaction, colored by sign. Bar charts cannot plot negatives, so
// the sign moves into the color.
func (c chartsModel) balanceBars() []barchart.BarData {
	oldest := make([]core.TransactionRecord, len(c.snap.Transactions))
	for i, tx := range c.snap.Transactions {
		oldest[len(c.snap.Transactions)-1-i] = tx
	}
	points, timeAxis := core.PrepareBalanceSeries(oldest)

	var bars []barchart.BarData
	for i, p := range points {
		label := fmt.Sprintf("%d", i+1)
		if timeAxis && oldest[i].HasTime {
			label = oldest[i].Timestamp.Format("15:04")
		}
		color := colorSuccess
		if p.Y > 0 {
			color = colorWarning
		}
		if math.Abs(p.Y) > 600 {
			color = colorError
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: label, Value: math.Abs(p.Y), Style: lipgloss.NewStyle().Foreground(color)},
			},
		})
	}
	if len(bars) == 0 {
		bars = append(bars, barchart.BarData{
			Label:  "no data",
			Values: []barchart.BarValue{{Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}},
		})
	}
	return bars
}

func (c chartsModel) view() string {
	w := c.width - 4

	var tabs []string
	for i, name := range chartModeNames {
		if chartMode(i) == c.mode {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Charts"), "  ", modeTabs,
	)

	chartView := c.chart.View()
	legend := c.renderLegend()
	nav := mutedStyle.Render("  ←/→: switch chart")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", legend, "", nav,
		),
	)
}

func (c chartsModel) renderLegend() string {
	switch c.mode {
	case chartDayparts:
		return "  " + mutedStyle.Render("bar height = avg minutes spent per transaction")
	case chartBalance:
		return "  " + strings.Join([]string{
			successStyle.Render("● under target"),
			warningStyle.Render("● over target"),
			errorStyle.Render("● out of margin"),
		}, "  ")
	}
	return "  " + mutedStyle.Render("transactions per difference band")
}
