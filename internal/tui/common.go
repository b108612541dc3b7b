package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/ritmo/internal/core"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewLog
	viewAwards
	viewCharts
	viewSettings
)

var viewNames = []string{"Dashboard", "Log", "Awards", "Charts", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type transactionAddedMsg struct{}

type transactionDeletedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatSeconds(secs int64) string {
	return core.FormatDuration(secs)
}

// toneStyle maps an analytics tone to its display style.
func toneStyle(t core.Tone) lipgloss.Style {
	switch t {
	case core.ToneGood:
		return successStyle
	case core.ToneWarn:
		return warningStyle
	}
	return errorStyle
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
