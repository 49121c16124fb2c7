package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the build header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	line := "Build " + shortID(state.BuildID)
	if state.SourceURL != "" {
		line += " | Source: " + state.SourceURL
	}
	if !state.StartedAt.IsZero() {
		end := now
		if state.Finished && !state.FinishedAt.IsZero() {
			end = state.FinishedAt
		}
		line += " | Elapsed: " + formatDuration(end.Sub(state.StartedAt))
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderStages renders the stage progress line.
func renderStages(state State, noColor bool) string {
	parts := make([]string, 0, len(state.Stages))
	for _, row := range state.Stages {
		parts = append(parts, stylizeStage(stageMarker(row.Status)+" "+string(row.Stage), row.Status, noColor))
	}
	return strings.Join(parts, "  ")
}

// renderSummary renders subject and pair counts.
func renderSummary(state State, noColor bool) string {
	subjects := strconv.Itoa(len(state.Subjects))
	if state.TotalSubjects > 0 {
		subjects += "/" + strconv.Itoa(state.TotalSubjects)
	}
	line := "Subjects: " + subjects + " Pairs: " + strconv.Itoa(state.Pairs)
	if state.Downloaded > 0 {
		line += " Downloaded: " + formatBytes(state.Downloaded)
		if state.DownloadTotal > 0 {
			line += "/" + formatBytes(state.DownloadTotal)
		}
	}
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	color := lipgloss.Color("244")
	if state.Interrupted && !state.Finished {
		color = lipgloss.Color("214")
	}
	if state.Failed {
		color = lipgloss.Color("196")
	}
	return stylize("Last event: "+state.LastEvent, noColor, color)
}

// formatBytes renders a byte count in KiB or MiB.
func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return strconv.FormatFloat(float64(n)/(1<<20), 'f', 1, 64) + "MiB"
	case n >= 1<<10:
		return strconv.FormatFloat(float64(n)/(1<<10), 'f', 1, 64) + "KiB"
	default:
		return strconv.FormatInt(n, 10) + "B"
	}
}

func stageMarker(status StageStatus) string {
	switch status {
	case StageRunning:
		return "~"
	case StageDone:
		return "+"
	case StageFailed:
		return "x"
	default:
		return "."
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// stylizeStage colors a stage label by status.
func stylizeStage(text string, status StageStatus, noColor bool) string {
	if noColor {
		return text
	}
	color := lipgloss.Color("246")
	switch status {
	case StageRunning:
		color = lipgloss.Color("33")
	case StageDone:
		color = lipgloss.Color("42")
	case StageFailed:
		color = lipgloss.Color("196")
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
