package review

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	keepFg    = lipgloss.Color("#2ECC71")
	dropFg    = lipgloss.Color("#E74C3C")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	keepStyle  = lipgloss.NewStyle().Foreground(keepFg)
	dropStyle  = lipgloss.NewStyle().Foreground(dropFg)
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var header string
	if m.done {
		header = titleStyle.Render(" review finished ")
	} else {
		header = titleStyle.Render(fmt.Sprintf(" image %d of %d ─ %s ",
			m.index+1, len(m.files), filepath.Base(m.files[m.index])))
	}
	header = lipgloss.NewStyle().Width(m.width).Render(header)

	var body string
	if m.done {
		summary := fmt.Sprintf("kept %d   discarded %d   remaining %d\n\npress Enter or q to exit",
			m.kept, m.discarded, m.Remaining())
		body = lipgloss.Place(m.width, max(4, m.height-4), lipgloss.Center, lipgloss.Center,
			boxStyle.Render(summary))
	} else {
		body = lipgloss.Place(m.width, max(4, m.height-4), lipgloss.Center, lipgloss.Center,
			boxStyle.Render(m.preview))
	}

	done := 0
	if len(m.files) > 0 {
		done = m.kept + m.discarded
	}
	bar := m.prog.ViewAs(float64(done) / float64(max(1, len(m.files))))

	help := dimStyle.Render("  ") +
		dropStyle.Render("← discard") +
		dimStyle.Render("   ") +
		keepStyle.Render("keep →") +
		dimStyle.Render("   q quit")
	status := dimStyle.Render(" " + m.status)
	footer := lipgloss.JoinVertical(lipgloss.Left, bar, help+status)

	return appStyle.Width(m.width).Height(m.height).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, body, footer))
}
