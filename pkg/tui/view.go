package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cneill/drum/pkg/dispatch"
	"github.com/cneill/drum/pkg/pad"
)

const (
	title    = "DRUM"
	helpLine = "keys:play  click:play  tab:power  ←/→ +/-:volume  ?:help  esc:quit"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.Dispatcher.State()

	header := m.headerView(state)
	display := m.Styles.Display.Render("▌ " + state.LastLabel)
	volume := m.volumeView(state)
	grid := m.gridView(state)

	top := lipgloss.JoinVertical(lipgloss.Left, header, display, volume, "")

	m.bounds.gridTop = lipgloss.Height(top)
	m.bounds.volumeY = lipgloss.Height(header) + lipgloss.Height(display)

	sections := []string{top, grid, "", m.Styles.Help.Render(helpLine)}
	if m.showHelp {
		sections = append(sections, m.Styles.Help.Render(m.bindingsHelp()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) headerView(state dispatch.State) string {
	titleView := m.Styles.Title.Render(title) + "  "

	button := m.Styles.PowerOff.Render(" ⏻ OFF ")
	if state.PowerOn {
		button = m.Styles.PowerOn.Render(" ⏻ ON ")
	}

	m.bounds.powerX = lipgloss.Width(titleView)
	m.bounds.powerY = 0
	m.bounds.powerWidth = lipgloss.Width(button)

	return titleView + button
}

func (m Model) volumeView(state dispatch.State) string {
	label := m.Styles.Label.Render("VOL ")
	filled := state.VolumePercent * volumeBarWidth / dispatch.MaxVolume

	bar := m.Styles.VolumeFill.Render(strings.Repeat("█", filled)) +
		m.Styles.VolumeRest.Render(strings.Repeat("─", volumeBarWidth-filled))

	m.bounds.volumeX = lipgloss.Width(label)

	return label + bar + m.Styles.Label.Render(fmt.Sprintf(" %3d%%", state.VolumePercent))
}

func (m Model) gridView(state dispatch.State) string {
	pads := m.Dispatcher.Registry().Pads()
	rows := make([]string, 0, (len(pads)+m.columns-1)/m.columns)

	for start := 0; start < len(pads); start += m.columns {
		end := min(start+m.columns, len(pads))
		cells := make([]string, 0, end-start)

		for _, p := range pads[start:end] {
			cells = append(cells, m.padView(p, state))
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) padView(p pad.Pad, state dispatch.State) string {
	style := m.Styles.Pad

	switch {
	case !state.PowerOn:
		style = m.Styles.PadOff
	case p.ID == m.lastHit:
		style = m.Styles.PadHit
	}

	return style.Render(m.Styles.PadKey.Render(p.Key) + "\n" + truncate(p.Label, padInnerWidth))
}

func (m Model) bindingsHelp() string {
	builder := &strings.Builder{}

	for idx, p := range m.Dispatcher.Registry().Pads() {
		if idx > 0 {
			builder.WriteString("  ")
		}

		builder.WriteString(p.Key + "=" + p.Label)
	}

	return builder.String()
}

func truncate(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}

	return string(runes[:width-1]) + "…"
}
