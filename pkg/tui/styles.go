package tui

import "github.com/charmbracelet/lipgloss"

const (
	padInnerWidth = 11
	padGap        = 1
	padWidth      = padInnerWidth + 2 // rounded border on both sides
	padHeight     = 4                 // key line + label line + border
	padStride     = padWidth + padGap

	volumeBarWidth = 20
	volumeStep     = 5
)

// Styles holds every lipgloss style the view uses.
type Styles struct {
	Title      lipgloss.Style
	PowerOn    lipgloss.Style
	PowerOff   lipgloss.Style
	Display    lipgloss.Style
	VolumeFill lipgloss.Style
	VolumeRest lipgloss.Style
	Label      lipgloss.Style
	Pad        lipgloss.Style
	PadHit     lipgloss.Style
	PadOff     lipgloss.Style
	PadKey     lipgloss.Style
	Help       lipgloss.Style
}

func DefaultStyles() *Styles {
	var (
		accent = lipgloss.Color("#ff5faf")
		fg     = lipgloss.Color("#e4e4e4")
		muted  = lipgloss.Color("#626262")
		good   = lipgloss.Color("#5fd75f")
		bad    = lipgloss.Color("#d75f5f")
	)

	pad := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fg).
		Width(padInnerWidth).
		Align(lipgloss.Center).
		MarginRight(padGap)

	return &Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(accent),
		PowerOn:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#000000")).Background(good),
		PowerOff:   lipgloss.NewStyle().Bold(true).Foreground(fg).Background(bad),
		Display:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		VolumeFill: lipgloss.NewStyle().Foreground(accent),
		VolumeRest: lipgloss.NewStyle().Foreground(muted),
		Label:      lipgloss.NewStyle().Foreground(muted),
		Pad:        pad,
		PadHit:     pad.BorderForeground(accent),
		PadOff:     pad.BorderForeground(muted).Foreground(muted).Faint(true),
		PadKey:     lipgloss.NewStyle().Bold(true),
		Help:       lipgloss.NewStyle().Foreground(muted),
	}
}
