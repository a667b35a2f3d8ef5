package drum

import (
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/cneill/drum/pkg/pad"
)

//nolint:gochecknoglobals
var (
	labelColor     = color.RGB(255, 255, 255).Add(color.Bold)
	sublabelColor  = color.RGB(120, 120, 120).Add(color.Italic)
	hitColor       = color.RGB(255, 95, 175)
	onColor        = color.RGB(0, 255, 0)
	offColor       = color.RGB(255, 0, 0)
	missingColor   = color.RGB(255, 175, 0)
	separatorColor = color.RGB(50, 50, 50).Add(color.Bold)
	separator      = separatorColor.Sprint(" :: ")
	indent         = "  "
)

const maxHitBarWidth = 40

type PadHits struct {
	Key   string
	Label string
	Hits  int64
}

type SessionSummary struct {
	Pads         []PadHits
	Triggers     int64
	PowerToggles int64
	Volume       int
	PowerOn      bool
	Duration     time.Duration
}

func (d *Drum) Summary() *SessionSummary {
	stats := d.Dispatcher.Stats()
	state := d.Dispatcher.State()

	summary := &SessionSummary{
		Triggers:     stats.Triggers,
		PowerToggles: stats.PowerToggles,
		Volume:       state.VolumePercent,
		PowerOn:      state.PowerOn,
	}

	if !d.started.IsZero() {
		summary.Duration = time.Since(d.started)
	}

	for _, p := range d.registry.Pads() {
		summary.Pads = append(summary.Pads, PadHits{Key: p.Key, Label: p.Label, Hits: stats.Hits[p.ID]})
	}

	return summary
}

func (s *SessionSummary) Final() string {
	builder := &strings.Builder{}
	builder.Grow(256)

	builder.WriteString(labelColor.Sprint("Session stats:\n"))

	builder.WriteString(indent)
	builder.WriteString(sublabelColor.Sprint("Hits: "))
	builder.WriteString(hitColor.Sprint(strconv.FormatInt(s.Triggers, 10)))
	builder.WriteString(separator)
	builder.WriteString(sublabelColor.Sprint("Power toggles: "))
	builder.WriteString(strconv.FormatInt(s.PowerToggles, 10))
	builder.WriteRune('\n')

	builder.WriteString(indent)
	builder.WriteString(sublabelColor.Sprint("Volume: "))
	builder.WriteString(strconv.Itoa(s.Volume) + "%")
	builder.WriteString(separator)
	builder.WriteString(sublabelColor.Sprint("Power: "))

	if s.PowerOn {
		builder.WriteString(onColor.Sprint("ON"))
	} else {
		builder.WriteString(offColor.Sprint("OFF"))
	}

	if s.Duration >= time.Minute {
		builder.WriteString(separator)
		builder.WriteString(sublabelColor.Sprint("Played for: "))
		builder.WriteString(durationString(s.Duration))
	}

	builder.WriteRune('\n')
	builder.WriteString(s.hitsString())

	return builder.String()
}

func (s *SessionSummary) hitsString() string {
	if s.Triggers == 0 {
		return ""
	}

	var most int64
	for _, p := range s.Pads {
		most = max(most, p.Hits)
	}

	builder := &strings.Builder{}
	builder.WriteString(labelColor.Sprint("\nPads:\n"))

	for _, p := range s.Pads {
		width := int(p.Hits)
		if most > maxHitBarWidth {
			width = int(p.Hits * maxHitBarWidth / most)
		}

		builder.WriteString(indent)
		builder.WriteString(labelColor.Sprint(p.Key))
		builder.WriteRune(' ')
		builder.WriteString(sublabelColor.Sprintf("%-12s", p.Label))
		builder.WriteString(separator)
		builder.WriteString(strconv.FormatInt(p.Hits, 10))
		builder.WriteRune(' ')
		builder.WriteString(hitColor.Sprint(strings.Repeat("▮", width)))
		builder.WriteRune('\n')
	}

	return builder.String()
}

// KitListing renders the pad registry, flagging sources that could not be loaded when loaded is non-nil.
func KitListing(registry *pad.Registry, loaded func(source string) bool) string {
	builder := &strings.Builder{}
	builder.WriteString(labelColor.Sprint("Pads:\n"))

	for _, p := range registry.Pads() {
		builder.WriteString(indent)
		builder.WriteString(labelColor.Sprint(p.Key))
		builder.WriteRune(' ')
		builder.WriteString(sublabelColor.Sprintf("%-12s", p.Label))
		builder.WriteString(separator)
		builder.WriteString(p.Source)

		if loaded != nil && !loaded(p.Source) {
			builder.WriteString(separator)
			builder.WriteString(missingColor.Sprint("unavailable"))
		}

		builder.WriteRune('\n')
	}

	return builder.String()
}

func durationString(duration time.Duration) string {
	result := ""
	hours := int64(duration / time.Hour)
	minutes := int64(duration/time.Minute) % 60

	if hours > 0 {
		result += strconv.FormatInt(hours, 10) + "h"
	}

	if minutes > 0 {
		result += strconv.FormatInt(minutes, 10) + "m"
	}

	return result
}
