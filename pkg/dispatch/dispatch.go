package dispatch

import (
	"log/slog"

	"github.com/cneill/drum/pkg/pad"
)

const (
	DefaultVolume = 50
	MinVolume     = 0
	MaxVolume     = 100

	LabelOn  = "ON"
	LabelOff = "OFF"
)

// Player starts playback of the clip at uri at the given volume (0.0-1.0) and returns immediately. Failures belong to
// the Player; the Dispatcher never sees them.
type Player interface {
	Play(uri string, volume float64)
}

type State struct {
	PowerOn       bool
	VolumePercent int
	LastLabel     string
}

// VolumeFraction is the playback volume handed to the Player.
func (s State) VolumeFraction() float64 {
	return float64(s.VolumePercent) / 100
}

type Opts struct {
	Volume int
}

func DefaultOpts() *Opts {
	return &Opts{Volume: DefaultVolume}
}

// KeyResult describes what a key press did. Pad is set when the key played a pad. SuppressDefault is set when the
// caller must not run its own default handling for the key.
type KeyResult struct {
	Pad             *pad.Pad
	SuppressDefault bool
}

// Dispatcher owns the playback state and routes pointer and keyboard triggers to the Player. It is meant to be driven
// from a single event loop and is not safe for concurrent use.
type Dispatcher struct {
	registry *pad.Registry
	player   Player
	state    State
	stats    Stats
}

func New(registry *pad.Registry, player Player, opts *Opts) *Dispatcher {
	if opts == nil {
		opts = DefaultOpts()
	}

	return &Dispatcher{
		registry: registry,
		player:   player,
		state: State{
			PowerOn:       true,
			VolumePercent: clampVolume(opts.Volume),
		},
		stats: newStats(),
	}
}

// Trigger plays p if the power is on and records its label. It reports whether anything was played.
func (d *Dispatcher) Trigger(p *pad.Pad) bool {
	if p == nil || !d.state.PowerOn {
		return false
	}

	d.player.Play(p.Source, d.state.VolumeFraction())
	d.state.LastLabel = p.Label
	d.stats.record(p.ID)

	slog.Debug("Triggered pad", "id", p.ID, "label", p.Label, "volume", d.state.VolumePercent)

	return true
}

func (d *Dispatcher) ResolveByKey(key string) (*pad.Pad, bool) {
	return d.registry.ResolveByKey(key)
}

// KeyTrigger handles a key press. While the power is off every key is swallowed; otherwise an unbound key is a plain
// no-match.
func (d *Dispatcher) KeyTrigger(key string) KeyResult {
	if !d.state.PowerOn {
		return KeyResult{SuppressDefault: true}
	}

	found, ok := d.registry.ResolveByKey(key)
	if !ok {
		return KeyResult{}
	}

	d.Trigger(found)

	return KeyResult{Pad: found}
}

// PointerTrigger handles a click on the pad with the given ID.
func (d *Dispatcher) PointerTrigger(padID string) bool {
	found, ok := d.registry.ByID(padID)
	if !ok {
		slog.Debug("Pointer trigger for unknown pad", "id", padID)
		return false
	}

	return d.Trigger(found)
}

// TogglePower flips the power and returns the new state. Clips that are already playing are left to finish.
func (d *Dispatcher) TogglePower() bool {
	d.state.PowerOn = !d.state.PowerOn

	if d.state.PowerOn {
		d.state.LastLabel = LabelOn
	} else {
		d.state.LastLabel = LabelOff
	}

	d.stats.PowerToggles++

	slog.Debug("Toggled power", "on", d.state.PowerOn)

	return d.state.PowerOn
}

// SetVolume clamps value to [0, 100] and stores it. Only later triggers pick it up.
func (d *Dispatcher) SetVolume(value int) int {
	d.state.VolumePercent = clampVolume(value)
	return d.state.VolumePercent
}

func (d *Dispatcher) AdjustVolume(delta int) int {
	return d.SetVolume(d.state.VolumePercent + delta)
}

func (d *Dispatcher) State() State { return d.state }

func (d *Dispatcher) Registry() *pad.Registry { return d.registry }

// Stats returns a copy of the session counters.
func (d *Dispatcher) Stats() Stats {
	return d.stats.clone()
}

func clampVolume(value int) int {
	return min(max(value, MinVolume), MaxVolume)
}
