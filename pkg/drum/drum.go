package drum

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gopxl/beep/v2"
	"github.com/muesli/termenv"

	"github.com/cneill/drum/internal/config"
	"github.com/cneill/drum/pkg/audio"
	"github.com/cneill/drum/pkg/dispatch"
	"github.com/cneill/drum/pkg/pad"
	"github.com/cneill/drum/pkg/tui"
)

type Opts struct {
	ConfigPath   string
	Volume       *int // overrides the kit file when set
	Columns      int  // overrides the kit file when non-zero
	NoColor      bool
	SampleRate   int
	FetchTimeout time.Duration

	// Sink replaces the speaker; used by tests and headless runs.
	Sink audio.Sink
}

func (o *Opts) OK() error {
	if o.Columns < 0 {
		return fmt.Errorf("columns must not be negative, got %d", o.Columns)
	}

	if o.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", o.SampleRate)
	}

	if o.FetchTimeout <= 0 {
		return fmt.Errorf("invalid fetch timeout: %s", o.FetchTimeout)
	}

	return nil
}

type Drum struct {
	*Opts

	config     *config.Config
	registry   *pad.Registry
	audio      *audio.Manager
	Dispatcher *dispatch.Dispatcher

	started time.Time
}

func New(opts *Opts) (*Drum, error) {
	if err := opts.OK(); err != nil {
		return nil, fmt.Errorf("failed to configure drum: %w", err)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load kit: %w", err)
	}

	if opts.Volume != nil {
		cfg.Volume = opts.Volume
	}

	if opts.Columns > 0 {
		cfg.Columns = opts.Columns
	}

	registry, err := pad.NewRegistry(cfg.Pads)
	if err != nil {
		return nil, fmt.Errorf("failed to build pad registry: %w", err)
	}

	audioOpts := audio.DefaultManagerOpts()
	audioOpts.SampleRate = beep.SampleRate(opts.SampleRate)
	audioOpts.FetchTimeout = opts.FetchTimeout

	if opts.Sink != nil {
		audioOpts.Sink = opts.Sink
	}

	audioMgr, err := audio.NewManager(audioOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to set up audio: %w", err)
	}

	drum := &Drum{
		Opts: opts,

		config:     cfg,
		registry:   registry,
		audio:      audioMgr,
		Dispatcher: dispatch.New(registry, audioMgr, &dispatch.Opts{Volume: *cfg.Volume}),
	}

	return drum, nil
}

// Prepare opens the output device and loads every pad's sample. Samples that fail to load only cost their pad its
// sound.
func (d *Drum) Prepare(ctx context.Context) error {
	if err := d.audio.Init(); err != nil {
		return fmt.Errorf("failed to initialize audio: %w", err)
	}

	d.LoadSamples(ctx)

	return nil
}

// LoadSamples fetches and decodes every pad's sample without touching the output device.
func (d *Drum) LoadSamples(ctx context.Context) {
	if err := d.audio.Load(ctx, d.registry.Sources()); err != nil {
		slog.Warn("Some samples failed to load; their pads will be silent", "error", err)
	}
}

// Run shows the pad grid until the user quits, then prints a session summary.
func (d *Drum) Run(ctx context.Context) error {
	defer d.audio.Close()

	if err := d.Prepare(ctx); err != nil {
		return err
	}

	if d.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	d.started = time.Now()

	model := tui.NewModel(d.Dispatcher, &tui.Opts{Columns: d.config.Columns})

	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("pad grid error: %w", err)
	}

	fmt.Print(d.Summary().Final())

	return nil
}

func (d *Drum) Registry() *pad.Registry { return d.registry }

func (d *Drum) Loaded(source string) bool { return d.audio.Loaded(source) }
