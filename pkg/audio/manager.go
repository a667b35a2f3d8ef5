package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"golang.org/x/time/rate"
)

const (
	DefaultSampleRate   beep.SampleRate = 44100
	DefaultFetchTimeout                 = 10 * time.Second

	resampleQuality = 4
)

var ErrSoundNotFound = errors.New("sound not found")

type ManagerOpts struct {
	SampleRate   beep.SampleRate
	FetchTimeout time.Duration
	// FetchRate and FetchBurst throttle remote downloads.
	FetchRate  rate.Limit
	FetchBurst int
	Client     *http.Client
	Sink       Sink
}

func DefaultManagerOpts() *ManagerOpts {
	return &ManagerOpts{
		SampleRate:   DefaultSampleRate,
		FetchTimeout: DefaultFetchTimeout,
		FetchRate:    rate.Limit(4),
		FetchBurst:   2,
		Client:       http.DefaultClient,
		Sink:         SpeakerSink{},
	}
}

func (m *ManagerOpts) OK() error {
	errs := []string{}

	if m.SampleRate <= 0 {
		errs = append(errs, fmt.Sprintf("invalid sample rate: %d", m.SampleRate))
	}

	if m.FetchTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("invalid fetch timeout: %s", m.FetchTimeout))
	}

	if m.FetchRate <= 0 || m.FetchBurst <= 0 {
		errs = append(errs, "fetch rate and burst must be positive")
	}

	if m.Client == nil {
		errs = append(errs, "missing HTTP client")
	}

	if m.Sink == nil {
		errs = append(errs, "missing audio sink")
	}

	if len(errs) > 0 {
		return fmt.Errorf("options error: %s", strings.Join(errs, "; "))
	}

	return nil
}

// Manager decodes clips into memory and plays them on demand. Every Play starts an independent playback, so clips can
// overlap freely.
type Manager struct {
	opts    *ManagerOpts
	limiter *rate.Limiter

	soundMutex sync.RWMutex
	soundMap   map[string]*Sound // key = source URI

	initMutex   sync.Mutex
	initialized bool
}

func NewManager(opts *ManagerOpts) (*Manager, error) {
	if opts == nil {
		opts = DefaultManagerOpts()
	}

	if err := opts.OK(); err != nil {
		return nil, fmt.Errorf("invalid audio manager options: %w", err)
	}

	mgr := &Manager{
		opts:     opts,
		limiter:  rate.NewLimiter(opts.FetchRate, opts.FetchBurst),
		soundMap: map[string]*Sound{},
	}

	return mgr, nil
}

// Init opens the output device. It must be called before sounds become audible.
func (m *Manager) Init() error {
	m.initMutex.Lock()
	defer m.initMutex.Unlock()

	if m.initialized {
		return nil
	}

	if err := m.opts.Sink.Init(m.opts.SampleRate, m.opts.SampleRate.N(time.Second/20)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	m.initialized = true

	return nil
}

// Load fetches and decodes every source concurrently. A source that fails is logged and left unloaded, so its pad
// stays silent; the returned error joins every failure for the caller's information.
func (m *Manager) Load(ctx context.Context, sources []string) error {
	var (
		wg       sync.WaitGroup
		errMutex sync.Mutex
		errs     []error
		seen     = map[string]bool{}
	)

	for _, source := range sources {
		if seen[source] {
			continue
		}

		seen[source] = true

		wg.Add(1)

		go func() {
			defer wg.Done()

			if err := m.AddSource(ctx, source); err != nil {
				slog.Error("Failed to load sample", "source", source, "error", err)

				errMutex.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", source, err))
				errMutex.Unlock()
			}
		}()
	}

	wg.Wait()

	return errors.Join(errs...)
}

// AddSource fetches a single source and stores it under its URI.
func (m *Manager) AddSource(ctx context.Context, source string) error {
	reader, name, err := m.fetch(ctx, source)
	if err != nil {
		return err
	}

	if err := m.AddSound(source, name, reader); err != nil {
		return err
	}

	slog.Debug("Loaded sample", "source", source)

	return nil
}

// AddSound decodes reader, using the extension of name to pick a decoder, and stores the result under source.
func (m *Manager) AddSound(source, name string, reader io.ReadCloser) error {
	stream, format, err := m.getStream(name, reader)
	if err != nil {
		reader.Close()
		return fmt.Errorf("failed to get stream: %w", err)
	}

	return m.addSound(source, stream, format)
}

func (m *Manager) GetSound(source string) (*Sound, error) {
	m.soundMutex.RLock()
	defer m.soundMutex.RUnlock()

	sound, ok := m.soundMap[source]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSoundNotFound, source)
	}

	return sound, nil
}

func (m *Manager) Loaded(source string) bool {
	_, err := m.GetSound(source)
	return err == nil
}

// Play starts the clip for source at volume (0.0-1.0) and returns immediately. Unknown sources are silently skipped.
func (m *Manager) Play(source string, volume float64) {
	sound, err := m.GetSound(source)
	if err != nil {
		slog.Debug("Skipping playback", "source", source, "error", err)
		return
	}

	volume = min(max(volume, 0), 1)
	playbackID := uuid.NewString()

	stream := &effects.Volume{
		Streamer: sound.Buffer.Streamer(0, sound.Buffer.Len()),
		Base:     2,
		Volume:   math.Log2(volume),
		Silent:   volume == 0,
	}

	seq := beep.Seq(stream, beep.Callback(func() {
		slog.Debug("Playback finished", "id", playbackID, "source", source)
	}))

	slog.Debug("Playback started", "id", playbackID, "source", source, "volume", volume)

	m.opts.Sink.Play(seq)
}

func (m *Manager) Close() {
	m.initMutex.Lock()
	defer m.initMutex.Unlock()

	if m.initialized {
		m.opts.Sink.Close()
		m.initialized = false
	}
}

func (m *Manager) getStream(name string, reader io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		stream beep.StreamSeekCloser
		format beep.Format
		err    error
	)

	extension := strings.ToLower(filepath.Ext(name))

	switch extension {
	case ".mp3":
		stream, format, err = mp3.Decode(reader)
		if err != nil {
			return stream, format, fmt.Errorf("failed to decode file as mp3: %w", err)
		}
	case ".ogg":
		stream, format, err = vorbis.Decode(reader)
		if err != nil {
			return stream, format, fmt.Errorf("failed to decode file as ogg: %w", err)
		}
	case ".wav":
		stream, format, err = wav.Decode(reader)
		if err != nil {
			return stream, format, fmt.Errorf("failed to decode file as wav: %w", err)
		}
	default:
		return stream, format, fmt.Errorf("unknown file format/extension: %q", extension)
	}

	return stream, format, nil
}

func (m *Manager) addSound(source string, stream beep.StreamSeekCloser, format beep.Format) error {
	var resampled beep.Streamer = stream

	if format.SampleRate != m.opts.SampleRate {
		resampled = beep.Resample(resampleQuality, format.SampleRate, m.opts.SampleRate, stream)
		format.SampleRate = m.opts.SampleRate
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(resampled)

	if err := stream.Close(); err != nil {
		return fmt.Errorf("failed to close audio stream after buffering: %w", err)
	}

	m.soundMutex.Lock()
	m.soundMap[source] = &Sound{
		Source: source,
		Format: format,
		Buffer: buffer,
	}
	m.soundMutex.Unlock()

	return nil
}
