package audio_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cneill/drum/pkg/audio"
)

type fakeSink struct {
	mutex     sync.Mutex
	inits     int
	closes    int
	streamers []beep.Streamer
}

func (f *fakeSink) Init(_ beep.SampleRate, _ int) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.inits++

	return nil
}

func (f *fakeSink) Play(streamers ...beep.Streamer) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.streamers = append(f.streamers, streamers...)
}

func (f *fakeSink) Close() {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.closes++
}

func newManager(t *testing.T) (*audio.Manager, *fakeSink) {
	t.Helper()

	sink := &fakeSink{}
	opts := audio.DefaultManagerOpts()
	opts.Sink = sink
	opts.FetchTimeout = 2 * time.Second

	mgr, err := audio.NewManager(opts)
	require.NoError(t, err)

	return mgr, sink
}

// writeWAV writes numSamples of silence at sampleRate to a new file in dir.
func writeWAV(t *testing.T, dir, name string, sampleRate beep.SampleRate, numSamples int) string {
	t.Helper()

	path := filepath.Join(dir, name)

	file, err := os.Create(path)
	require.NoError(t, err)

	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(file, beep.Silence(numSamples), format))
	require.NoError(t, file.Close())

	return path
}

func drain(streamer beep.Streamer) int {
	samples := make([][2]float64, 512)
	total := 0

	for {
		n, ok := streamer.Stream(samples)
		total += n

		if !ok {
			return total
		}
	}
}

func TestManager_LoadFromPath(t *testing.T) {
	t.Parallel()

	mgr, _ := newManager(t)
	path := writeWAV(t, t.TempDir(), "kick.wav", audio.DefaultSampleRate, 4410)

	require.NoError(t, mgr.Load(t.Context(), []string{path}))
	assert.True(t, mgr.Loaded(path))

	sound, err := mgr.GetSound(path)
	require.NoError(t, err)
	assert.Equal(t, 4410, sound.Buffer.Len())
	assert.Equal(t, 100*time.Millisecond, sound.Duration())
}

func TestManager_LoadFromFileURL(t *testing.T) {
	t.Parallel()

	mgr, _ := newManager(t)
	path := writeWAV(t, t.TempDir(), "snare.wav", audio.DefaultSampleRate, 1000)
	source := "file://" + filepath.ToSlash(path)

	require.NoError(t, mgr.Load(t.Context(), []string{source}))
	assert.True(t, mgr.Loaded(source))
}

func TestManager_LoadResamples(t *testing.T) {
	t.Parallel()

	mgr, _ := newManager(t)
	path := writeWAV(t, t.TempDir(), "low.wav", audio.DefaultSampleRate/2, 2205)

	require.NoError(t, mgr.Load(t.Context(), []string{path}))

	sound, err := mgr.GetSound(path)
	require.NoError(t, err)
	assert.Equal(t, audio.DefaultSampleRate, sound.Format.SampleRate)
	assert.InDelta(t, 4410, sound.Buffer.Len(), 50)
}

func TestManager_LoadFromHTTP(t *testing.T) {
	t.Parallel()

	path := writeWAV(t, t.TempDir(), "hat.wav", audio.DefaultSampleRate, 2000)
	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/drums/hat.wav" {
			http.NotFound(w, r)
			return
		}

		_, _ = w.Write(contents)
	}))
	t.Cleanup(server.Close)

	mgr, _ := newManager(t)

	good := server.URL + "/drums/hat.wav"
	missing := server.URL + "/drums/missing.wav"

	err = mgr.Load(t.Context(), []string{good, missing})
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
	assert.Contains(t, err.Error(), "404")

	assert.True(t, mgr.Loaded(good))
	assert.False(t, mgr.Loaded(missing))
}

func TestManager_LoadFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	textPath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("not audio"), 0o644))

	badWAV := filepath.Join(dir, "broken.wav")
	require.NoError(t, os.WriteFile(badWAV, []byte("RIFF nope"), 0o644))

	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{name: "missing file", source: filepath.Join(dir, "nope.wav"), wantMsg: "failed to open sample file"},
		{name: "unknown extension", source: textPath, wantMsg: "unknown file format/extension"},
		{name: "corrupt wav", source: badWAV, wantMsg: "failed to decode file as wav"},
		{name: "unsupported scheme", source: "ftp://example.com/kick.wav", wantMsg: "unsupported source scheme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mgr, _ := newManager(t)

			err := mgr.Load(t.Context(), []string{tt.source})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.False(t, mgr.Loaded(tt.source))
		})
	}
}

func TestManager_PlayIsIndependentPerCall(t *testing.T) {
	t.Parallel()

	mgr, sink := newManager(t)
	path := writeWAV(t, t.TempDir(), "clap.wav", audio.DefaultSampleRate, 1500)
	require.NoError(t, mgr.Load(t.Context(), []string{path}))

	mgr.Play(path, 0.5)
	mgr.Play(path, 1)

	require.Len(t, sink.streamers, 2)

	// Each playback has its own cursor into the buffer, so both run to the full length.
	assert.Equal(t, 1500, drain(sink.streamers[0]))
	assert.Equal(t, 1500, drain(sink.streamers[1]))
}

func TestManager_PlayUnknownSource(t *testing.T) {
	t.Parallel()

	mgr, sink := newManager(t)

	mgr.Play("https://example.com/never-loaded.mp3", 0.5)

	assert.Empty(t, sink.streamers)
}

func TestManager_PlayClampsVolume(t *testing.T) {
	t.Parallel()

	mgr, sink := newManager(t)
	require.NoError(t, mgr.AddSound("mem", "mem.wav", wavReader(t)))

	mgr.Play("mem", -3)
	mgr.Play("mem", 7)

	require.Len(t, sink.streamers, 2)
	assert.Equal(t, 300, drain(sink.streamers[0]))
	assert.Equal(t, 300, drain(sink.streamers[1]))
}

func TestManager_InitAndClose(t *testing.T) {
	t.Parallel()

	mgr, sink := newManager(t)

	// Closing before Init leaves the sink alone.
	mgr.Close()
	assert.Zero(t, sink.closes)

	require.NoError(t, mgr.Init())
	require.NoError(t, mgr.Init())
	assert.Equal(t, 1, sink.inits)

	mgr.Close()
	assert.Equal(t, 1, sink.closes)
}

func TestManagerOpts_OK(t *testing.T) {
	t.Parallel()

	opts := audio.DefaultManagerOpts()
	opts.SampleRate = 0
	opts.FetchTimeout = 0
	opts.Sink = nil

	_, err := audio.NewManager(opts)
	require.Error(t, err)

	for _, msg := range []string{"invalid sample rate", "invalid fetch timeout", "missing audio sink"} {
		assert.Contains(t, err.Error(), msg)
	}
}

func wavReader(t *testing.T) io.ReadCloser {
	t.Helper()

	path := writeWAV(t, t.TempDir(), "mem.wav", audio.DefaultSampleRate, 300)
	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	return io.NopCloser(strings.NewReader(string(contents)))
}
