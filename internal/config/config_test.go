package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cneill/drum/internal/config"
)

const customKit = `
volume = 75
columns = 2

[[pads]]
id = "kick"
key = "j"
src = "samples/kick.wav"
label = "Kick"

[[pads]]
id = "snare"
key = "K"
src = "https://example.com/snare.mp3"
label = "Snare"
`

func TestParse_CustomKit(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(customKit))
	require.NoError(t, err)

	require.NotNil(t, cfg.Volume)
	assert.Equal(t, 75, *cfg.Volume)
	assert.Equal(t, 2, cfg.Columns)
	require.Len(t, cfg.Pads, 2)
	assert.Equal(t, "kick", cfg.Pads[0].ID)
	assert.Equal(t, "j", cfg.Pads[0].Key)
	assert.Equal(t, "https://example.com/snare.mp3", cfg.Pads[1].Source)
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(`volume = 0`))
	require.NoError(t, err)

	require.NotNil(t, cfg.Volume)
	assert.Equal(t, 0, *cfg.Volume, "explicit zero volume must survive defaults")
	assert.Equal(t, config.DefaultColumns, cfg.Columns)
	assert.Len(t, cfg.Pads, 9)

	empty, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, 50, *empty.Volume)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{name: "bad toml", data: "volume = ", wantMsg: "failed to parse config"},
		{name: "negative columns", data: "columns = -1", wantMsg: "columns must not be negative"},
		{
			name: "duplicate keys",
			data: `
[[pads]]
id = "a"
key = "q"
src = "a.wav"
label = "A"

[[pads]]
id = "b"
key = "Q"
src = "b.wav"
label = "B"
`,
			wantMsg: "bound to both",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "kit.toml")
	require.NoError(t, os.WriteFile(path, []byte(customKit), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Pads, 2)
}

func TestLoad_RelativeSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	absolute := filepath.Join(t.TempDir(), "hat.wav")

	kit := customKit + `
[[pads]]
id = "hat"
key = "L"
src = "` + absolute + `"
label = "Hat"

[[pads]]
id = "tom"
key = "M"
src = "file:///srv/samples/tom.wav"
label = "Tom"
`

	path := filepath.Join(dir, "kit.toml")
	require.NoError(t, os.WriteFile(path, []byte(kit), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Pads, 4)

	assert.Equal(t, filepath.Join(dir, "samples", "kick.wav"), cfg.Pads[0].Source, "relative paths follow the kit file")
	assert.Equal(t, "https://example.com/snare.mp3", cfg.Pads[1].Source)
	assert.Equal(t, absolute, cfg.Pads[2].Source)
	assert.Equal(t, "file:///srv/samples/tom.wav", cfg.Pads[3].Source)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoad_DefaultPathMissing(t *testing.T) { //nolint:paralleltest // modifies HOME
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Len(t, cfg.Pads, 9)
	assert.Equal(t, config.Default().Pads, cfg.Pads)
}

func TestLoad_DefaultPathPresent(t *testing.T) { //nolint:paralleltest // modifies HOME
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "drum")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(customKit), 0o644))

	assert.Equal(t, config.DefaultConfigPath(), filepath.Join(dir, "config.toml"))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Len(t, cfg.Pads, 2)
}
