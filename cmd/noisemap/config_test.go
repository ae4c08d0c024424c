package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geal-ai/noisemap"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "noisemap.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigPartialOverlay(t *testing.T) {
	path := writeConfig(t, `
source = " Perlin "
seed = 99
width = 64
east = 350
`)
	got, err := loadConfig(path, defaultOptions())
	require.NoError(t, err)

	want := defaultOptions()
	want.Source = "perlin"
	want.Seed = 99
	want.Width = 64
	want.Bounds.East = 350
	assert.Equal(t, want, got)

	// Normalisation happens once flags are merged.
	got.Bounds.West, got.Bounds.East = lonRange(got.Bounds.West, got.Bounds.East)
	assert.Equal(t, -180.0, got.Bounds.West)
	assert.Equal(t, -10.0, got.Bounds.East)
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := writeConfig(t, "colour = \"red\"\n")
	_, err := loadConfig(path, defaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"), defaultOptions())
	require.Error(t, err)
}

func TestOptionsValidate(t *testing.T) {
	require.NoError(t, defaultOptions().validate())

	bad := defaultOptions()
	bad.Source = "worley"
	assert.Error(t, bad.validate())

	bad = defaultOptions()
	bad.Height = 0
	assert.ErrorIs(t, bad.validate(), noisemap.ErrInvalidParameter)

	bad = defaultOptions()
	bad.Bounds.West, bad.Bounds.East = 10, -10
	assert.ErrorIs(t, bad.validate(), noisemap.ErrInvalidParameter)
}

func TestNewFieldSources(t *testing.T) {
	for _, s := range knownSources {
		t.Run(s.key, func(t *testing.T) {
			opts := defaultOptions()
			opts.Source = s.key
			opts.Scale = 4
			f, err := newField(opts)
			require.NoError(t, err)
			assert.Equal(t, f.Value(0.1, 0.2, 0.3), f.Value(0.1, 0.2, 0.3))
		})
	}

	opts := defaultOptions()
	opts.Source, opts.Value, opts.Scale = "const", 0.75, 3
	f, err := newField(opts)
	require.NoError(t, err)
	assert.Equal(t, 0.75, f.Value(-4, 2, 9))
	assert.Equal(t, noisemap.Field(noisemap.Const(0.75)), f)

	opts = defaultOptions()
	opts.Source = "nope"
	_, err = newField(opts)
	assert.Error(t, err)
}

func TestLonRange(t *testing.T) {
	tests := []struct {
		name               string
		west, east         float64
		wantWest, wantEast float64
		valid              bool
	}{
		{"signed", -130, -60, -130, -60, true},
		{"0-360 both sides", 230, 300, -130, -60, true},
		{"whole globe", -180, 180, -180, 180, true},
		{"0-360 whole globe", 0, 360, 0, 360, true},
		{"crosses antimeridian", 170, 190, 170, 190, true},
		{"wrapped twice", 720, 725, 0, 5, true},
		{"inverted", 10, -10, 10, -10, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, e := lonRange(tc.west, tc.east)
			assert.InDelta(t, tc.wantWest, w, 1e-9)
			assert.InDelta(t, tc.wantEast, e, 1e-9)

			b := noisemap.Bounds{South: -1, North: 1, West: w, East: e}
			assert.Equal(t, tc.valid, b.Validate() == nil)
		})
	}
}

func TestLoadConfigValue(t *testing.T) {
	path := writeConfig(t, "source = \"const\"\nvalue = -2.5\nborder = 4\n")
	got, err := loadConfig(path, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "const", got.Source)
	assert.Equal(t, -2.5, got.Value)
	assert.Equal(t, 4.0, got.Border)
	require.NoError(t, got.validate())
}
