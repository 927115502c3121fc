package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName+".toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(New(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
zone = -8.0
log_level = "debug"
refresh = "5s"
star_limit = 25

[observer]
name = "Goldstone"
latitude = 35.4267
longitude = -116.89
`)

	cfg, err := Load(New(path))
	require.NoError(t, err)

	assert.Equal(t, "Goldstone", cfg.Observer.Name)
	assert.InDelta(t, 35.4267, cfg.Observer.Latitude, 1e-9)
	assert.InDelta(t, -116.89, cfg.Observer.Longitude, 1e-9)
	assert.Equal(t, -8.0, cfg.Zone)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Refresh)
	assert.Equal(t, 25, cfg.StarLimit)

	obs := cfg.AstroObserver()
	assert.Equal(t, "Goldstone", obs.Name)
	assert.InDelta(t, -116.89, obs.LonDeg, 1e-9)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "[observer]\nname = \"Home\"\nlatitude = 10.0\n")

	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{"latitude", "ALMANAC_OBSERVER_LATITUDE", "-33.87", func(c Config) any { return c.Observer.Latitude }, -33.87},
		{"name", "ALMANAC_OBSERVER_NAME", "Sydney", func(c Config) any { return c.Observer.Name }, "Sydney"},
		{"zone", "ALMANAC_ZONE", "10", func(c Config) any { return c.Zone }, 10.0},
		{"refresh", "ALMANAC_REFRESH", "250ms", func(c Config) any { return c.Refresh }, 250 * time.Millisecond},
		{"star_limit", "ALMANAC_STAR_LIMIT", "3", func(c Config) any { return c.StarLimit }, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load(New(path))
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.field(cfg))
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"latitude", "[observer]\nlatitude = 95.0\n"},
		{"longitude", "[observer]\nlongitude = -200.0\n"},
		{"zone", "zone = 15.0\n"},
		{"refresh", "refresh = \"0s\"\n"},
		{"star_limit", "star_limit = -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(New(writeConfig(t, tt.body)))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(New(filepath.Join(t.TempDir(), "nope.toml")))
	assert.Error(t, err)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	want := Default()
	want.Observer = ObserverConfig{Name: "Canberra", Latitude: -35.4014, Longitude: 148.9817}
	want.Zone = 10
	want.Refresh = 2 * time.Second

	var buf bytes.Buffer
	require.NoError(t, WriteFile(&buf, want))
	assert.Contains(t, buf.String(), "[observer]")

	got, err := Load(New(writeConfig(t, buf.String())))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "star_limit = 5\n")
	v := New(path)
	_, err := Load(v)
	require.NoError(t, err)

	reloaded := make(chan Config, 4)
	Watch(v, func(cfg Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	})

	require.NoError(t, os.WriteFile(path, []byte("star_limit = 9\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-reloaded:
			if cfg.StarLimit == 9 {
				return
			}
		case <-deadline:
			t.Fatal("config change was not observed")
		}
	}
}

func TestParseSites(t *testing.T) {
	cat, err := ParseSites([]byte(`
[[site]]
name = "Mauna Kea"
latitude = 19.8207
longitude = -155.4681
zone = -10.0

[[site]]
name = "La Silla"
latitude = -29.2567
longitude = -70.7300
`))
	require.NoError(t, err)
	require.Len(t, cat.Sites, 2)

	site, err := cat.Find("mauna kea")
	require.NoError(t, err)
	assert.Equal(t, -10.0, site.Zone)
	assert.InDelta(t, 19.8207, site.Observer().LatDeg, 1e-9)

	_, err = cat.Find("Arecibo")
	assert.True(t, errors.Is(err, ErrUnknownSite))
}

func TestParseSites_Invalid(t *testing.T) {
	_, err := ParseSites([]byte("[[site]]\nlatitude = 10.0\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseSites([]byte("[[site]]\nname = \"X\"\nlatitude = 91.0\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseSites([]byte("[[site]\n"))
	assert.Error(t, err)
}

func TestLoadSites(t *testing.T) {
	cat, err := LoadSites("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSites(), cat)

	var buf bytes.Buffer
	require.NoError(t, DefaultSites().WriteSites(&buf))
	path := filepath.Join(t.TempDir(), "sites.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loaded, err := LoadSites(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSites(), loaded)

	_, err = LoadSites(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
