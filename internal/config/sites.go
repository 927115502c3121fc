package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/litescript/ls-almanac/internal/astro"
)

// ErrUnknownSite is returned when a site name is not in the catalog.
var ErrUnknownSite = errors.New("unknown site")

// Site is a named observing location.
type Site struct {
	Name      string  `toml:"name"`
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"` // east positive
	Zone      float64 `toml:"zone"`      // hours east of UT
}

// Observer returns the site as an engine observer.
func (s Site) Observer() astro.Observer {
	return astro.Observer{Name: s.Name, LatDeg: s.Latitude, LonDeg: s.Longitude}
}

// SiteCatalog is a list of sites, stored as [[site]] tables.
type SiteCatalog struct {
	Sites []Site `toml:"site"`
}

// DefaultSites returns the built-in catalog: Greenwich and the three Deep
// Space Network complexes.
func DefaultSites() SiteCatalog {
	return SiteCatalog{Sites: []Site{
		{Name: "Greenwich", Latitude: 51.4769, Longitude: 0, Zone: 0},
		{Name: "Goldstone", Latitude: 35.4267, Longitude: -116.8900, Zone: -8},
		{Name: "Canberra", Latitude: -35.4014, Longitude: 148.9817, Zone: 10},
		{Name: "Madrid", Latitude: 40.4314, Longitude: -4.2481, Zone: 1},
	}}
}

// ParseSites decodes a TOML site catalog and validates every entry.
func ParseSites(data []byte) (SiteCatalog, error) {
	var cat SiteCatalog
	if err := toml.Unmarshal(data, &cat); err != nil {
		return SiteCatalog{}, fmt.Errorf("parse sites: %w", err)
	}
	for i, s := range cat.Sites {
		if strings.TrimSpace(s.Name) == "" {
			return SiteCatalog{}, fmt.Errorf("%w: site %d has no name", ErrInvalidConfig, i+1)
		}
		if s.Latitude < -90 || s.Latitude > 90 || s.Longitude < -180 || s.Longitude > 180 {
			return SiteCatalog{}, fmt.Errorf("%w: site %q coordinates out of range", ErrInvalidConfig, s.Name)
		}
	}
	return cat, nil
}

// LoadSites reads a site catalog from path. An empty path yields the
// built-in catalog.
func LoadSites(path string) (SiteCatalog, error) {
	if path == "" {
		return DefaultSites(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return SiteCatalog{}, fmt.Errorf("read sites: %w", err)
	}
	return ParseSites(data)
}

// Find looks up a site by case-insensitive name.
func (c SiteCatalog) Find(name string) (Site, error) {
	want := strings.TrimSpace(name)
	for _, s := range c.Sites {
		if strings.EqualFold(s.Name, want) {
			return s, nil
		}
	}
	return Site{}, fmt.Errorf("%w: %q", ErrUnknownSite, name)
}

// WriteSites encodes the catalog as TOML.
func (c SiteCatalog) WriteSites(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// fileConfig mirrors the on-disk layout of .ls-almanac.toml.
type fileConfig struct {
	Observer  ObserverConfig `toml:"observer"`
	Zone      float64        `toml:"zone"`
	LogLevel  string         `toml:"log_level"`
	Refresh   string         `toml:"refresh"`
	StarLimit int            `toml:"star_limit"`
	SitesFile string         `toml:"sites_file"`
}

// WriteFile encodes cfg in the layout Load reads back.
func WriteFile(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(fileConfig{
		Observer:  cfg.Observer,
		Zone:      cfg.Zone,
		LogLevel:  cfg.LogLevel,
		Refresh:   cfg.Refresh.String(),
		StarLimit: cfg.StarLimit,
		SitesFile: cfg.SitesFile,
	})
}
