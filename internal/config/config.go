// Package config loads ls-almanac settings from .ls-almanac.toml, ALMANAC_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/litescript/ls-almanac/internal/astro"
)

const (
	// FileName is the config file name without extension.
	FileName = ".ls-almanac"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "ALMANAC"
)

// envKeyReplacer maps nested keys such as observer.latitude to
// ALMANAC_OBSERVER_LATITUDE.
var envKeyReplacer = strings.NewReplacer(".", "_")

// ErrInvalidConfig reports a value outside its allowed range.
var ErrInvalidConfig = errors.New("invalid config")

// ObserverConfig is the default observing site.
type ObserverConfig struct {
	Name      string  `mapstructure:"name" toml:"name"`
	Latitude  float64 `mapstructure:"latitude" toml:"latitude"`
	Longitude float64 `mapstructure:"longitude" toml:"longitude"` // east positive
}

// Config holds all runtime configuration.
type Config struct {
	Observer  ObserverConfig `mapstructure:"observer"`
	Zone      float64        `mapstructure:"zone"` // hours east of UT
	LogLevel  string         `mapstructure:"log_level"`
	Refresh   time.Duration  `mapstructure:"refresh"`
	StarLimit int            `mapstructure:"star_limit"`
	SitesFile string         `mapstructure:"sites_file"`
}

// AstroObserver returns the configured site as an engine observer.
func (c Config) AstroObserver() astro.Observer {
	return astro.Observer{
		Name:   c.Observer.Name,
		LatDeg: c.Observer.Latitude,
		LonDeg: c.Observer.Longitude,
	}
}

// Validate checks coordinate and interval ranges.
func (c Config) Validate() error {
	switch {
	case c.Observer.Latitude < -90 || c.Observer.Latitude > 90:
		return fmt.Errorf("%w: observer.latitude %v outside [-90, 90]", ErrInvalidConfig, c.Observer.Latitude)
	case c.Observer.Longitude < -180 || c.Observer.Longitude > 180:
		return fmt.Errorf("%w: observer.longitude %v outside [-180, 180]", ErrInvalidConfig, c.Observer.Longitude)
	case c.Zone < -14 || c.Zone > 14:
		return fmt.Errorf("%w: zone %v outside [-14, 14]", ErrInvalidConfig, c.Zone)
	case c.Refresh <= 0:
		return fmt.Errorf("%w: refresh %s must be positive", ErrInvalidConfig, c.Refresh)
	case c.StarLimit < 0:
		return fmt.Errorf("%w: star_limit %d must not be negative", ErrInvalidConfig, c.StarLimit)
	}
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Observer:  ObserverConfig{Name: "Greenwich", Latitude: 51.4769, Longitude: 0},
		Zone:      0,
		LogLevel:  "info",
		Refresh:   time.Second,
		StarLimit: 15,
	}
}

// New returns a viper instance with defaults, search paths and environment
// bindings set. An explicit file overrides the search paths.
func New(file string) *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault("observer.name", d.Observer.Name)
	v.SetDefault("observer.latitude", d.Observer.Latitude)
	v.SetDefault("observer.longitude", d.Observer.Longitude)
	v.SetDefault("zone", d.Zone)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("refresh", d.Refresh)
	v.SetDefault("star_limit", d.StarLimit)
	v.SetDefault("sites_file", "")

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	return v
}

// Load reads the config file, if any, and decodes the merged settings. A
// missing file is not an error when no explicit file was requested.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Watch re-decodes the config whenever the file changes and passes the result
// to fn. It has no effect when no config file was loaded.
func Watch(v *viper.Viper, fn func(Config, error)) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		fn(decode(v))
	})
	v.WatchConfig()
}
