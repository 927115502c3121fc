package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/civil"
	"github.com/litescript/ls-almanac/internal/config"
	"github.com/litescript/ls-almanac/internal/logging"
	"github.com/litescript/ls-almanac/internal/version"
)

// app carries the loaded configuration into every command.
type app struct {
	viper    *viper.Viper
	cfg      config.Config
	logger   *logging.Logger
	observer astro.Observer
	zone     float64

	// Global flags
	configFile string
	site       string
	at         string
	local      bool
	jsonOut    bool

	now func() time.Time
}

// flagBindings maps config keys to the persistent flags that override them.
var flagBindings = map[string]string{
	"observer.name":      "name",
	"observer.latitude":  "lat",
	"observer.longitude": "lon",
	"zone":               "zone",
	"log_level":          "log-level",
	"sites_file":         "sites",
}

func newRootCmd() *cobra.Command {
	a := &app{now: time.Now}

	rootCmd := &cobra.Command{
		Use:   "ls-almanac",
		Short: "Terminal almanac for civil time, sidereal time and sky positions",
		Long: `ls-almanac converts between civil, Julian and sidereal time, transforms
celestial coordinates, and computes Sun, Moon and bright-star positions
for an observing site.

Times are read as UT unless --local is given. The observing site comes
from .ls-almanac.toml, ALMANAC_* environment variables, --site, or
--lat/--lon.`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default .ls-almanac.toml)")
	flags.StringVar(&a.site, "site", "", "observing site from the site catalog")
	flags.String("name", "", "observer name")
	flags.Float64("lat", 0, "observer latitude in degrees, north positive")
	flags.Float64("lon", 0, "observer longitude in degrees, east positive")
	flags.Float64("zone", 0, "time zone in hours east of UT")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("sites", "", "site catalog file (TOML)")
	flags.StringVar(&a.at, "at", "now", "instant, as YYYY-MM-DD[THH:MM:SS] or now")
	flags.BoolVar(&a.local, "local", false, "read --at as local time in --zone")
	flags.BoolVar(&a.jsonOut, "json", false, "output as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "time", Title: "Time:"},
		&cobra.Group{ID: "sky", Title: "Sky:"},
		&cobra.Group{ID: "live", Title: "Live:"},
	)

	for _, c := range []*cobra.Command{
		jdCmd(a), dateCmd(a), weekdayCmd(a), gstCmd(a), utCmd(a), lstCmd(a), deltaTCmd(a),
	} {
		c.GroupID = "time"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{
		convertCmd(a), sunCmd(a), moonCmd(a), starCmd(a), separationCmd(a), riseSetCmd(a), passesCmd(a), skyCmd(a),
	} {
		c.GroupID = "sky"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{watchCmd(a), tuiCmd(a)} {
		c.GroupID = "live"
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(sitesCmd(a), configCmd(a), versionCmd())

	return rootCmd
}

// load merges file, environment and flag settings, then resolves the
// observing site.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	a.viper = config.New(a.configFile)

	flags := cmd.Flags()
	for key, name := range flagBindings {
		if f := flags.Lookup(name); f != nil && f.Changed {
			if err := a.viper.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind --%s: %w", name, err)
			}
		}
	}

	cfg, err := config.Load(a.viper)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = logging.New(logging.ParseLevel(cfg.LogLevel))
	a.logger.SetOutput(cmd.ErrOrStderr())
	if used := a.viper.ConfigFileUsed(); used != "" {
		a.logger.Debug("config: %s", used)
	}

	a.observer = cfg.AstroObserver()
	a.zone = cfg.Zone
	if (flags.Changed("lat") || flags.Changed("lon")) && !flags.Changed("name") {
		a.observer.Name = "custom"
	}

	if a.site != "" {
		sites, err := config.LoadSites(cfg.SitesFile)
		if err != nil {
			return err
		}
		s, err := sites.Find(a.site)
		if err != nil {
			return err
		}
		a.observer = s.Observer()
		if !flags.Changed("zone") {
			a.zone = s.Zone
		}
	}

	a.logger.Debug("observer: %s (%.4f, %.4f) zone %+g h",
		a.observer.Name, a.observer.LatDeg, a.observer.LonDeg, a.zone)
	return nil
}

// instant returns the UT instant selected by --at and --local.
func (a *app) instant() (civil.DateTime, error) {
	if a.at == "" || a.at == "now" {
		return civil.FromInstant(a.now().UTC()), nil
	}
	dt, err := parseDateTime(a.at)
	if err != nil {
		return civil.DateTime{}, err
	}
	if a.local {
		ut := civil.UTFromLocal(dt, a.zone)
		a.logger.Debug("local %s (zone %+g h) is UT %s", dt, a.zone, ut)
		return ut, nil
	}
	return dt, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "ls-almanac %s\n", version.Version)
			return nil
		},
	}
}
