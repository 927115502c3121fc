package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-almanac/internal/config"
	"github.com/litescript/ls-almanac/internal/report"
)

func sitesCmd(a *app) *cobra.Command {
	var asTOML bool
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "List the observing-site catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sites, err := config.LoadSites(a.cfg.SitesFile)
			if err != nil {
				return err
			}
			switch {
			case asTOML:
				return sites.WriteSites(cmd.OutOrStdout())
			case a.jsonOut:
				return report.WriteJSON(cmd.OutOrStdout(), sites.Sites)
			}

			fields := make([]report.Field, 0, len(sites.Sites))
			for _, s := range sites.Sites {
				fields = append(fields, report.Field{
					Label: s.Name,
					Value: fmt.Sprintf("%9.4f %10.4f  zone %+g", s.Latitude, s.Longitude, s.Zone),
				})
			}
			report.WriteFields(cmd.OutOrStdout(), fields)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asTOML, "toml", false, "print as a TOML site catalog")
	return cmd
}

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	cmd.AddCommand(configInitCmd(a), configShowCmd(a))
	return cmd
}

func configInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write the effective configuration to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName + ".toml"
			if len(args) > 0 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("stat %s: %w", path, err)
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create config: %w", err)
			}
			defer f.Close()

			if err := config.WriteFile(f, a.cfg); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			a.logger.Info("wrote %s", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func configShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file := a.viper.ConfigFileUsed()
			if file == "" {
				file = "(none)"
			}
			sites := a.cfg.SitesFile
			if sites == "" {
				sites = "(built-in)"
			}
			return a.emit(cmd, []report.Field{
				{Label: "Config file", Value: file},
				{Label: "Observer", Value: observerLabel(a.observer)},
				{Label: "Zone", Value: fmt.Sprintf("%+g h", a.zone)},
				{Label: "Log level", Value: a.cfg.LogLevel},
				{Label: "Refresh", Value: a.cfg.Refresh.String()},
				{Label: "Star limit", Value: strconv.Itoa(a.cfg.StarLimit)},
				{Label: "Sites file", Value: sites},
			}, a.cfg)
		},
	}
}
