package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/config"
	"github.com/litescript/ls-almanac/internal/report"
)

func passesCmd(a *app) *cobra.Command {
	var (
		hours   float64
		minAlt  float64
		catalog bool
	)
	cmd := &cobra.Command{
		Use:   "passes BODY",
		Short: "Intervals a body spends above the horizon, per site",
		Long: `List the intervals a body spends above a minimum altitude from --at
onwards. Each pass is marked PAST, NOW, NEXT or FUTURE relative to the
current time. With --catalog every site in the catalog is planned.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if hours <= 0 {
				return fmt.Errorf("%w: --hours must be positive", errInvalidInput)
			}
			ut, err := a.instant()
			if err != nil {
				return err
			}

			observers := []astro.Observer{a.observer}
			if catalog {
				sites, err := config.LoadSites(a.cfg.SitesFile)
				if err != nil {
					return err
				}
				observers = observers[:0]
				for _, s := range sites.Sites {
					observers = append(observers, s.Observer())
				}
			}

			span := time.Duration(hours * float64(time.Hour))
			name, samples, threshold, err := trackBody(args[0], ut.UTC(), span)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("min-alt") {
				threshold = minAlt
			}

			plan, err := astro.ComputePassPlan(name, observers, samples, threshold, a.now().UTC())
			if err != nil {
				return err
			}
			a.logger.Debug("passes: %d for %s over %d sites", len(plan.Passes), name, len(observers))

			if a.jsonOut {
				return report.WriteJSON(cmd.OutOrStdout(), plan)
			}
			report.WritePasses(cmd.OutOrStdout(), plan)
			return nil
		},
	}
	cmd.Flags().Float64Var(&hours, "hours", 24, "length of the planning window")
	cmd.Flags().Float64Var(&minAlt, "min-alt", 0, "minimum altitude in degrees (default: the body's rise altitude)")
	cmd.Flags().BoolVar(&catalog, "catalog", false, "plan every site in the catalog")
	return cmd
}
