package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/report"
)

// emit writes fields as an aligned listing, or v as JSON with --json.
func (a *app) emit(cmd *cobra.Command, fields []report.Field, v any) error {
	if a.jsonOut {
		return report.WriteJSON(cmd.OutOrStdout(), v)
	}
	report.WriteFields(cmd.OutOrStdout(), fields)
	return nil
}

func deg(v float64) string {
	return fmt.Sprintf("%.4f°", v)
}

// observerLabel names an observer with its coordinates.
func observerLabel(obs astro.Observer) string {
	return fmt.Sprintf("%s (%.4f, %.4f)", obs.Name, obs.LatDeg, obs.LonDeg)
}
