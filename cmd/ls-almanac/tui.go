package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-almanac/internal/config"
	"github.com/litescript/ls-almanac/internal/ui"
)

func tuiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Live sky clock in the terminal",
		Long: `Launch the live sky clock: time scales, body positions, a Sun altitude
sparkline and a sky view. The observer follows edits to the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr := a.newManager()

			// Headless fallback
			if !isTerminal(cmd.OutOrStdout()) {
				a.logger.Warn("stdout is not a terminal, printing a single sky table")
				if _, err := mgr.Refresh(a.now()); err != nil {
					return fmt.Errorf("compute sky: %w", err)
				}
				return a.writeSky(cmd.OutOrStdout(), mgr.Snapshot())
			}

			p := tea.NewProgram(ui.New(mgr, a.zone), tea.WithAltScreen())

			// Log lines would tear the alternate screen
			a.logger.SetOutput(io.Discard)

			if a.site == "" {
				config.Watch(a.viper, func(cfg config.Config, err error) {
					if err != nil {
						p.Send(ui.ErrorMsg{Error: fmt.Errorf("config reload: %w", err)})
						return
					}
					p.Send(ui.ObserverChangedMsg{Observer: cfg.AstroObserver()})
				})
			}

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
