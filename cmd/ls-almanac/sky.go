package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-almanac/internal/config"
	"github.com/litescript/ls-almanac/internal/report"
	"github.com/litescript/ls-almanac/internal/schedule"
	"github.com/litescript/ls-almanac/internal/state"
)

func (a *app) newManager() *state.Manager {
	cfg := state.DefaultConfig()
	cfg.Observer = a.observer
	cfg.StarLimit = a.cfg.StarLimit
	cfg.RefreshInterval = a.cfg.Refresh
	return state.NewManager(cfg)
}

// writeSky prints a snapshot as a table, or as JSON with --json.
func (a *app) writeSky(w io.Writer, snap state.Snapshot) error {
	if a.jsonOut {
		return report.ExportSky(snap.Sky, snap.Events).WriteJSON(w)
	}
	report.WriteSummaryTable(w, snap.Sky)
	return nil
}

func skyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sky [DATETIME]",
		Short: "Sun, Moon and bright stars for the observer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ut, err := a.instantArg(args)
			if err != nil {
				return err
			}
			mgr := a.newManager()
			if _, err := mgr.Refresh(ut.UTC()); err != nil {
				return fmt.Errorf("compute sky: %w", err)
			}
			snap := mgr.Snapshot()
			a.logger.Debug("sky: %d bodies in %s", len(snap.Sky.Bodies), snap.ComputeDuration)
			return a.writeSky(cmd.OutOrStdout(), snap)
		},
	}
}

// watcher refreshes the sky on a schedule and prints what changed.
type watcher struct {
	app     *app
	mgr     *state.Manager
	out     io.Writer
	summary bool

	mu      sync.Mutex
	runs    int
	printed time.Time
}

// run refreshes once and reports whether the run limit has been reached.
func (w *watcher) run(limit int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if limit > 0 && w.runs >= limit {
		return true
	}
	w.runs++

	sky, err := w.mgr.Refresh(w.app.now())
	if err != nil {
		w.app.logger.Error("refresh: %v", err)
		return limit > 0 && w.runs >= limit
	}

	var fresh []state.Event
	for _, e := range w.mgr.Snapshot().Events {
		if e.Timestamp.After(w.printed) {
			fresh = append(fresh, e)
		}
	}
	w.printed = sky.Time

	if w.summary {
		if w.runs > 1 {
			fmt.Fprintln(w.out)
		}
		if err := w.app.writeSky(w.out, w.mgr.Snapshot()); err != nil {
			w.app.logger.Error("write sky: %v", err)
		}
	} else {
		report.WriteEvents(w.out, fresh)
	}

	return limit > 0 && w.runs >= limit
}

func watchCmd(a *app) *cobra.Command {
	var (
		spec    string
		summary bool
		count   int
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh the sky on a schedule and print rise/set events",
		Long: `Refresh the sky on a schedule and print rise and set events as bodies
cross the horizon.

The schedule is a five-field cron expression, a descriptor such as
"@every 1m", or "@sunrise [offset]" / "@sunset [offset]" for the
observer, e.g. "@sunset -30m".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sched, err := schedule.Parse(spec, a.observer)
			if err != nil {
				return fmt.Errorf("%w: %v", errInvalidInput, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := &watcher{app: a, mgr: a.newManager(), out: cmd.OutOrStdout(), summary: summary}
			if a.site == "" {
				config.Watch(a.viper, func(cfg config.Config, err error) {
					if err != nil {
						a.logger.Warn("config reload: %v", err)
						return
					}
					a.logger.Info("config reloaded, observer %s", cfg.Observer.Name)
					w.mgr.SetObserver(cfg.AstroObserver())
				})
			}
			return runWatch(ctx, w, sched, count)
		},
	}
	cmd.Flags().StringVar(&spec, "schedule", "@every 1m", "refresh schedule")
	cmd.Flags().BoolVar(&summary, "summary", false, "print the full sky table on every run")
	cmd.Flags().IntVar(&count, "count", 0, "stop after this many runs (0 runs until interrupted)")
	return cmd
}

// runWatch does one refresh immediately, then one per schedule activation
// until ctx ends or limit runs have completed.
func runWatch(ctx context.Context, w *watcher, sched cron.Schedule, limit int) error {
	if w.run(limit) {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	c.Schedule(sched, cron.FuncJob(func() {
		if w.run(limit) {
			cancel()
		}
	}))

	next := sched.Next(w.app.now())
	if next.IsZero() {
		return fmt.Errorf("schedule never fires for %s", w.mgr.Observer().Name)
	}
	w.app.logger.Info("watching %s, next run %s", w.mgr.Observer().Name, next.UTC().Format(time.RFC3339))

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
