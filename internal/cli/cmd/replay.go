package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/ctxtree/internal/cli"
	"github.com/bnema/ctxtree/internal/cli/styles"
	"github.com/bnema/ctxtree/internal/domain/entity"
	"github.com/bnema/ctxtree/internal/infrastructure/eventlog"
	"github.com/bnema/ctxtree/internal/logging"
)

const followRedrawInterval = 250 * time.Millisecond

var (
	replayFlat   bool
	replayJSON   bool
	replayFollow bool
)

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Rebuild the context tree from recorded navigation events",
	Long: `Apply every event in FILE to an empty context tree and print the result.

FILE may be JSON lines (.jsonl), a JSON array (.json) or YAML (.yaml, .yml).
With --follow, FILE must be JSON lines: the tree is redrawn as the browser
appends events, until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().BoolVar(&replayFlat, "flat", false, "print one indented line per page")
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "output as JSON")
	replayCmd.Flags().BoolVarP(&replayFollow, "follow", "f", false, "keep reading events appended to FILE")
}

// replayReport is the --json output.
type replayReport struct {
	Roots   []*entity.ContextNode              `json:"roots"`
	Stats   entity.ContextStats                `json:"stats"`
	Applied map[entity.NavigationEventKind]int `json:"applied"`
	Skipped int                                `json:"skipped"`
}

func runReplay(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	src, err := eventlog.NewSource(args[0])
	if err != nil {
		return err
	}

	if replayFollow {
		return runReplayFollow(cmd.Context(), app, src, cmd.OutOrStdout())
	}

	ctx := app.Ctx()
	events, err := src.Events(ctx)
	if err != nil {
		return err
	}
	out := app.ReplayUC.Execute(ctx, events)

	w := cmd.OutOrStdout()
	if replayJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(replayReport{
			Roots:   app.Tracker.Roots(),
			Stats:   out.Stats,
			Applied: out.Applied,
			Skipped: out.Skipped,
		})
	}

	printForest(w, app)
	if out.Skipped > 0 {
		fmt.Fprintln(w, app.Theme.WarningStyle.Render(fmt.Sprintf("%s %d invalid event(s) skipped", styles.IconWarning, out.Skipped)))
	}
	return nil
}

func printForest(w io.Writer, app *cli.App) {
	renderer := styles.NewForestRenderer(app.Theme, app.Config.Context.MaxTitleLength)
	roots := app.Tracker.Roots()
	if replayFlat {
		fmt.Fprint(w, renderer.RenderFlat(roots))
	} else {
		fmt.Fprint(w, renderer.Render(roots))
	}
	fmt.Fprintln(w, renderer.RenderStats(app.Tracker.Stats()))
}

// runReplayFollow tails src and redraws the tree when it changes.
// Config reloads toggle tracking while following.
func runReplayFollow(parent context.Context, app *cli.App, src *eventlog.Source, w io.Writer) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithContext(ctx, *logging.FromContext(app.Ctx()))
	log := logging.FromContext(ctx)

	if err := app.WatchConfig(); err != nil {
		log.Warn().Err(err).Msg("config watch unavailable")
	}

	changed := make(chan struct{}, 1)
	notify := func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}

	// Follow returns nil once the file goes away, which must also end the redraw loop.
	followCtx, cancelFollow := context.WithCancel(ctx)
	defer cancelFollow()
	g, gctx := errgroup.WithContext(followCtx)

	g.Go(func() error {
		defer cancelFollow()
		return src.Follow(gctx, func(ctx context.Context, event entity.NavigationEvent) error {
			if err := app.ReplayUC.Apply(ctx, event); err != nil {
				log.Warn().Err(err).Str("kind", string(event.Kind)).Msg("skipping event")
				return nil
			}
			notify()
			return nil
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(followRedrawInterval)
		defer ticker.Stop()

		dirty := true
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-changed:
				dirty = true
			case <-ticker.C:
				if !dirty {
					continue
				}
				dirty = false
				// Clear screen, then draw.
				fmt.Fprint(w, "\033[H\033[2J")
				printForest(w, app)
				fmt.Fprintln(w, trackingLine(app))
			}
		}
	})

	return g.Wait()
}

func trackingLine(app *cli.App) string {
	t := app.Theme
	if app.Tracker.IsTracking() {
		return t.SuccessStyle.Render(styles.IconPlay + " tracking")
	}
	return t.WarningStyle.Render(styles.IconPause + " tracking paused")
}
