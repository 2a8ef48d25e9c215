// Package cli wires the ctxtree command line application.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/ctxtree/internal/application/port"
	"github.com/bnema/ctxtree/internal/application/usecase"
	"github.com/bnema/ctxtree/internal/cli/styles"
	"github.com/bnema/ctxtree/internal/domain/build"
	"github.com/bnema/ctxtree/internal/infrastructure/aicontext"
	"github.com/bnema/ctxtree/internal/infrastructure/clipboard"
	"github.com/bnema/ctxtree/internal/infrastructure/config"
	"github.com/bnema/ctxtree/internal/logging"
)

const logTimeFormat = "15:04:05"

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	Theme         *styles.Theme
	BuildInfo     build.Info
	Clipboard     port.Clipboard

	// Use cases
	Tracker  *usecase.TrackContextUseCase
	ReplayUC *usecase.ReplayNavigationUseCase
	CopyUC   *usecase.CopyURLUseCase

	// Context with logger
	ctx        context.Context
	logCleanup func()
}

// NewApp creates a new CLI application with all dependencies.
func NewApp() (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, err
	}
	return newApp(mgr)
}

// NewAppForConfigDir creates an App reading its config from dir.
func NewAppForConfigDir(dir string) (*App, error) {
	mgr, err := config.NewManagerForDir(dir)
	if err != nil {
		return nil, err
	}
	return newApp(mgr)
}

func newApp(mgr *config.Manager) (*App, error) {
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	// Logs stay off stderr so they never interleave with tree output or the TUI.
	logger, logCleanup, err := logging.NewWithFile(
		logging.Config{Level: logging.ParseLevel(cfg.Logging.Level), Format: cfg.Logging.Format, TimeFormat: logTimeFormat},
		logging.FileConfig{Enabled: cfg.Logging.EnableFileLog, LogDir: cfg.Logging.LogDir, WriteToStderr: false},
	)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	ctx := logging.WithContext(context.Background(), logger)

	tracker := usecase.NewTrackContextUseCase(cfg.Context.TrackingEnabled, cfg.Context.DefaultTitle)
	clip := clipboard.New()

	app := &App{
		Config:        cfg,
		ConfigManager: mgr,
		Theme:         styles.NewTheme(cfg),
		Clipboard:     clip,
		Tracker:       tracker,
		ReplayUC:      usecase.NewReplayNavigationUseCase(tracker),
		CopyUC:        usecase.NewCopyURLUseCase(tracker, clip),
		ctx:           ctx,
		logCleanup:    logCleanup,
	}

	mgr.OnConfigChange(app.applyConfig)

	logger.Debug().
		Str("config", mgr.ConfigFilePath()).
		Bool("tracking", cfg.Context.TrackingEnabled).
		Msg("app initialized")

	return app, nil
}

// applyConfig reacts to a reloaded config file.
func (a *App) applyConfig(cfg *config.Config) {
	a.Config = cfg
	a.Theme = styles.NewTheme(cfg)
	a.Tracker.SetTracking(logging.WithComponent(a.ctx, "config"), cfg.Context.TrackingEnabled)
}

// WatchConfig starts live reload of the config file.
func (a *App) WatchConfig() error {
	return a.ConfigManager.Watch()
}

// SelectionSink builds the sink picked selections are sent to.
// The rendered selection goes to out, and also to the clipboard when copy is set.
func (a *App) SelectionSink(out io.Writer, format aicontext.Format, copyToClipboard bool) port.ContextSink {
	maxTitle := a.Config.Context.MaxTitleLength
	writer := aicontext.NewWriter(out, format, maxTitle)
	if !copyToClipboard {
		return writer
	}
	return aicontext.MultiSink{writer, aicontext.NewClipboardSink(a.Clipboard, format, maxTitle)}
}

// SelectionFormat returns the configured selection format.
func (a *App) SelectionFormat() aicontext.Format {
	format, err := aicontext.ParseFormat(string(a.Config.Context.SelectionFormat))
	if err != nil {
		return aicontext.FormatMarkdown
	}
	return format
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
