package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/logging"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/state"
	"github.com/five82/marquee/internal/ui"
)

// Options configure the marquee application. Non-empty fields override the
// config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/marquee/prefs.toml
	DeckPath   string
	Theme      string
	LogLevel   string
	LogFile    string
	Watch      bool
}

// Run boots the marquee TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg, err = applyOverrides(cfg, opts)
	if err != nil {
		return err
	}

	var output io.Writer = io.Discard
	if cfg.LogFile != "" {
		file, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			return err
		}
		defer file.Close()
		output = file
	}
	logging.Configure(logging.Config{Level: cfg.LogLevel, Output: output})
	log := logging.WithComponent("app")

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Warn().Err(err).Msg("preferences unreadable; using defaults")
	}
	theme := userPrefs.Theme
	if opts.Theme != "" {
		theme = opts.Theme
	}

	store := &state.Store{}
	reloads := make(chan struct{}, 1)
	watcher := NewWatcher(cfg.DeckPath, store, reloads, 0, logging.WithComponent("watcher"))
	if err := watcher.Load(); err != nil {
		return fmt.Errorf("load deck: %w", err)
	}

	log.Info().
		Str("deck", cfg.DeckPath).
		Bool("watch", cfg.Watch).
		Str("theme", theme).
		Msg("marquee starting")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if cfg.Watch {
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}
	g.Go(func() error {
		defer cancel()
		return ui.Run(gctx, ui.Options{
			Store:       store,
			Reloads:     reloads,
			ThemeName:   theme,
			PrefsPath:   opts.PrefsPath,
			LogFile:     cfg.LogFile,
			CellWidthPx: cfg.CellWidthPx,
			Logger:      logging.WithComponent("slider"),
		})
	})

	err = g.Wait()
	log.Info().Err(err).Msg("marquee stopped")
	return err
}

func applyOverrides(cfg config.Config, opts Options) (config.Config, error) {
	if strings.TrimSpace(opts.DeckPath) != "" {
		path, err := config.ExpandPath(opts.DeckPath)
		if err != nil {
			return cfg, fmt.Errorf("resolve deck path: %w", err)
		}
		cfg.DeckPath = path
	}
	if strings.TrimSpace(opts.LogFile) != "" {
		path, err := config.ExpandPath(opts.LogFile)
		if err != nil {
			return cfg, fmt.Errorf("resolve log file: %w", err)
		}
		cfg.LogFile = path
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if opts.Watch {
		cfg.Watch = true
	}
	return cfg, nil
}
