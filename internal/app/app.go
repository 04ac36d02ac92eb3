package app

import (
	"context"
	"fmt"
	"time"

	"github.com/exads/chtop/internal/clickhouse"
	"github.com/exads/chtop/internal/config"
	"github.com/exads/chtop/internal/prefs"
	"github.com/exads/chtop/internal/state"
	"github.com/exads/chtop/internal/ui"
)

// Options configure the chtop application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/chtop/prefs.toml
	Addr       string // overrides the configured server address
	PollEvery  int    // seconds; zero uses the configured value
}

// Run boots the chtop TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Addr != "" {
		cfg.Addr = opts.Addr
	}
	if opts.PollEvery > 0 {
		cfg.Refresh = time.Duration(opts.PollEvery) * time.Second
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := clickhouse.NewClient(clickhouse.Options{
		Addr:     cfg.Addr,
		User:     cfg.User,
		Password: cfg.Password,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return fmt.Errorf("init clickhouse client: %w", err)
	}

	store := &state.Store{}

	// The first fetch gates startup: an unreachable server refuses to start
	// instead of showing an error banner over an empty table.
	probeCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	procs, err := client.ListProcesses(probeCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("connect to clickhouse at %s: %w", cfg.Addr, err)
	}
	store.Update(procs, nil)

	StartPoller(ctx, store, client, cfg.Refresh, cfg.Timeout)

	return ui.Run(ui.Options{
		Context:   ctx,
		Client:    client,
		Store:     store,
		Config:    cfg,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
}
