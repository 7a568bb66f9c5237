package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dkim82/studyhall/internal/api"
	"github.com/dkim82/studyhall/internal/config"
	"github.com/dkim82/studyhall/internal/prefs"
	"github.com/dkim82/studyhall/internal/session"
	"github.com/dkim82/studyhall/internal/ui"
)

// Options configure the studyhall application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/studyhall/prefs.toml
	PollEvery  int    // seconds; zero uses the configured interval
}

// Run boots the studyhall TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		// A broken prefs file falls back to defaults; the session
		// simply starts signed out.
		log.Printf("load prefs: %v", err)
	}

	client, err := api.NewClient(cfg.ServerURL)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	sess := session.Restore(opts.PrefsPath)

	interval := cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Session:   sess,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
