// Package app wires configuration, the tailer, and the UI together.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/droidtail/droidtail/internal/config"
	"github.com/droidtail/droidtail/internal/logcat"
	"github.com/droidtail/droidtail/internal/prefs"
	"github.com/droidtail/droidtail/internal/tail"
	"github.com/droidtail/droidtail/internal/ui"
)

// Options configure the viewer.
type Options struct {
	LogPath    string // explicit log file; empty discovers the newest
	Project    string // project root for discovery and app id
	NoPackage  bool   // start with the package filter disabled
	PollMillis int    // file poll interval; zero uses the default
	NoReplay   bool   // skip seeding the buffer with existing content
	PrefsPath  string // empty uses ~/.config/droidtail/prefs.toml
}

// Run boots the viewer until quit or the context is cancelled. A log
// file that cannot be resolved or opened is returned as an error before
// any terminal state is touched.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Resolve(config.Options{
		LogPath:   opts.LogPath,
		Project:   opts.Project,
		NoPackage: opts.NoPackage,
	})
	if err != nil {
		return err
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	ring := logcat.NewRing(logcat.DefaultCapacity)

	var interval time.Duration
	if opts.PollMillis > 0 {
		interval = time.Duration(opts.PollMillis) * time.Millisecond
	}
	tailer := tail.New(cfg.LogPath, ring, tail.Options{
		Interval: interval,
		Replay:   !opts.NoReplay,
	})
	if err := tailer.Open(); err != nil {
		return fmt.Errorf("%s: %w", cfg.LogPath, err)
	}

	// The tailer owns its goroutine; the UI drains its events. Quitting
	// cancels the context, which stops the polling loop and closes the
	// file handle before Run returns.
	tailCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = tailer.Run(tailCtx)
	}()

	uiErr := ui.Run(ui.Options{
		Context: ctx,
		Ring:    ring,
		Events:  tailer.Events(),
		LogPath: cfg.LogPath,
		AppID:   cfg.AppID,
		Filter: logcat.Filter{
			PackageEnabled: cfg.PackageEnabled,
			Package:        cfg.AppID,
		},
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})

	cancel()
	<-done
	if uiErr != nil && ctx.Err() != nil {
		// Shutdown by signal exits cleanly.
		return nil
	}
	return uiErr
}
