package cli

import (
	"context"
	"log"
	"os"

	"github.com/studiowebux/deskkeys/internal/analytics"
	"github.com/studiowebux/deskkeys/internal/bridge"
	"github.com/studiowebux/deskkeys/internal/config"
	"github.com/studiowebux/deskkeys/internal/keybinds"
	"github.com/studiowebux/deskkeys/internal/shortcut"
	"golang.org/x/sync/errgroup"
)

// ServeOptions contains options for running the bridge
type ServeOptions struct {
	Addr         string // overrides settings.yaml
	KeybindsPath string
}

// NewBridge binds registry onto d and builds a bridge server for it.
// The returned cleanup closes the usage database, if one was opened.
func NewBridge(d *shortcut.Dispatcher, settings config.Settings, registry *keybinds.Registry, addr string) (*bridge.Server, func()) {
	actionFor := func(s shortcut.Shortcut) string {
		return string(registry.ActionFor(s))
	}

	cleanup := func() {}
	if settings.TrackUsage {
		mgr, err := analytics.NewManager(config.DatabasePath)
		if err != nil {
			log.Printf("usage tracking disabled: %v", err)
		} else {
			d.AddObserver(mgr.Observer("bridge", actionFor))
			cleanup = func() { mgr.Close() }
		}
	}

	keybinds.Bind(d, registry, pageHandlers(registry))

	if addr == "" {
		addr = settings.ListenAddr
	}
	srv := bridge.NewServer(&bridge.Config{
		Addr:           addr,
		AllowedOrigins: settings.AllowedOrigins,
		Logging:        true,
	}, d, actionFor)

	return srv, cleanup
}

// Serve runs the bridge until ctx is cancelled
func Serve(ctx context.Context, opts ServeOptions) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	registry, err := loadRegistry(opts.KeybindsPath)
	if err != nil {
		return err
	}

	d := shortcut.Default()
	d.SetLogger(log.New(os.Stderr, "[shortcut] ", log.LstdFlags))

	srv, cleanup := NewBridge(d, settings, registry, opts.Addr)
	defer cleanup()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})
	g.Go(func() error {
		watchDispatches(ctx, srv, log.Default())
		return nil
	})
	return g.Wait()
}

// watchDispatches logs every fired shortcut until ctx is done
func watchDispatches(ctx context.Context, srv *bridge.Server, logger *log.Logger) {
	var last uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-srv.NotifyChannel():
			for _, entry := range srv.GetLogs() {
				if entry.Seq <= last {
					continue
				}
				last = entry.Seq
				if entry.Handled {
					logger.Printf("%s fired %s (%s)", entry.Remote, entry.Combo, entry.Action)
				}
			}
		}
	}
}
