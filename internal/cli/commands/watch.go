package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/cmsgen/internal/cli/config"
)

const debounceDelay = 100 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the schema export changes",
		Long: `Generate once, then watch the schema export and run a full
regeneration after every change. Stop with Ctrl+C.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				return errNoConfig
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := &SchemaWatcher{
				Path:   cfg.Schema,
				Logger: cfg.Logger(),
				Rebuild: func(ctx context.Context) error {
					_, err := Generate(ctx, cfg, cfg.Logger())
					return err
				},
			}
			return w.Run(ctx)
		},
	}

	addOutputFlags(cmd)

	return cmd
}

// SchemaWatcher reruns Rebuild whenever the file at Path is written.
type SchemaWatcher struct {
	Path    string
	Logger  *slog.Logger
	Rebuild func(context.Context) error
}

// Run builds once and then rebuilds on every change until ctx is done.
// The initial build must succeed; later failures are logged and the
// watcher keeps going.
func (w *SchemaWatcher) Run(ctx context.Context) error {
	if w.Logger == nil {
		w.Logger = slog.New(slog.DiscardHandler)
	}
	if err := w.Rebuild(ctx); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace the file instead of writing it in place, so the
	// directory is watched and events are filtered by name.
	dir := filepath.Dir(w.Path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.Logger.Info("watching for changes", "schema", w.Path)
	return w.loop(ctx, watcher.Events, watcher.Errors)
}

func (w *SchemaWatcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounceDelay)
			timerC = timer.C
		case <-timerC:
			timer, timerC = nil, nil
			w.Logger.Info("change detected", "schema", filepath.Base(w.Path))
			if err := w.Rebuild(ctx); err != nil {
				w.Logger.Error("rebuild failed", "error", err)
			}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.Logger.Warn("watcher error", "error", err)
		}
	}
}

// relevant reports whether event touches the watched schema file.
func (w *SchemaWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == filepath.Clean(w.Path)
}
