package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/atomicstack/tmux-menubar/internal/backend"
	"github.com/atomicstack/tmux-menubar/internal/logging/events"
	"github.com/atomicstack/tmux-menubar/internal/metrics"
	"github.com/atomicstack/tmux-menubar/internal/tmux"
	"github.com/atomicstack/tmux-menubar/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// Version is stamped at build time.
var Version = "dev"

const shutdownTimeout = 2 * time.Second

// Config describes user-provided application options.
type Config struct {
	SocketPath   string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	OpenMenuBar  bool
	MetricsAddr  string
	PollInterval time.Duration
}

// Run bootstraps and executes the Bubble Tea program. When MetricsAddr is set
// the metrics endpoint is served until the program exits.
func Run(cfg Config) error {
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	watcher := backend.NewWatcher(socketPath, cfg.PollInterval)
	model := ui.NewModel(ui.Options{
		SocketPath:  socketPath,
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
		Verbose:     cfg.Verbose,
		OpenMenuBar: cfg.OpenMenuBar,
		Version:     Version,
		Watcher:     watcher,
	})
	defer model.Shutdown()
	defer tmux.Close()

	var ln net.Listener
	if cfg.MetricsAddr != "" {
		ln, err = net.Listen("tcp", cfg.MetricsAddr)
		if err != nil {
			return fmt.Errorf("metrics listener: %w", err)
		}
		events.App.MetricsListen(ln.Addr().String())
	}

	g, ctx := errgroup.WithContext(context.Background())
	ctx, cancel := context.WithCancel(ctx)
	g.Go(func() error {
		defer cancel()
		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	if ln != nil {
		g.Go(func() error {
			return serveMetrics(ctx, ln, metrics.Default.Handler())
		})
	}
	return g.Wait()
}

// serveMetrics serves h on ln until ctx is done.
func serveMetrics(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{Handler: h, ReadHeaderTimeout: 5 * time.Second}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
