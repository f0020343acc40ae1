// Package app implements the application layer for pathcache.
package app

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"go.trai.ch/pathcache/internal/adapters/beans"
	"go.trai.ch/pathcache/internal/adapters/linear"
	"go.trai.ch/pathcache/internal/adapters/metrics"
	"go.trai.ch/pathcache/internal/adapters/throttle"
	"go.trai.ch/pathcache/internal/adapters/watcher"
	"go.trai.ch/pathcache/internal/core/domain"
	"go.trai.ch/pathcache/internal/core/ports"
	"go.trai.ch/pathcache/internal/engine/graphcache"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	loader   ports.ScenarioLoader
	registry *beans.Registry
	accessor ports.Accessor
	caches   *graphcache.Factory
	metrics  *metrics.Collector
	gate     *throttle.Gate
	tracer   ports.Tracer
	logger   ports.Logger
	watchers watcher.Factory
}

// New creates a new App instance.
func New(
	loader ports.ScenarioLoader,
	registry *beans.Registry,
	accessor ports.Accessor,
	caches *graphcache.Factory,
	collector *metrics.Collector,
	gate *throttle.Gate,
	tracer ports.Tracer,
	log ports.Logger,
	watchers watcher.Factory,
) *App {
	return &App{
		loader:   loader,
		registry: registry,
		accessor: accessor,
		caches:   caches,
		metrics:  collector,
		gate:     gate,
		tracer:   tracer,
		logger:   log,
		watchers: watchers,
	}
}

// ReplayOptions configuration for the Replay method.
type ReplayOptions struct {
	// Out receives the rendered events. Defaults to stdout.
	Out io.Writer
	// Async resolves properties on the background loader.
	Async bool
	// LoadRate caps load batches per second. Zero is unlimited.
	LoadRate float64
	// Watch replays again whenever the scenario file changes, until the
	// context is cancelled.
	Watch bool
	// Debounce is the quiet period before a watched change is replayed.
	Debounce time.Duration
	// MetricsAddr, when set, serves Prometheus metrics for the lifetime of
	// the command.
	MetricsAddr string
}

// Replay runs the scenario at path against a fresh cache and renders every
// event it produces.
func (a *App) Replay(ctx context.Context, path string, opts ReplayOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.MetricsAddr == "" {
		return a.replayOrWatch(ctx, path, opts)
	}

	ln, err := net.Listen("tcp", opts.MetricsAddr)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrMetricsServeFailed, err.Error()), "addr", opts.MetricsAddr)
	}
	a.logger.Info("serving metrics", "addr", ln.Addr().String())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.metrics.Serve(gctx, ln)
	})
	g.Go(func() error {
		defer cancel()
		return a.replayOrWatch(gctx, path, opts)
	})
	return g.Wait()
}

func (a *App) replayOrWatch(ctx context.Context, path string, opts ReplayOptions) error {
	if opts.Watch {
		return a.watch(ctx, path, opts)
	}
	return a.replay(ctx, path, opts)
}

// watch replays once and then again after every debounced change of the
// file. Replay failures are logged and do not end the session.
func (a *App) watch(ctx context.Context, path string, opts ReplayOptions) error {
	w, err := a.watchers()
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()
	if err := w.Start(ctx, path); err != nil {
		return err
	}

	window := opts.Debounce
	if window <= 0 {
		window = watcher.DefaultDebounceWindow
	}
	reload := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(window, func([]string) {
		select {
		case reload <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	go func() {
		for ev := range w.Events() {
			if ev.Operation == ports.OpRemove {
				continue
			}
			debouncer.Add(ev.Path)
		}
	}()

	for {
		if err := a.replay(ctx, path, opts); err != nil {
			a.logger.Error(err)
		}
		a.logger.Info("watching for changes", "file", path)

		select {
		case <-ctx.Done():
			return nil
		case <-reload:
			a.logger.Info("scenario changed, replaying", "file", path)
		}
	}
}

func (a *App) replay(ctx context.Context, path string, opts ReplayOptions) (err error) {
	ctx, span := a.tracer.Start(ctx, "replay", ports.WithAttribute("scenario.file", path))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	sc, err := a.loader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load scenario")
	}
	objects, err := a.instantiate(sc)
	if err != nil {
		return zerr.Wrap(err, "failed to build scenario objects")
	}

	// The cache is disposed before the final flush so that late readiness
	// events are written too.
	renderer := linear.NewRenderer(opts.Out)
	defer func() {
		if flushErr := renderer.Flush(); flushErr != nil && err == nil {
			err = zerr.Wrap(flushErr, "failed to write replay output")
		}
	}()

	gate := a.gate
	if opts.LoadRate > 0 {
		gate = throttle.NewGate(opts.LoadRate)
	}
	cache := a.caches.New(graphcache.Options{
		RootClass:  sc.RootClass,
		Accessor:   a.accessor,
		Async:      opts.Async,
		Controller: gate,
	})
	defer cache.Dispose()

	s := newSession(sc, objects, cache, a.accessor, renderer)
	if err := s.setup(); err != nil {
		return err
	}

	for i, step := range sc.Steps {
		if err := a.runStep(ctx, s, i, step); err != nil {
			return err
		}
	}

	a.logger.Info("scenario replayed", "scenario", sc.Name, "steps", len(sc.Steps))
	a.logger.Debug("cache state", "digest", fmt.Sprintf("%016x", cache.Digest()), "records", cache.Stats().Records)
	return nil
}

func (a *App) runStep(ctx context.Context, s *session, index int, step domain.Step) error {
	ctx, span := a.tracer.Start(ctx, "replay.step",
		ports.WithAttribute("step.index", index+1),
		ports.WithAttribute("step.kind", step.Kind.String()),
	)
	defer span.End()

	s.renderer.OnStep(index, step)
	if err := s.run(ctx, step); err != nil {
		err = zerr.With(zerr.Wrap(err, "scenario step failed"), "step", index+1)
		span.RecordError(err)
		return err
	}
	return nil
}

// Inspect registers the scenario's roots and paths without running its
// steps and prints the resulting path tree.
func (a *App) Inspect(_ context.Context, path string, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}

	sc, err := a.loader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load scenario")
	}
	objects, err := a.instantiate(sc)
	if err != nil {
		return zerr.Wrap(err, "failed to build scenario objects")
	}

	cache := a.caches.New(graphcache.Options{RootClass: sc.RootClass, Accessor: a.accessor})
	defer cache.Dispose()

	renderer := linear.NewRenderer(io.Discard)
	if err := newSession(sc, objects, cache, a.accessor, renderer).setup(); err != nil {
		return err
	}

	stats := cache.Stats()
	_, _ = fmt.Fprintf(out, "scenario: %s\n", sc.Name)
	_, _ = fmt.Fprintf(out, "roots: %d records: %d nodes: %d\n", stats.Roots, stats.Records, stats.Nodes)
	_, _ = fmt.Fprintf(out, "digest: %016x\n", cache.Digest())
	_, _ = fmt.Fprintln(out, "paths:")
	for _, p := range cache.Paths() {
		_, _ = fmt.Fprintf(out, "  %s\n", p)
	}
	return nil
}
