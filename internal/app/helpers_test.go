package app_test

import (
	"bytes"
	"context"
	"iter"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/pathcache/internal/adapters/beans"
	"go.trai.ch/pathcache/internal/adapters/config"
	"go.trai.ch/pathcache/internal/adapters/metrics"
	"go.trai.ch/pathcache/internal/adapters/throttle"
	"go.trai.ch/pathcache/internal/adapters/watcher"
	"go.trai.ch/pathcache/internal/app"
	"go.trai.ch/pathcache/internal/core/ports"
	"go.trai.ch/pathcache/internal/core/ports/mocks"
	"go.trai.ch/pathcache/internal/engine/graphcache"
	"go.uber.org/mock/gomock"
)

const ordersScenario = `
version: "1"
name: orders
root_class: Order
classes:
  Order:
    attributes:
      customer: Customer
      total: float
  Customer:
    attributes:
      name: string
      tier: string
objects:
  order: {class: Order, values: {customer: "@alice", total: 10}}
  alice: {class: Customer, values: {name: Alice, tier: gold}}
  bob: {class: Customer, values: {name: Bob, tier: silver}}
roots: [order]
paths:
  - customer.name
  - total
steps:
  - set: alice.name
    value: Alicia
  - set: order.customer
    ref: bob
  - set: alice.name
    value: Ally
  - get: order.customer.tier
  - remove_path: total
  - set: order.total
    value: 12.5
  - clear: true
`

type fixture struct {
	app     *app.App
	logger  *mocks.MockLogger
	spans   *spanLog
	metrics *metrics.Collector
}

type appOption func(*appConfig)

type appConfig struct {
	watchers watcher.Factory
}

func withWatchers(f watcher.Factory) appOption {
	return func(c *appConfig) { c.watchers = f }
}

// newFixture wires an App from real adapters with a mocked logger and
// tracer.
func newFixture(t *testing.T, opts ...appOption) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()

	spans := &spanLog{}
	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).Do(func(error) { spans.failed() }).AnyTimes()
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, name string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			spans.started(name)
			return ctx, span
		}).AnyTimes()

	cfg := &appConfig{watchers: watcher.NewFactory(log)}
	for _, opt := range opts {
		opt(cfg)
	}

	registry := beans.NewRegistry()
	collector := metrics.New()
	a := app.New(
		config.NewLoader(log),
		registry,
		beans.NewAccessor(registry),
		graphcache.NewFactory(log, collector, tracer),
		collector,
		throttle.NewGate(0),
		tracer,
		log,
		cfg.watchers,
	)
	return &fixture{app: a, logger: log, spans: spans, metrics: collector}
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// spanLog records the names of started spans.
type spanLog struct {
	mu     sync.Mutex
	names  []string
	errors int
}

func (s *spanLog) started(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names = append(s.names, name)
}

func (s *spanLog) failed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors++
}

func (s *spanLog) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, got := range s.names {
		if got == name {
			n++
		}
	}
	return n
}

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// fakeWatcher delivers events pushed by the test.
type fakeWatcher struct {
	events  chan ports.WatchEvent
	once    sync.Once
	started chan []string
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{
		events:  make(chan ports.WatchEvent),
		started: make(chan []string, 1),
	}
}

func (w *fakeWatcher) Start(_ context.Context, paths ...string) error {
	w.started <- paths
	return nil
}

func (w *fakeWatcher) Stop() error {
	w.once.Do(func() { close(w.events) })
	return nil
}

func (w *fakeWatcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for ev := range w.events {
			if !yield(ev) {
				return
			}
		}
	}
}
