// Package throttle implements execution controllers for the background
// loader.
package throttle

import (
	"context"
	"sync"

	"go.trai.ch/pathcache/internal/core/ports"
	"golang.org/x/time/rate"
)

// Gate admits load batches while it is open and, when a rate is set, no
// faster than that rate.
type Gate struct {
	mu      sync.Mutex
	open    bool
	resumed chan struct{}
	limiter *rate.Limiter
}

var _ ports.ExecutionController = (*Gate)(nil)

// NewGate creates an open Gate admitting perSecond batches per second. A
// perSecond of zero or less disables the limit.
func NewGate(perSecond float64) *Gate {
	g := &Gate{open: true, resumed: make(chan struct{})}
	close(g.resumed)
	if perSecond > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
	return g
}

// Pause holds every later batch until Resume.
func (g *Gate) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.open {
		return
	}
	g.open = false
	g.resumed = make(chan struct{})
}

// Resume releases waiting batches.
func (g *Gate) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.open {
		return
	}
	g.open = true
	close(g.resumed)
}

// Paused reports whether the gate is closed.
func (g *Gate) Paused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.open
}

// Wait blocks until the gate is open and the limiter admits a batch.
func (g *Gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	resumed := g.resumed
	g.mu.Unlock()

	select {
	case <-resumed:
	case <-ctx.Done():
		return ctx.Err()
	}
	if g.limiter == nil {
		return nil
	}
	return g.limiter.Wait(ctx)
}
