package graphcache_test

import (
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pathcache/internal/core/domain"
	"go.trai.ch/pathcache/internal/engine/graphcache"
)

func newAsyncCache(t *testing.T, g *gate, m *countingMetrics) *graphcache.Cache {
	t.Helper()
	opts := graphcache.Options{Accessor: itemAccessor{}, Async: true, LoadBatch: 1}
	if g != nil {
		opts.Controller = g
	}
	if m != nil {
		opts.Metrics = m
	}
	return graphcache.New(opts)
}

func TestAsync_ReadinessFiresOnceAfterAllLoads(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := newAsyncCache(t, nil, nil)
		defer c.Dispose()

		root := newItem("T", "y", newItem("y", "z", 1))
		lz := &recorder{}
		ready := &readyRecorder{}
		require.NoError(t, c.AddReadinessListener(ready))
		require.NoError(t, c.AddPathListener(path("y.z"), lz))
		require.NoError(t, c.AddRoot(root))

		synctest.Wait()

		assert.Equal(t, []any{root}, ready.fired())
		singles, multis := lz.events()
		assert.Empty(t, multis, "loading y changes nothing visible at y.z")
		require.Len(t, singles, 1)
		assert.True(t, domain.IsNotReady(singles[0].OldValue))
		assert.Equal(t, 1, singles[0].NewValue)
		assert.False(t, singles[0].Origin.IsZero())

		v, err := c.Get(root, path("y.z"))
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	})
}

func TestAsync_ReadinessWaitsForIndependentLeaves(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		g := &stepGate{step: make(chan struct{})}
		c := graphcache.New(graphcache.Options{Accessor: itemAccessor{}, Async: true, LoadBatch: 1, Controller: g})
		defer c.Dispose()

		root := newItem("T", "x", 1, "y", 2)
		lx, ly := &recorder{}, &recorder{}
		ready := &readyRecorder{}
		require.NoError(t, c.AddReadinessListener(ready))
		require.NoError(t, c.AddPathListener(path("x"), lx))
		require.NoError(t, c.AddPathListener(path("y"), ly))
		require.NoError(t, c.AddRoot(root))
		synctest.Wait()
		assert.Equal(t, 2, c.Stats().PendingLoads)

		g.step <- struct{}{}
		synctest.Wait()
		assert.Equal(t, 1, lx.total()+ly.total())
		assert.Empty(t, ready.fired(), "one leaf is still loading")
		assert.False(t, c.Settled())

		g.step <- struct{}{}
		synctest.Wait()
		assert.Equal(t, 1, lx.total())
		assert.Equal(t, 1, ly.total())
		assert.Equal(t, []any{root}, ready.fired())
		assert.True(t, c.Settled())
	})
}

func TestAsync_ListenerMayDispose(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := newAsyncCache(t, nil, nil)
		root := newItem("T", "x", 1)
		l := &recorder{}
		l.onEvent = c.Dispose
		require.NoError(t, c.AddPathListener(path("x"), l))
		require.NoError(t, c.AddRoot(root))

		synctest.Wait()

		assert.Equal(t, 1, l.total())
		assert.ErrorIs(t, c.AddRoot(newItem("U")), domain.ErrDisposed)
		_, err := c.Get(root, path("x"))
		assert.ErrorIs(t, err, domain.ErrDisposed)
	})
}

func TestAsync_GetReturnsNotReadyUntilLoaded(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		g := newGate()
		m := &countingMetrics{}
		c := newAsyncCache(t, g, m)
		defer c.Dispose()

		root := newItem("T", "x", 4)
		require.NoError(t, c.AddPathListener(path("x"), &recorder{}))
		require.NoError(t, c.AddRoot(root))
		synctest.Wait()

		v, err := c.Get(root, path("x"))
		require.NoError(t, err)
		assert.True(t, domain.IsNotReady(v))
		assert.Equal(t, 1, c.Stats().PendingLoads, "gate holds the load")
		assert.False(t, c.Settled())

		close(g.open)
		synctest.Wait()
		assert.True(t, c.Settled())

		v, err = c.Get(root, path("x"))
		require.NoError(t, err)
		assert.Equal(t, 4, v)

		queued, applied, discarded := m.snapshot()
		assert.Equal(t, 1, queued)
		assert.Equal(t, 1, applied)
		assert.Equal(t, 0, discarded)
	})
}

func TestAsync_RegularChangeWinsOverPendingLoad(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		g := newGate()
		m := &countingMetrics{}
		c := newAsyncCache(t, g, m)
		defer c.Dispose()

		root := newItem("T", "x", 1)
		l := &recorder{}
		require.NoError(t, c.AddPathListener(path("x"), l))
		require.NoError(t, c.AddRoot(root))
		synctest.Wait()

		root.set("x", 9)
		close(g.open)
		synctest.Wait()

		singles, _ := l.events()
		require.Len(t, singles, 1)
		assert.Equal(t, 9, singles[0].NewValue)

		_, applied, discarded := m.snapshot()
		assert.Equal(t, 0, applied)
		assert.Equal(t, 1, discarded)
	})
}

func TestAsync_ClearDiscardsQueuedLoads(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		g := newGate()
		m := &countingMetrics{}
		c := newAsyncCache(t, g, m)
		defer c.Dispose()

		root := newItem("T", "x", 1, "w", 2)
		l := &recorder{}
		require.NoError(t, c.AddPathListener(path("x"), l))
		require.NoError(t, c.AddPathListener(path("w"), l))
		require.NoError(t, c.AddRoot(root))
		synctest.Wait()

		require.NoError(t, c.Clear())
		assert.Equal(t, 0, c.Stats().PendingLoads)

		close(g.open)
		synctest.Wait()

		assert.Equal(t, 0, l.total())
		queued, applied, discarded := m.snapshot()
		assert.Equal(t, 2, queued)
		assert.Equal(t, 0, applied)
		assert.Equal(t, 2, discarded)
	})
}

func TestAsync_LateReadinessListenerSeesPendingLoads(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		g := newGate()
		c := newAsyncCache(t, g, nil)
		defer c.Dispose()

		r1 := newItem("r1", "x", 1)
		r2 := newItem("r2", "x", 2)
		require.NoError(t, c.AddPathListener(path("x"), &recorder{}))
		require.NoError(t, c.AddRoot(r1))
		require.NoError(t, c.AddRoot(r2))
		synctest.Wait()

		ready := &readyRecorder{}
		require.NoError(t, c.AddReadinessListener(ready))
		assert.Empty(t, ready.fired())

		close(g.open)
		synctest.Wait()

		assert.ElementsMatch(t, []any{r1, r2}, ready.fired())
	})
}

func TestAsync_SwapGateAtRuntime(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := newAsyncCache(t, nil, nil)
		defer c.Dispose()

		g := newGate()
		c.SetExecutionController(g)

		root := newItem("T", "x", 3)
		require.NoError(t, c.AddPathListener(path("x"), &recorder{}))
		require.NoError(t, c.AddRoot(root))
		synctest.Wait()

		v, _ := c.Get(root, path("x"))
		assert.True(t, domain.IsNotReady(v))

		c.SetExecutionController(nil)
		close(g.open)
		synctest.Wait()

		v, _ = c.Get(root, path("x"))
		assert.Equal(t, 3, v)
	})
}

func TestAsync_DisposeStopsLoader(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		g := newGate()
		c := newAsyncCache(t, g, nil)

		root := newItem("T", "x", 3)
		require.NoError(t, c.AddPathListener(path("x"), &recorder{}))
		require.NoError(t, c.AddRoot(root))
		synctest.Wait()

		c.Dispose()
		assert.False(t, root.Observed())
		assert.Equal(t, domain.ErrDisposed, c.AddRoot(root))
	})
}
