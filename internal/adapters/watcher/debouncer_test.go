package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pathcache/internal/adapters/watcher"
)

// recorder collects debouncer callbacks.
type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) callback(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, paths)
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.calls...)
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.callback)

		d.Add("/work/b.yaml")
		d.Add("/work/a.yaml")
		d.Add("/work/b.yaml")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		calls := rec.snapshot()
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"/work/a.yaml", "/work/b.yaml"}, calls[0])
	})
}

func TestDebouncer_AddRestartsWindow(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.callback)

		d.Add("/work/a.yaml")
		time.Sleep(60 * time.Millisecond)
		d.Add("/work/a.yaml")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.snapshot())

		time.Sleep(50 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, rec.snapshot(), 1)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	t.Run("Runs Pending Immediately", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			rec := &recorder{}
			d := watcher.NewDebouncer(time.Second, rec.callback)

			d.Add("/work/a.yaml")
			d.Flush()
			require.Len(t, rec.snapshot(), 1)

			// The stopped timer must not fire a second time.
			time.Sleep(2 * time.Second)
			synctest.Wait()
			assert.Len(t, rec.snapshot(), 1)
		})
	})

	t.Run("Empty", func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(time.Second, rec.callback)
		d.Flush()
		assert.Empty(t, rec.snapshot())
	})

	t.Run("After Fire", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			rec := &recorder{}
			d := watcher.NewDebouncer(50*time.Millisecond, rec.callback)

			d.Add("/work/a.yaml")
			time.Sleep(100 * time.Millisecond)
			synctest.Wait()
			d.Flush()
			assert.Len(t, rec.snapshot(), 1)
		})
	})
}

func TestDebouncer_StopDiscardsPending(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.callback)

		d.Add("/work/a.yaml")
		d.Stop()
		time.Sleep(200 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.snapshot())

		d.Add("/work/b.yaml")
		time.Sleep(200 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, [][]string{{"/work/b.yaml"}}, rec.snapshot())
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)
		d.Add("/work/a.yaml")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		d.Flush()
	})
}
