package graphcache

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/pathcache/internal/core/domain"
	"go.trai.ch/pathcache/internal/core/ports"
	"go.trai.ch/zerr"
)

const defaultLoadBatch = 64

// loadRequest asks the worker to read one property of an observed object.
// gen and epoch detect requests that outlived their record or a Clear.
type loadRequest struct {
	obj    domain.Observable
	gen    uint64
	epoch  uint64
	name   string
	origin time.Time
}

type loadResult struct {
	req   loadRequest
	value any
	err   error
}

// loader is the background side of asynchronous mode: a FIFO of requests,
// one worker that performs the reads, and a channel that carries each batch
// of results back to the cache's apply loop.
type loader struct {
	mu         sync.Mutex
	queue      []loadRequest
	controller ports.ExecutionController

	wake    chan struct{}
	results chan []loadResult
	read    func(obj any, name string) (any, error)
	batch   int
	logger  ports.Logger
}

func newLoader(read func(obj any, name string) (any, error), batch int, logger ports.Logger) *loader {
	if batch <= 0 {
		batch = defaultLoadBatch
	}
	return &loader{
		wake:    make(chan struct{}, 1),
		results: make(chan []loadResult),
		read:    read,
		batch:   batch,
		logger:  logger,
	}
}

func (l *loader) push(reqs ...loadRequest) {
	if len(reqs) == 0 {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, reqs...)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// reset drops every queued request and reports how many were dropped.
func (l *loader) reset() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.queue)
	l.queue = nil
	return n
}

func (l *loader) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

func (l *loader) setController(ec ports.ExecutionController) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.controller = ec
}

func (l *loader) gate() ports.ExecutionController {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.controller
}

func (l *loader) take() []loadRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := min(l.batch, len(l.queue))
	if n == 0 {
		return nil
	}
	out := make([]loadRequest, n)
	copy(out, l.queue)
	l.queue = l.queue[n:]
	if len(l.queue) == 0 {
		l.queue = nil
	}
	return out
}

// run is the worker loop. It blocks until requests arrive, asks the
// execution controller for permission before each batch, reads the batch
// without holding the cache lock and sends the results on. A controller
// error is logged and the batch runs anyway.
func (l *loader) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.wake:
		}

		for l.len() > 0 {
			if ec := l.gate(); ec != nil {
				if err := ec.Wait(ctx); err != nil {
					if ctx.Err() != nil {
						return nil
					}
					l.logger.Error(zerr.Wrap(err, "execution controller refused load batch"))
				}
			}

			reqs := l.take()
			if len(reqs) == 0 {
				break
			}
			results := make([]loadResult, len(reqs))
			for i, req := range reqs {
				v, err := l.read(req.obj, req.name)
				results[i] = loadResult{req: req, value: v, err: err}
			}

			select {
			case l.results <- results:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
