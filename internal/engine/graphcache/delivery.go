package graphcache

import (
	"go.trai.ch/pathcache/internal/core/domain"
	"go.trai.ch/pathcache/internal/core/ports"
)

type deliveryKind uint8

const (
	deliverSingle deliveryKind = iota
	deliverMulti
	deliverReady
)

func (k deliveryKind) String() string {
	switch k {
	case deliverSingle:
		return "single"
	case deliverMulti:
		return "multi"
	default:
		return "ready"
	}
}

// delivery is one listener invocation computed under the cache lock and
// performed after it is released.
type delivery struct {
	kind   deliveryKind
	path   ports.PathListener
	ready  ports.ReadinessListener
	single domain.ChangeEvent
	multi  domain.MultiChange
	root   any
}

func (d *delivery) invoke() {
	switch d.kind {
	case deliverSingle:
		d.path.PathChanged(d.single)
	case deliverMulti:
		d.path.PathsChanged(d.multi)
	case deliverReady:
		d.ready.RootReady(d.root)
	}
}

// publish hands the outbox to the delivery queue. It must be called with the
// cache lock held so that queue order matches mutation order.
func (c *Cache) publish() {
	if len(c.outbox) == 0 {
		return
	}
	c.dmu.Lock()
	c.queue = append(c.queue, c.outbox...)
	c.dmu.Unlock()
	c.outbox = nil
}

// drain invokes queued listeners outside the cache lock. A single goroutine
// drains at a time; events queued by listeners themselves are picked up by
// the active drainer after the current listener returns.
func (c *Cache) drain() {
	c.dmu.Lock()
	if c.draining {
		c.dmu.Unlock()
		return
	}
	c.draining = true
	for len(c.queue) > 0 {
		d := c.queue[0]
		c.queue[0] = delivery{}
		c.queue = c.queue[1:]
		c.dmu.Unlock()

		d.invoke()
		c.metrics.EventDelivered(d.kind.String())

		c.dmu.Lock()
	}
	c.queue = nil
	c.draining = false
	c.dmu.Unlock()
}
