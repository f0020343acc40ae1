package graphcache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pathcache/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pathcache/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pathcache/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pathcache/internal/core/ports"
)

// NodeID is the unique identifier for the cache factory Graft node.
const NodeID graft.ID = "engine.graphcache"

// Factory creates caches that share the process-wide logger, metrics and
// tracer.
type Factory struct {
	logger  ports.Logger
	metrics ports.Metrics
	tracer  ports.Tracer
}

// NewFactory creates a Factory.
func NewFactory(logger ports.Logger, metrics ports.Metrics, tracer ports.Tracer) *Factory {
	return &Factory{logger: logger, metrics: metrics, tracer: tracer}
}

// New creates a Cache. Ambient dependencies left unset in opts are taken from
// the factory.
func (f *Factory) New(opts Options) *Cache {
	if opts.Logger == nil {
		opts.Logger = f.logger
	}
	if opts.Metrics == nil {
		opts.Metrics = f.metrics
	}
	if opts.Tracer == nil {
		opts.Tracer = f.tracer
	}
	return New(opts)
}

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			metrics.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Factory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[*metrics.Collector](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewFactory(log, m, tracer), nil
		},
	})
}
