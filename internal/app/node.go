package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pathcache/internal/adapters/beans"     //nolint:depguard // Wired in app layer
	"go.trai.ch/pathcache/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pathcache/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pathcache/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/pathcache/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/pathcache/internal/adapters/throttle"  //nolint:depguard // Wired in app layer
	"go.trai.ch/pathcache/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/pathcache/internal/core/ports"
	"go.trai.ch/pathcache/internal/engine/graphcache"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			beans.RegistryNodeID,
			beans.AccessorNodeID,
			graphcache.NodeID,
			metrics.NodeID,
			throttle.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ScenarioLoader](ctx)
	if err != nil {
		return nil, err
	}
	registry, err := graft.Dep[*beans.Registry](ctx)
	if err != nil {
		return nil, err
	}
	accessor, err := graft.Dep[ports.Accessor](ctx)
	if err != nil {
		return nil, err
	}
	caches, err := graft.Dep[*graphcache.Factory](ctx)
	if err != nil {
		return nil, err
	}
	collector, err := graft.Dep[*metrics.Collector](ctx)
	if err != nil {
		return nil, err
	}
	gate, err := graft.Dep[*throttle.Gate](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	watchers, err := graft.Dep[watcher.Factory](ctx)
	if err != nil {
		return nil, err
	}
	return New(loader, registry, accessor, caches, collector, gate, tracer, log, watchers), nil
}
