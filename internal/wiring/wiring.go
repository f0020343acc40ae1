// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pathcache/internal/adapters/beans"
	_ "go.trai.ch/pathcache/internal/adapters/config"
	_ "go.trai.ch/pathcache/internal/adapters/logger"
	_ "go.trai.ch/pathcache/internal/adapters/metrics"
	_ "go.trai.ch/pathcache/internal/adapters/telemetry"
	_ "go.trai.ch/pathcache/internal/adapters/throttle"
	_ "go.trai.ch/pathcache/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/pathcache/internal/app"
	_ "go.trai.ch/pathcache/internal/engine/graphcache"
)
