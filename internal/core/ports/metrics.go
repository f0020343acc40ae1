package ports

import "go.trai.ch/pathcache/internal/core/domain"

// Metrics records the cache's activity.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// EventDelivered counts one event delivered to a listener. kind is
	// "single", "multi" or "ready".
	EventDelivered(kind string)
	// LoadsQueued counts n load requests added to the queue.
	LoadsQueued(n int)
	// LoadApplied counts a load whose value reached the cache.
	LoadApplied()
	// LoadDiscarded counts a load that was stale when applied.
	LoadDiscarded()
	// ObserveStats publishes a bookkeeping snapshot.
	ObserveStats(stats domain.CacheStats)
}
