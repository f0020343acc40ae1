package graphcache

import (
	"context"

	"go.trai.ch/pathcache/internal/core/domain"
	"go.trai.ch/pathcache/internal/core/ports"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}
func (nopLogger) Error(error) {}

type nopMetrics struct{}

func (nopMetrics) EventDelivered(string) {}
func (nopMetrics) LoadsQueued(int) {}
func (nopMetrics) LoadApplied() {}
func (nopMetrics) LoadDiscarded() {}
func (nopMetrics) ObserveStats(domain.CacheStats) {}

type nopTracer struct{}

func (nopTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, nopSpan{}
}

type nopSpan struct{}

func (nopSpan) End() {}
func (nopSpan) RecordError(error) {}
func (nopSpan) SetAttribute(string, any) {}
