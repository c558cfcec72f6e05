// Package observability provides hooks for instrumenting mesh generation.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about geometry building, Gmsh runs, statistics
// extraction, and cache operations; the no-op defaults make instrumentation
// free when unused. It replaces ad hoc progress callbacks threaded through
// function arguments.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGeneratorHooks(&myHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Generator().OnBuildStart(ctx, numLayers)
//	// ... build script ...
//	observability.Generator().OnBuildComplete(ctx, numLayers, scriptSize, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Generator Hooks
// =============================================================================

// GeneratorHooks receives events from the mesh generation pipeline.
type GeneratorHooks interface {
	// Geometry build events
	OnBuildStart(ctx context.Context, numLayers int)
	OnBuildComplete(ctx context.Context, numLayers, scriptSize int, duration time.Duration, err error)

	// External engine events
	OnMeshStart(ctx context.Context, geoPath, mshPath string)
	OnMeshComplete(ctx context.Context, mshPath string, duration time.Duration, err error)

	// Statistics extraction events
	OnStatsComplete(ctx context.Context, numVertices, numElements int, complete bool)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGeneratorHooks is a no-op implementation of GeneratorHooks.
type NoopGeneratorHooks struct{}

func (NoopGeneratorHooks) OnBuildStart(context.Context, int)                                 {}
func (NoopGeneratorHooks) OnBuildComplete(context.Context, int, int, time.Duration, error)   {}
func (NoopGeneratorHooks) OnMeshStart(context.Context, string, string)                       {}
func (NoopGeneratorHooks) OnMeshComplete(context.Context, string, time.Duration, error)      {}
func (NoopGeneratorHooks) OnStatsComplete(context.Context, int, int, bool)                   {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	generatorHooks GeneratorHooks = NoopGeneratorHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	hooksMu        sync.RWMutex
)

// SetGeneratorHooks registers custom generator hooks.
// This should be called once at application startup before any generation.
func SetGeneratorHooks(h GeneratorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		generatorHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Generator returns the registered generator hooks.
func Generator() GeneratorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return generatorHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	generatorHooks = NoopGeneratorHooks{}
	cacheHooks = NoopCacheHooks{}
}
