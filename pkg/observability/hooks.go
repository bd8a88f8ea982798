// Package observability provides hooks for metrics and tracing of exports.
//
// This package enables optional instrumentation without adding hard
// dependencies on a specific backend. Consumers register hooks at startup to
// receive events about material exports and catalog generation; the export
// packages call [Export] to emit them.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetExportHooks(metrics.New())
//	    // ... run exports
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Export().OnMaterialExport(ctx, name, nodes, links, issues, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// ExportHooks receives events from material and catalog exports.
type ExportHooks interface {
	// OnMaterialExport records one material export attempt. err is non-nil
	// when the export produced no document.
	OnMaterialExport(ctx context.Context, material string, nodes, links, issues int, duration time.Duration, err error)

	// OnCatalogType records one candidate node type. err is non-nil when the
	// type was skipped.
	OnCatalogType(ctx context.Context, typeName string, err error)

	// OnCatalogComplete records the end of a catalog scan.
	OnCatalogComplete(ctx context.Context, candidates, entries int, cached bool, duration time.Duration)
}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnMaterialExport(context.Context, string, int, int, int, time.Duration, error) {
}
func (NoopExportHooks) OnCatalogType(context.Context, string, error)                    {}
func (NoopExportHooks) OnCatalogComplete(context.Context, int, int, bool, time.Duration) {}

var (
	exportHooks ExportHooks = NoopExportHooks{}
	hooksMu     sync.RWMutex
)

// SetExportHooks registers custom export hooks.
// This should be called once at application startup before any export.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// ResetExportHooks restores the no-op hooks.
func ResetExportHooks() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	exportHooks = NoopExportHooks{}
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}
