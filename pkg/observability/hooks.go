// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about dependency probes and installer
// invocations.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetInstallHooks(&myInstallHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Installs().OnInstallStart(ctx, pkg)
//	// ... run installer ...
//	observability.Installs().OnInstallComplete(ctx, pkg, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// InstallHooks receives events from the dependency resolution pass.
type InstallHooks interface {
	// OnProbe records a satisfaction check for a declared package.
	OnProbe(ctx context.Context, pkg string, satisfied bool)

	// OnInstallStart records the start of an installer invocation.
	OnInstallStart(ctx context.Context, pkg string)

	// OnInstallComplete records the outcome of an installer invocation.
	OnInstallComplete(ctx context.Context, pkg string, duration time.Duration, err error)
}

// NoopInstallHooks is a no-op implementation of InstallHooks.
type NoopInstallHooks struct{}

func (NoopInstallHooks) OnProbe(context.Context, string, bool)                           {}
func (NoopInstallHooks) OnInstallStart(context.Context, string)                          {}
func (NoopInstallHooks) OnInstallComplete(context.Context, string, time.Duration, error) {}

var (
	installHooks InstallHooks = NoopInstallHooks{}
	hooksMu      sync.RWMutex
)

// SetInstallHooks registers custom install hooks.
// This should be called once at application startup before any managers run.
func SetInstallHooks(h InstallHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		installHooks = h
	}
}

// Installs returns the registered install hooks.
func Installs() InstallHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return installHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	installHooks = NoopInstallHooks{}
}
