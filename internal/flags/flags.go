// Package flags provides feature flags for optional editor behaviour.
// Flags are read-only after initialization and unknown flags are off.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/quill/internal/log"
)

// Flag name constants for type-safe flag access.
const (
	// FlagRememberPosition restores the cursor on open and stores it on quit.
	FlagRememberPosition = "remember-position"

	// FlagWatchReload reloads clean buffers when the file changes on disk.
	FlagWatchReload = "watch-reload"

	// FlagRenderCache caches styled screen lines between frames.
	FlagRenderCache = "render-cache"
)

// Defaults returns the built-in flag values.
func Defaults() map[string]bool {
	return map[string]bool{
		FlagRememberPosition: true,
		FlagWatchReload:      true,
		FlagRenderCache:      true,
	}
}

// Registry holds feature flag state loaded from configuration.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map.
// If flags is nil, an empty registry is created (all flags disabled).
func New(flags map[string]bool) *Registry {
	if flags == nil {
		flags = make(map[string]bool)
	}
	r := &Registry{flags: maps.Clone(flags)}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(flags), "flags", r.All())
	return r
}

// WithDefaults creates a Registry from Defaults overlaid with overrides.
func WithDefaults(overrides map[string]bool) *Registry {
	merged := Defaults()
	maps.Copy(merged, overrides)
	return New(merged)
}

// Enabled returns true if the named flag is enabled.
// Returns false for unknown flags and on a nil registry.
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name, "result", false)
		return false
	}
	return value
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	result := make(map[string]bool, len(r.flags))
	maps.Copy(result, r.flags)
	return result
}

// Names returns the flag names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.flags))
}
