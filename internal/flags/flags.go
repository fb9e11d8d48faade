// Package flags provides feature flags read from configuration.
// A Registry is read-only after construction; unknown flags are off.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/gridline/internal/log"
)

const (
	// FlagOSC52Clipboard falls back to an OSC52 escape sequence when no
	// native clipboard tool is available, e.g. over SSH.
	FlagOSC52Clipboard = "osc52-clipboard"

	// FlagTypeToEdit starts editing a focused cell when a printable key
	// is typed.
	FlagTypeToEdit = "type-to-edit"

	// FlagHeaderSort toggles sorting when a column header is clicked.
	FlagHeaderSort = "header-sort"
)

// Defaults returns the value of every known flag when unset.
func Defaults() map[string]bool {
	return map[string]bool{
		FlagOSC52Clipboard: false,
		FlagTypeToEdit:     true,
		FlagHeaderSort:     true,
	}
}

// Registry holds flag state.
type Registry struct {
	flags map[string]bool
}

// New creates a registry from configured values layered over Defaults.
func New(configured map[string]bool) *Registry {
	flags := Defaults()
	maps.Copy(flags, configured)
	r := &Registry{flags: flags}
	log.Debug(log.CatConfig, "feature flags initialized", "count", len(flags), "enabled", r.EnabledNames())
	return r
}

// Enabled reports whether name is on. It is nil-safe and false for
// unknown flags.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	value, ok := r.flags[name]
	if !ok {
		log.Debug(log.CatConfig, "unknown flag accessed", "flag", name)
		return false
	}
	return value
}

// All returns a copy of every flag.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return map[string]bool{}
	}
	return maps.Clone(r.flags)
}

// EnabledNames returns the sorted names of enabled flags.
func (r *Registry) EnabledNames() []string {
	if r == nil {
		return nil
	}
	var names []string
	for name, on := range r.flags {
		if on {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
