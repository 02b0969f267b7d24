// Package extensions tracks optional feature sets loaded into the process:
// which extensions exist and which routines and types each one contributes.
// Registration happens once at startup (typically from init functions);
// reads happen from multiple runtime contexts.
package extensions

import (
	"sort"
	"sync"

	"github.com/lumenlang/lumen/internal/symbols"
	"github.com/lumenlang/lumen/internal/values"
)

// Descriptor describes one extension: its name plus the routines and types
// it contributes. Read-only after registration.
type Descriptor struct {
	Name     string
	Routines map[string]values.BuiltinFunc
	Types    []*symbols.TypeDescriptor
}

// RoutineNames returns the contributed routine names, sorted.
func (d *Descriptor) RoutineNames() []string {
	names := make([]string, 0, len(d.Routines))
	for name := range d.Routines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TypeNames returns the contributed type names, sorted.
func (d *Descriptor) TypeNames() []string {
	names := make([]string, 0, len(d.Types))
	for _, td := range d.Types {
		names = append(names, td.Name())
	}
	sort.Strings(names)
	return names
}

type Registry struct {
	mu   sync.RWMutex
	exts map[string]*Descriptor
}

func NewRegistry() *Registry {
	return &Registry{exts: make(map[string]*Descriptor)}
}

// Register adds an extension. The first registration of a name wins;
// re-registration returns false.
func (r *Registry) Register(d *Descriptor) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.exts[d.Name]; exists {
		return false
	}
	r.exts[d.Name] = d
	return true
}

func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.exts[name]
	return d, ok
}

func (r *Registry) IsLoaded(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// List returns the names of all registered extensions, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.exts))
	for name := range r.exts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// defaultRegistry is the process-wide registry extensions register into
// from init().
var defaultRegistry = NewRegistry()

func Default() *Registry { return defaultRegistry }

// Register adds an extension to the process-wide registry. Safe to call
// from init functions.
func Register(d *Descriptor) bool { return defaultRegistry.Register(d) }

// Clear drops everything from the process-wide registry. Used for testing.
func Clear() {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	defaultRegistry.exts = make(map[string]*Descriptor)
}
