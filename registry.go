// FILE: lixenwraith/typedenv/registry.go
package typedenv

import (
	"slices"
	"sync"
)

// builtins is the immutable default table shared by every Registry.
var builtins = builtinValidators()

// Registry maps types to conversion functions. Lookups fall through a local
// override table to the built-in defaults. Registrations overwrite.
type Registry struct {
	funcs map[Type]ConvertFunc
	mutex sync.RWMutex
}

// NewRegistry creates a Registry seeded with the built-in validators.
func NewRegistry() *Registry {
	return &Registry{
		funcs: make(map[Type]ConvertFunc),
	}
}

// Register binds fn to t, replacing any earlier binding including built-ins.
// A nil fn is ignored.
func (r *Registry) Register(t Type, fn ConvertFunc) {
	if fn == nil {
		return
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.funcs[t] = fn
}

// Lookup returns the conversion function bound to t.
func (r *Registry) Lookup(t Type) (ConvertFunc, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if fn, ok := r.funcs[t]; ok {
		return fn, true
	}
	fn, ok := builtins[t]
	return fn, ok
}

// converterFor resolves the conversion for a field. Optional fields prefer the
// optional variant and otherwise wrap the base conversion so that absent
// values never reach it.
func (r *Registry) converterFor(f Field) (ConvertFunc, bool) {
	if !f.Optional {
		return r.Lookup(f.Type)
	}

	if fn, ok := r.Lookup(OptionalOf(f.Type)); ok {
		return fn, true
	}
	fn, ok := r.Lookup(f.Type.Base())
	if !ok {
		return nil, false
	}
	return nullable(fn), true
}

// Types returns every type with a binding, sorted.
func (r *Registry) Types() []Type {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	seen := make(map[Type]bool, len(builtins)+len(r.funcs))
	for t := range builtins {
		seen[t] = true
	}
	for t := range r.funcs {
		seen[t] = true
	}

	types := make([]Type, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// Clone returns an independent copy of the registry's overrides.
func (r *Registry) Clone() *Registry {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	clone := NewRegistry()
	for t, fn := range r.funcs {
		clone.funcs[t] = fn
	}
	return clone
}
