// FILE: lixenwraith/typedenv/schema.go
package typedenv

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Field is a declared configuration key.
type Field struct {
	Name     string
	Type     Type
	Optional bool

	// Default is assigned before any load when HasDefault is set.
	Default    any
	HasDefault bool
}

// Schema is the declared shape of a configuration. It owns the Registry
// shared by every Env created from it.
type Schema struct {
	fields   map[string]Field
	registry *Registry
	err      error
	mutex    sync.RWMutex
}

// NewSchema creates an empty schema with a registry holding the built-in validators.
func NewSchema() *Schema {
	return &Schema{
		fields:   make(map[string]Field),
		registry: NewRegistry(),
	}
}

// Field declares a required field. Redeclaring a name replaces it.
func (s *Schema) Field(name string, t Type) *Schema {
	s.record(s.Declare(Field{Name: name, Type: t}))
	return s
}

// Optional declares a field that may be absent from the source.
func (s *Schema) Optional(name string, t Type) *Schema {
	s.record(s.Declare(Field{Name: name, Type: t, Optional: true}))
	return s
}

// Default sets the value a declared field holds before loading. Envs created
// earlier see it once they load, for optional fields the source leaves unset.
func (s *Schema) Default(name string, value any) *Schema {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, ok := s.fields[name]
	if !ok {
		s.err = errors.Join(s.err, fmt.Errorf("%w: default for undeclared field %q", ErrInvalidSchema, name))
		return s
	}
	f.Default = value
	f.HasDefault = true
	s.fields[name] = f
	return s
}

// Declare adds f to the schema. A type carrying the optional marker sets
// Optional and is stored as its base type.
func (s *Schema) Declare(f Field) error {
	if !isValidFieldName(f.Name) {
		return fmt.Errorf("%w: invalid field name %q", ErrInvalidSchema, f.Name)
	}
	if f.Type == "" {
		return fmt.Errorf("%w: field %q has no type", ErrInvalidSchema, f.Name)
	}
	if f.Type.IsOptional() {
		f.Optional = true
		f.Type = f.Type.Base()
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.fields[f.Name] = f
	return nil
}

func (s *Schema) record(err error) {
	if err == nil {
		return
	}
	s.mutex.Lock()
	s.err = errors.Join(s.err, err)
	s.mutex.Unlock()
}

// Err returns the accumulated declaration errors.
func (s *Schema) Err() error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.err
}

// Lookup returns the field declared under name.
func (s *Schema) Lookup(name string) (Field, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	f, ok := s.fields[name]
	return f, ok
}

// Fields returns all declared fields sorted by name.
func (s *Schema) Fields() []Field {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	fields := make([]Field, 0, len(s.fields))
	for _, f := range s.fields {
		fields = append(fields, f)
	}
	slices.SortFunc(fields, func(a, b Field) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return fields
}

// Names returns all declared field names, sorted.
func (s *Schema) Names() []string {
	fields := s.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of declared fields.
func (s *Schema) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.fields)
}

// Registry returns the schema's shared validator registry.
func (s *Schema) Registry() *Registry {
	return s.registry
}
