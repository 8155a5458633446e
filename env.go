// FILE: lixenwraith/typedenv/env.go
package typedenv

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Env is a configuration instance bound to a Schema. It resolves raw
// variables from a source, converts them with its Registry, and holds the
// typed results.
type Env struct {
	schema   *Schema
	registry *Registry
	raw      map[string]RawValue // Last resolved source mapping
	values   map[string]any      // Assigned field values
	strict   bool                // Fail on unknown keys instead of warning
	logger   zerolog.Logger
	warnings []string
	source   string // Description of the last resolved source
	mutex    sync.RWMutex
}

// New creates an Env for schema. The Env shares the schema's registry and
// starts with the strict unknown-key policy. Field defaults are assigned
// immediately.
func New(schema *Schema) *Env {
	if schema == nil {
		schema = NewSchema()
	}

	e := &Env{
		schema:   schema,
		registry: schema.Registry(),
		values:   make(map[string]any),
		strict:   true,
		logger:   DefaultLogger(),
	}

	for _, f := range schema.Fields() {
		if f.HasDefault {
			e.values[f.Name] = f.Default
		}
	}

	return e
}

// Schema returns the schema the Env was created from.
func (e *Env) Schema() *Schema {
	return e.schema
}

// Registry returns the registry used for conversion.
func (e *Env) Registry() *Registry {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.registry
}

// UseRegistry gives this Env its own registry instead of the schema's.
func (e *Env) UseRegistry(r *Registry) {
	if r == nil {
		return
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.registry = r
}

// AddValidator binds fn to t in the Env's registry, replacing any existing
// binding. With the default shared registry this affects every Env of the
// same schema. Registering while another goroutine loads is the caller's
// responsibility.
func (e *Env) AddValidator(t Type, fn ConvertFunc) {
	e.Registry().Register(t, fn)
}

// SetStrict selects the unknown-key policy: true fails the load, false logs a
// warning and skips the key.
func (e *Env) SetStrict(strict bool) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.strict = strict
}

// Strict reports the current unknown-key policy.
func (e *Env) Strict() bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.strict
}

// SetLogger replaces the logger used for warnings and debug events.
func (e *Env) SetLogger(logger zerolog.Logger) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.logger = logger
}

// Configure resolves the raw variable mapping, replacing any previous one.
// An empty filePath means no file. Types are not validated here.
func (e *Env) Configure(method Method, filePath string, opts SourceOptions) error {
	if err := e.schema.Err(); err != nil {
		return err
	}

	raw, err := Resolve(method, filePath, opts)
	if err != nil {
		return err
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.raw = raw
	e.source = strings.TrimSpace(method.String() + " " + filePath)

	e.logger.Debug().
		Str("method", method.String()).
		Str("file", filePath).
		Int("keys", len(raw)).
		Msg("Source resolved")
	return nil
}

// ConfigureMap sets the raw mapping directly. Every value is present.
func (e *Env) ConfigureMap(values map[string]string) {
	raw := make(map[string]RawValue, len(values))
	for k, v := range values {
		raw[k] = Raw(v)
	}
	e.ConfigureRaw(raw)
}

// ConfigureRaw sets the raw mapping directly, allowing absent values.
func (e *Env) ConfigureRaw(values map[string]RawValue) {
	raw := make(map[string]RawValue, len(values))
	for k, v := range values {
		raw[k] = v
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.raw = raw
	e.source = "map"
}

// Get returns the value assigned to a field.
func (e *Env) Get(name string) (any, bool) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	v, ok := e.values[name]
	return v, ok
}

// Export returns every declared field with its value. It fails if any field
// has never been assigned, which is the case before a successful Load.
func (e *Env) Export() (map[string]any, error) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	out := make(map[string]any, e.schema.Len())
	for _, f := range e.schema.Fields() {
		v, ok := e.values[f.Name]
		if !ok {
			return nil, fieldError(ErrNotLoaded, f.Name, f.Type, nil)
		}
		out[f.Name] = v
	}
	return out, nil
}

// Warnings returns the non-fatal messages recorded by the last Load.
func (e *Env) Warnings() []string {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	out := make([]string, len(e.warnings))
	copy(out, e.warnings)
	return out
}

// Debug returns a formatted description of fields, values and raw sources.
func (e *Env) Debug() string {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	var b strings.Builder
	b.WriteString("Environment Debug Info:\n")
	b.WriteString(fmt.Sprintf("Source: %s\n", e.source))
	b.WriteString(fmt.Sprintf("Strict: %v\n", e.strict))
	b.WriteString("Fields:\n")

	for _, f := range e.schema.Fields() {
		b.WriteString(fmt.Sprintf("  %s (%s", f.Name, f.Type))
		if f.Optional {
			b.WriteString(", optional")
		}
		b.WriteString("):\n")

		if v, ok := e.values[f.Name]; ok {
			b.WriteString(fmt.Sprintf("    Value: %s\n", describe(v)))
		} else {
			b.WriteString("    Value: <unset>\n")
		}
		if raw, ok := e.raw[f.Name]; ok {
			if raw.Present {
				b.WriteString(fmt.Sprintf("    Raw: %s\n", describe(raw.Value)))
			} else {
				b.WriteString("    Raw: <absent>\n")
			}
		}
	}

	return b.String()
}
