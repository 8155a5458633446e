// FILE: lixenwraith/typedenv/loader.go
package typedenv

import (
	"errors"
	"fmt"
)

// Load converts the resolved source mapping into field values.
//
// Keys are processed in sorted order. Each key must name a declared field
// unless the policy is relaxed, in which case it is logged and skipped. The
// first failure aborts the load; fields assigned before it keep their new
// values.
//
// Conversion functions run without the Env lock held.
func (e *Env) Load() error {
	if err := e.schema.Err(); err != nil {
		return err
	}

	e.mutex.Lock()
	raw := e.raw
	registry := e.registry
	strict := e.strict
	logger := e.logger
	e.warnings = nil
	e.mutex.Unlock()

	if len(raw) == 0 {
		return ErrEmptySource
	}

	populated := make(map[string]bool, e.schema.Len())

	// 1. Convert every source key
	for _, key := range sortedKeys(raw) {
		field, declared := e.schema.Lookup(key)
		if !declared {
			if strict {
				return fieldError(ErrUnknownField, key, "", nil)
			}
			msg := fmt.Sprintf("unknown variable %s", key)
			logger.Warn().Str("key", key).Msg("Unknown variable skipped")
			e.mutex.Lock()
			e.warnings = append(e.warnings, msg)
			e.mutex.Unlock()
			continue
		}

		convert, ok := registry.converterFor(field)
		if !ok {
			return fieldError(ErrUnknownType, field.Name, field.Type, nil)
		}

		value, err := convert(raw[key])
		if err != nil {
			if errors.Is(err, ErrNilValue) {
				return fieldError(ErrMissingField, field.Name, field.Type, err)
			}
			return fieldError(ErrConversion, field.Name, field.Type, err)
		}

		if value != nil {
			e.assign(field.Name, value)
			populated[field.Name] = true
			continue
		}

		if !field.Optional {
			return fieldError(ErrMissingField, field.Name, field.Type, nil)
		}
		e.assignIfUnset(field)
		populated[field.Name] = true
	}

	// 2. Reconcile fields the source never mentioned
	for _, field := range e.schema.Fields() {
		if populated[field.Name] {
			continue
		}
		if !field.Optional {
			return fieldError(ErrMissingField, field.Name, field.Type, nil)
		}
		e.assignIfUnset(field)
	}

	logger.Debug().
		Int("fields", e.schema.Len()).
		Int("keys", len(raw)).
		Msg("Environment loaded")
	return nil
}

func (e *Env) assign(name string, value any) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.values[name] = value
}

// assignIfUnset gives an optional field its schema default, or nil, unless a
// default or earlier load already gave it a value. Defaults declared after
// the Env was created are picked up here.
func (e *Env) assignIfUnset(field Field) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if _, exists := e.values[field.Name]; exists {
		return
	}
	if field.HasDefault {
		e.values[field.Name] = field.Default
		return
	}
	e.values[field.Name] = nil
}
