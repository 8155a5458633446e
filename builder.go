// File: lixenwraith/typedenv/builder.go
package typedenv

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// CheckFunc validates a loaded Env. It runs after Load succeeds.
type CheckFunc func(e *Env) error

// Builder provides a fluent interface for building a loaded Env
type Builder struct {
	schema     *Schema
	method     *Method
	file       string
	opts       SourceOptions
	strict     bool
	registry   *Registry
	validators map[Type]ConvertFunc
	logger     *zerolog.Logger
	checks     []CheckFunc
	err        error
}

// NewBuilder creates a new builder with the strict unknown-key policy
func NewBuilder() *Builder {
	return &Builder{
		strict:     true,
		validators: make(map[Type]ConvertFunc),
		checks:     make([]CheckFunc, 0),
	}
}

// WithSchema sets the schema to load
func (b *Builder) WithSchema(schema *Schema) *Builder {
	b.schema = schema
	return b
}

// WithStruct derives the schema from a struct with `env` tags
func (b *Builder) WithStruct(structWithDefaults any) *Builder {
	schema, err := SchemaFromStruct(structWithDefaults)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.schema = schema
	return b
}

// WithMethod sets the source method. Without it, the builder reads the file
// when one is set and the process environment otherwise.
func (b *Builder) WithMethod(method Method) *Builder {
	b.method = &method
	return b
}

// WithFile sets the source file path
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithSourceOptions sets the source read options
func (b *Builder) WithSourceOptions(opts SourceOptions) *Builder {
	b.opts = opts
	return b
}

// WithEnvPrefix keeps only process variables carrying prefix
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.opts.EnvPrefix = prefix
	return b
}

// WithStrict sets the unknown-key policy
func (b *Builder) WithStrict(strict bool) *Builder {
	b.strict = strict
	return b
}

// WithRegistry gives the built Env its own registry
func (b *Builder) WithRegistry(r *Registry) *Builder {
	b.registry = r
	return b
}

// WithValidator binds a conversion function before loading
func (b *Builder) WithValidator(t Type, fn ConvertFunc) *Builder {
	if fn != nil {
		b.validators[t] = fn
	}
	return b
}

// WithLogger sets the logger for warnings and debug events
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = &logger
	return b
}

// WithCheck adds a function that runs after a successful load.
// Checks run in the order they are added.
func (b *Builder) WithCheck(fn CheckFunc) *Builder {
	if fn != nil {
		b.checks = append(b.checks, fn)
	}
	return b
}

// Build creates the Env, resolves the source and loads it
func (b *Builder) Build() (*Env, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.schema == nil {
		return nil, fmt.Errorf("%w: no schema provided", ErrInvalidSchema)
	}

	env := New(b.schema)
	if b.registry != nil {
		env.UseRegistry(b.registry)
	}
	if b.logger != nil {
		env.SetLogger(*b.logger)
	}
	env.SetStrict(b.strict)
	for t, fn := range b.validators {
		env.AddValidator(t, fn)
	}

	method := MethodEnv
	if b.file != "" {
		method = MethodFile
	}
	if b.method != nil {
		method = *b.method
	}

	if err := env.Configure(method, b.file, b.opts); err != nil {
		return nil, fmt.Errorf("failed to resolve source: %w", err)
	}

	if err := env.Load(); err != nil {
		return nil, err
	}

	for _, check := range b.checks {
		if err := check(env); err != nil {
			return nil, fmt.Errorf("environment check failed: %w", err)
		}
	}

	return env, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Env {
	env, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("environment build failed: %v", err))
	}
	return env
}

// BuildAndScan builds the Env and decodes its values into target
func (b *Builder) BuildAndScan(target any) error {
	env, err := b.Build()
	if err != nil {
		return err
	}

	if err := env.Scan(target); err != nil {
		return fmt.Errorf("failed to scan environment into target: %w", err)
	}
	return nil
}
