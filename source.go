// FILE: lixenwraith/typedenv/source.go
package typedenv

import (
	"fmt"
	"os"
	"strings"

	"dario.cat/mergo"
)

// MaxValueSize caps a single raw value read from the process environment.
const MaxValueSize = 1 << 20

// Method selects where raw variables are read from.
type Method int

const (
	// MethodFile reads a dotenv (or TOML/YAML/JSON) file.
	MethodFile Method = iota
	// MethodEnv reads the process environment.
	MethodEnv
	// MethodMerge reads both; file values win on collision.
	MethodMerge
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodFile:
		return "file"
	case MethodEnv:
		return "env"
	case MethodMerge:
		return "merge"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod converts a method name into a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "file", "dotenv":
		return MethodFile, nil
	case "env", "environment":
		return MethodEnv, nil
	case "merge", "all":
		return MethodMerge, nil
	}
	return 0, fmt.Errorf("%w: unknown method %q", ErrInvalidConfiguration, s)
}

// SourceOptions tunes how sources are read.
type SourceOptions struct {
	// Format forces the file format. Empty or "auto" detects by extension.
	Format string

	// EnvPrefix keeps only process variables with this prefix, stripping it.
	// Example: "MYAPP_" maps MYAPP_PORT to PORT.
	EnvPrefix string

	// MaxFileSize rejects larger source files (0 = unlimited).
	MaxFileSize int64

	// PreventPathTraversal rejects relative paths escaping the working directory.
	PreventPathTraversal bool
}

// Resolve produces the raw mapping for a method. An empty filePath means no
// file was given.
func Resolve(method Method, filePath string, opts SourceOptions) (map[string]RawValue, error) {
	switch method {
	case MethodFile:
		if filePath == "" {
			return nil, fmt.Errorf("%w: file path is required for method %s", ErrInvalidConfiguration, method)
		}
		return readSourceFile(filePath, opts)

	case MethodEnv:
		if filePath != "" {
			return nil, fmt.Errorf("%w: file path is not used with method %s", ErrInvalidConfiguration, method)
		}
		return environ(opts.EnvPrefix)

	case MethodMerge:
		if filePath == "" {
			return nil, fmt.Errorf("%w: file path is required for method %s", ErrInvalidConfiguration, method)
		}
		envValues, err := environ(opts.EnvPrefix)
		if err != nil {
			return nil, err
		}
		fileValues, err := readSourceFile(filePath, opts)
		if err != nil {
			return nil, err
		}
		return mergeSources(envValues, fileValues)

	default:
		return nil, fmt.Errorf("%w: unknown method %s", ErrInvalidConfiguration, method)
	}
}

// mergeSources overlays override onto base, override winning on collision.
func mergeSources(base, override map[string]RawValue) (map[string]RawValue, error) {
	merged := make(map[string]RawValue, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	if err := mergo.Merge(&merged, override, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge sources: %w", err)
	}
	return merged, nil
}

// environ snapshots the process environment.
func environ(prefix string) (map[string]RawValue, error) {
	values := make(map[string]RawValue)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		if prefix != "" {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			key = strings.TrimPrefix(key, prefix)
			if key == "" {
				continue
			}
		}
		if len(value) > MaxValueSize {
			return nil, fmt.Errorf("%w: %s", ErrValueSize, key)
		}
		values[key] = Raw(value)
	}
	return values, nil
}
