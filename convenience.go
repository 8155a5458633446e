// File: lixenwraith/typedenv/convenience.go
package typedenv

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/url"
	"time"

	"github.com/BurntSushi/toml"
)

// Quick loads the environment described by a struct and decodes it back into
// target. Process variables are filtered by envPrefix. With a path, the file
// is merged over the process environment; without one, only the process
// environment is read. Undeclared keys are skipped.
func Quick(target any, envPrefix, path string) (*Env, error) {
	method := MethodEnv
	if path != "" {
		method = MethodMerge
	}

	env, err := NewBuilder().
		WithStruct(target).
		WithMethod(method).
		WithFile(path).
		WithEnvPrefix(envPrefix).
		WithStrict(false).
		Build()
	if err != nil {
		return nil, err
	}

	if err := env.Scan(target); err != nil {
		return nil, fmt.Errorf("failed to scan environment into target: %w", err)
	}
	return env, nil
}

// MustQuick is like Quick but panics on error
func MustQuick(target any, envPrefix, path string) *Env {
	env, err := Quick(target, envPrefix, path)
	if err != nil {
		panic(fmt.Sprintf("environment initialization failed: %v", err))
	}
	return env
}

// Dump writes the exported values to w as "json" or "toml".
func (e *Env) Dump(w io.Writer, format string) error {
	values, err := e.Export()
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON, "":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(printable(values))
	case FormatTOML:
		return toml.NewEncoder(w).Encode(printable(values))
	default:
		return fmt.Errorf("%w: unsupported output format %q", ErrInvalidConfiguration, format)
	}
}

// printable converts values into types both encoders render readably.
// TOML has no null, so nil values are dropped.
func printable(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		switch val := v.(type) {
		case nil:
			continue
		case time.Duration:
			out[k] = val.String()
		case *url.URL:
			out[k] = val.String()
		case net.IP:
			out[k] = val.String()
		case *net.IPNet:
			out[k] = val.String()
		default:
			out[k] = v
		}
	}
	return out
}
