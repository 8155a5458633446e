// File: lixenwraith/typedenv/doc.go

// Package typedenv loads environment variables into typed values according to
// a declared schema. Raw string pairs come from a dotenv file (TOML, YAML and
// JSON files are accepted too), the process environment, or both merged, and
// each value is converted by the validator registered for its declared type.
//
// Features:
//   - Explicit schema of required and optional fields, with defaults
//   - Built-in validators for int, string, datetime, date, duration, dict, list,
//     bool, float, url, ip and cidr
//   - Pluggable validators keyed by type name
//   - Strict or relaxed handling of undeclared keys
//   - Schema derivation from tagged structs and decoding back into them
//   - Builder pattern and source file discovery
//   - Structured logging through zerolog
//
// Quick Start:
//
//	schema := typedenv.NewSchema().
//	    Field("PORT", typedenv.TypeInt).
//	    Optional("DEBUG", typedenv.TypeBool)
//
//	env := typedenv.New(schema)
//	if err := env.Configure(typedenv.MethodFile, ".env", typedenv.SourceOptions{}); err != nil {
//	    log.Fatal(err)
//	}
//	if err := env.Load(); err != nil {
//	    log.Fatal(err)
//	}
//
//	port, _ := env.Int("PORT")
//
// Struct based:
//
//	type Config struct {
//	    Port  int           `env:"PORT"`
//	    Debug bool          `env:"DEBUG,optional"`
//	    TTL   time.Duration `env:"TTL,optional"`
//	}
//
//	cfg := Config{Port: 8080}
//	env, err := typedenv.Quick(&cfg, "MYAPP_", ".env")
//
// Custom types:
//
//	env.AddValidator("color", func(raw typedenv.RawValue) (any, error) {
//	    switch raw.Value {
//	    case "red", "green", "blue":
//	        return raw.Value, nil
//	    }
//	    return nil, fmt.Errorf("unknown color %q", raw.Value)
//	})
//
// Loading stops at the first failing key. Values assigned before the failure
// are kept, so an Env should be discarded after a failed Load.
//
// Thread Safety:
// Reads are safe for concurrent use. Registering validators while a load is in
// progress leaves the result of that load unspecified.
package typedenv
