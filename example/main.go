// FILE: lixenwraith/typedenv/example/main.go
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lixenwraith/typedenv"
	"github.com/rs/zerolog"
)

// AppConfig is the typed view of the demo environment.
type AppConfig struct {
	Host      string         `env:"HOST"`
	Port      int64          `env:"PORT"`
	Debug     bool           `env:"DEBUG,optional"`
	Timeout   time.Duration  `env:"TIMEOUT,optional"`
	Started   time.Time      `env:"STARTED,optional"`
	Features  map[string]any `env:"FEATURES,optional"`
	Tags      []any          `env:"TAGS,optional"`
	Color     string         `env:"COLOR" envtype:"color"`
	LogFormat string         `env:"-"`
}

const envFilePath = "demo.env"

const envFile = `HOST=localhost
PORT=8080
TIMEOUT=30
STARTED=2024-01-15T10:00:00Z
FEATURES={"metrics": true, "tracing": false}
TAGS=alpha,beta
COLOR=green
`

func main() {
	// =========================================================================
	// PART 1: INITIAL SETUP
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 1: Creating demo .env file...")

	defer func() {
		log.Println("---")
		log.Println("🧹 Cleaning up...")
		os.Remove(envFilePath)
		os.Unsetenv("APP_PORT")
		log.Printf("Removed %s and unset APP_PORT.", envFilePath)
	}()

	if err := os.WriteFile(envFilePath, []byte(envFile), 0644); err != nil {
		log.Fatalf("❌ Failed to write %s: %v", envFilePath, err)
	}
	log.Printf("✅ Demo environment saved to %s.", envFilePath)

	// =========================================================================
	// PART 2: EXPLICIT SCHEMA AND MERGE
	// The process environment is merged under the file, so the file wins.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 2: Loading with an explicit schema...")

	os.Setenv("APP_PORT", "9999")
	log.Println("   (Set environment variable APP_PORT=9999, file has PORT=8080)")

	schema := typedenv.NewSchema().
		Field("HOST", typedenv.TypeString).
		Field("PORT", typedenv.TypeInt).
		Optional("DEBUG", typedenv.TypeBool).
		Optional("TIMEOUT", typedenv.TypeDuration).
		Optional("STARTED", typedenv.TypeTime).
		Optional("FEATURES", typedenv.TypeDict).
		Optional("TAGS", typedenv.TypeList).
		Field("COLOR", "color").
		Default("DEBUG", false)

	env, err := typedenv.NewBuilder().
		WithSchema(schema).
		WithMethod(typedenv.MethodMerge).
		WithFile(envFilePath).
		WithEnvPrefix("APP_").
		WithValidator("color", parseColor).
		WithLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)).
		WithCheck(func(e *typedenv.Env) error {
			port, err := e.Int("PORT")
			if err != nil {
				return err
			}
			if port < 1 || port > 65535 {
				return fmt.Errorf("port %d out of range", port)
			}
			return nil
		}).
		Build()
	if err != nil {
		log.Fatalf("❌ Builder failed: %v", err)
	}

	port, _ := env.Int("PORT")
	timeout, _ := env.Duration("TIMEOUT")
	log.Printf("✅ Loaded PORT=%d TIMEOUT=%s", port, timeout)

	// =========================================================================
	// PART 3: STRUCT TARGET
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 3: Decoding into a struct...")

	var cfg AppConfig
	if err := env.Scan(&cfg); err != nil {
		log.Fatalf("❌ Scan failed: %v", err)
	}
	log.Printf("✅ Host=%s Port=%d Color=%s Tags=%v", cfg.Host, cfg.Port, cfg.Color, cfg.Tags)

	// =========================================================================
	// PART 4: FAILURE REPORTING
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 4: Reporting a bad value...")

	bad := typedenv.New(schema)
	bad.SetLogger(zerolog.Nop())
	bad.ConfigureMap(map[string]string{"HOST": "h", "PORT": "eighty", "COLOR": "red"})

	var fieldErr *typedenv.FieldError
	if err := bad.Load(); errors.As(err, &fieldErr) {
		log.Printf("✅ Rejected %s (%s): %v", fieldErr.Field, fieldErr.Type, fieldErr.Err)
	}

	fmt.Println()
	if err := env.Dump(os.Stdout, typedenv.FormatTOML); err != nil {
		log.Fatalf("❌ Dump failed: %v", err)
	}
}

func parseColor(raw typedenv.RawValue) (any, error) {
	if !raw.Present {
		return nil, typedenv.ErrNilValue
	}
	switch raw.Value {
	case "red", "green", "blue":
		return raw.Value, nil
	}
	return nil, fmt.Errorf("unknown color %q", raw.Value)
}
