// FILE: cmd/typedenv/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/typedenv"
	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("typedenv", flag.ContinueOnError)
	schemaPath := fs.String("schema", "", "schema file (yaml, json or toml)")
	envFile := fs.String("env", "", "source file, discovered when empty and method needs one")
	methodName := fs.String("method", "", "source method: file, env or merge")
	prefix := fs.String("prefix", "", "process variable prefix to strip")
	strict := fs.Bool("strict", true, "fail on undeclared variables")
	output := fs.String("output", typedenv.FormatJSON, "output format: json or toml")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()

	if *schemaPath == "" {
		logger.Error().Msg("Missing -schema")
		fs.Usage()
		return 2
	}

	schema, err := typedenv.LoadSchemaFile(*schemaPath)
	if err != nil {
		logger.Error().Err(err).Str("schema", *schemaPath).Msg("Failed to load schema")
		return 1
	}

	builder := typedenv.NewBuilder().
		WithSchema(schema).
		WithEnvPrefix(*prefix).
		WithStrict(*strict).
		WithLogger(logger)

	if *methodName != "" {
		method, err := typedenv.ParseMethod(*methodName)
		if err != nil {
			logger.Error().Err(err).Msg("Invalid -method")
			return 2
		}
		builder = builder.WithMethod(method)
		if method != typedenv.MethodEnv && *envFile == "" {
			builder = builder.WithFileDiscovery(typedenv.DefaultDiscoveryOptions("typedenv"))
		}
	}
	if *envFile != "" {
		builder = builder.WithFile(*envFile)
	}

	env, err := builder.Build()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load environment")
		return 1
	}

	if err := env.Dump(os.Stdout, *output); err != nil {
		fmt.Fprintf(os.Stderr, "output failed: %v\n", err)
		return 1
	}
	return 0
}
