// FILE: lixenwraith/typedenv/builder_test.go
package typedenv

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "HOST=filehost\nPORT=9000\n")

	schema := func() *Schema {
		return NewSchema().Field("HOST", TypeString).Field("PORT", TypeInt)
	}

	t.Run("FileByDefaultWhenSet", func(t *testing.T) {
		env, err := NewBuilder().
			WithSchema(schema()).
			WithFile(envFile).
			WithLogger(zerolog.Nop()).
			Build()
		require.NoError(t, err)

		port, _ := env.Int("PORT")
		assert.Equal(t, 9000, port)
	})

	t.Run("EnvByDefaultWithoutFile", func(t *testing.T) {
		t.Setenv("TYPEDENV_BLD_HOST", "envhost")
		t.Setenv("TYPEDENV_BLD_PORT", "7000")

		env, err := NewBuilder().
			WithSchema(schema()).
			WithEnvPrefix("TYPEDENV_BLD_").
			WithLogger(zerolog.Nop()).
			Build()
		require.NoError(t, err)

		host, _ := env.String("HOST")
		assert.Equal(t, "envhost", host)
	})

	t.Run("MergeMethod", func(t *testing.T) {
		t.Setenv("TYPEDENV_BLM_HOST", "envhost")

		env, err := NewBuilder().
			WithSchema(schema()).
			WithMethod(MethodMerge).
			WithFile(envFile).
			WithSourceOptions(SourceOptions{EnvPrefix: "TYPEDENV_BLM_"}).
			WithLogger(zerolog.Nop()).
			Build()
		require.NoError(t, err)

		host, _ := env.String("HOST")
		assert.Equal(t, "filehost", host)
	})

	t.Run("EnvMethodWithFileFails", func(t *testing.T) {
		_, err := NewBuilder().
			WithSchema(schema()).
			WithMethod(MethodEnv).
			WithFile(envFile).
			Build()
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("RelaxedWithLogger", func(t *testing.T) {
		path := writeFile(t, dir, "extra.env", "HOST=h\nPORT=1\nEXTRA=x\n")

		_, err := NewBuilder().WithSchema(schema()).WithFile(path).WithLogger(zerolog.Nop()).Build()
		assert.ErrorIs(t, err, ErrUnknownField)

		var buf bytes.Buffer
		env, err := NewBuilder().
			WithSchema(schema()).
			WithFile(path).
			WithStrict(false).
			WithLogger(zerolog.New(&buf)).
			Build()
		require.NoError(t, err)
		assert.Equal(t, []string{"unknown variable EXTRA"}, env.Warnings())
		assert.Contains(t, buf.String(), "EXTRA")
	})

	t.Run("WithValidator", func(t *testing.T) {
		path := writeFile(t, dir, "suit.env", "SUIT=hearts\n")

		env, err := NewBuilder().
			WithSchema(NewSchema().Field("SUIT", "suit")).
			WithFile(path).
			WithRegistry(NewRegistry()).
			WithValidator("suit", parseSuit).
			WithLogger(zerolog.Nop()).
			Build()
		require.NoError(t, err)

		v, _ := env.Get("SUIT")
		assert.Equal(t, hearts, v)
	})

	t.Run("WithCheck", func(t *testing.T) {
		var order []string
		_, err := NewBuilder().
			WithSchema(schema()).
			WithFile(envFile).
			WithLogger(zerolog.Nop()).
			WithCheck(func(e *Env) error {
				order = append(order, "first")
				return nil
			}).
			WithCheck(func(e *Env) error {
				order = append(order, "second")
				port, _ := e.Int("PORT")
				if port > 8000 {
					return fmt.Errorf("port %d too high", port)
				}
				return nil
			}).
			Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "port 9000 too high")
		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("WithStruct", func(t *testing.T) {
		type config struct {
			Host    string        `env:"HOST"`
			Port    int           `env:"PORT"`
			Timeout time.Duration `env:"TIMEOUT"`
		}

		var cfg config
		cfg.Timeout = 5 * time.Second
		err := NewBuilder().
			WithStruct(&cfg).
			WithFile(envFile).
			WithLogger(zerolog.Nop()).
			BuildAndScan(&cfg)
		require.NoError(t, err)
		assert.Equal(t, config{Host: "filehost", Port: 9000, Timeout: 5 * time.Second}, cfg)
	})

	t.Run("WithStructError", func(t *testing.T) {
		_, err := NewBuilder().WithStruct(42).WithFile(envFile).Build()
		assert.Error(t, err)
	})

	t.Run("NoSchema", func(t *testing.T) {
		_, err := NewBuilder().WithFile(envFile).Build()
		assert.ErrorIs(t, err, ErrInvalidSchema)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := NewBuilder().WithSchema(schema()).WithFile(dir + "/nope.env").Build()
		assert.True(t, errors.Is(err, ErrSourceNotFound))
	})

	t.Run("MustBuildPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewBuilder().WithFile(envFile).MustBuild()
		})
		assert.NotPanics(t, func() {
			NewBuilder().WithSchema(schema()).WithFile(envFile).WithLogger(zerolog.Nop()).MustBuild()
		})
	})
}
