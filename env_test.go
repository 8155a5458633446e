// FILE: lixenwraith/typedenv/env_test.go
package typedenv_test

import (
	"net"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/typedenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedEnv(t *testing.T) *typedenv.Env {
	t.Helper()

	schema := typedenv.NewSchema().
		Field("HOST", typedenv.TypeString).
		Field("PORT", typedenv.TypeInt).
		Field("RATIO", typedenv.TypeFloat).
		Field("DEBUG", typedenv.TypeBool).
		Field("TIMEOUT", typedenv.TypeDuration).
		Field("STARTED", typedenv.TypeTime).
		Field("LIMITS", typedenv.TypeDict).
		Field("TAGS", typedenv.TypeList).
		Field("ENDPOINT", typedenv.TypeURL).
		Field("BIND", typedenv.TypeIP).
		Optional("MISSING", typedenv.TypeString)

	env := typedenv.New(schema)
	env.SetLogger(zerolog.Nop())
	env.ConfigureMap(map[string]string{
		"HOST":     "localhost",
		"PORT":     "8080",
		"RATIO":    "0.75",
		"DEBUG":    "1",
		"TIMEOUT":  "30",
		"STARTED":  "2024-01-15T10:30:00Z",
		"LIMITS":   `{"cpu": 2}`,
		"TAGS":     "a,b",
		"ENDPOINT": "https://api.example.com/v1",
		"BIND":     "127.0.0.1",
	})
	require.NoError(t, env.Load())
	return env
}

func TestTypedGetters(t *testing.T) {
	env := loadedEnv(t)

	host, err := env.String("HOST")
	require.NoError(t, err)
	assert.Equal(t, "localhost", host)

	port, err := env.Int("PORT")
	require.NoError(t, err)
	assert.Equal(t, 8080, port)

	port64, err := env.Int64("PORT")
	require.NoError(t, err)
	assert.Equal(t, int64(8080), port64)

	portStr, err := env.String("PORT")
	require.NoError(t, err)
	assert.Equal(t, "8080", portStr)

	ratio, err := env.Float64("RATIO")
	require.NoError(t, err)
	assert.Equal(t, 0.75, ratio)

	asFloat, err := env.Float64("PORT")
	require.NoError(t, err)
	assert.Equal(t, 8080.0, asFloat)

	debug, err := env.Bool("DEBUG")
	require.NoError(t, err)
	assert.True(t, debug)

	timeout, err := env.Duration("TIMEOUT")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout)

	started, err := env.Time("STARTED")
	require.NoError(t, err)
	assert.Equal(t, 2024, started.Year())

	limits, err := env.Map("LIMITS")
	require.NoError(t, err)
	assert.Equal(t, float64(2), limits["cpu"])

	tags, err := env.List("TAGS")
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, tags)

	endpoint, err := env.URL("ENDPOINT")
	require.NoError(t, err)
	assert.Equal(t, "/v1", endpoint.Path)

	bind, err := env.IP("BIND")
	require.NoError(t, err)
	assert.True(t, bind.Equal(net.IPv4(127, 0, 0, 1)))

	missing, err := env.String("MISSING")
	require.NoError(t, err)
	assert.Empty(t, missing)

	t.Run("WrongType", func(t *testing.T) {
		_, err := env.Bool("HOST")
		assert.Error(t, err)
		_, err = env.Int64("HOST")
		assert.Error(t, err)
		_, err = env.Int64("MISSING")
		assert.Error(t, err)
	})

	t.Run("Undeclared", func(t *testing.T) {
		_, err := env.String("NOPE")
		assert.ErrorIs(t, err, typedenv.ErrUnknownField)
	})
}

func TestExport(t *testing.T) {
	t.Run("BeforeLoad", func(t *testing.T) {
		env := typedenv.New(typedenv.NewSchema().Field("PORT", typedenv.TypeInt))
		_, err := env.Export()
		assert.ErrorIs(t, err, typedenv.ErrNotLoaded)

		_, err = env.String("PORT")
		assert.ErrorIs(t, err, typedenv.ErrNotLoaded)
	})

	t.Run("DefaultsOnlyBeforeLoad", func(t *testing.T) {
		schema := typedenv.NewSchema().Optional("LEVEL", typedenv.TypeString).Default("LEVEL", "info")
		env := typedenv.New(schema)
		out, err := env.Export()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"LEVEL": "info"}, out)
	})

	t.Run("EveryDeclaredField", func(t *testing.T) {
		env := loadedEnv(t)
		out, err := env.Export()
		require.NoError(t, err)
		assert.Len(t, out, 11)
		assert.Contains(t, out, "MISSING")
		assert.Equal(t, true, out["DEBUG"])
	})

	t.Run("IsACopy", func(t *testing.T) {
		env := loadedEnv(t)
		out, _ := env.Export()
		out["HOST"] = "changed"
		host, _ := env.Get("HOST")
		assert.Equal(t, "localhost", host)
	})
}

func TestEnvState(t *testing.T) {
	t.Run("StrictByDefault", func(t *testing.T) {
		env := typedenv.New(typedenv.NewSchema())
		assert.True(t, env.Strict())
		env.SetStrict(false)
		assert.False(t, env.Strict())
	})

	t.Run("NilSchema", func(t *testing.T) {
		env := typedenv.New(nil)
		assert.NotNil(t, env.Schema())
		assert.NotNil(t, env.Registry())
	})

	t.Run("SharedRegistry", func(t *testing.T) {
		schema := typedenv.NewSchema().Field("C", "color")
		a := typedenv.New(schema)
		b := typedenv.New(schema)
		a.AddValidator("color", func(raw typedenv.RawValue) (any, error) { return raw.Value, nil })

		_, ok := b.Registry().Lookup("color")
		assert.True(t, ok, "envs of one schema share its registry")
	})

	t.Run("OwnRegistry", func(t *testing.T) {
		schema := typedenv.NewSchema().Field("C", "color")
		a := typedenv.New(schema)
		a.UseRegistry(typedenv.NewRegistry())
		a.AddValidator("color", func(raw typedenv.RawValue) (any, error) { return raw.Value, nil })

		_, ok := schema.Registry().Lookup("color")
		assert.False(t, ok)
	})

	t.Run("ConfigureRejectsInvalidSchema", func(t *testing.T) {
		env := typedenv.New(typedenv.NewSchema().Field("", typedenv.TypeInt))
		err := env.Configure(typedenv.MethodEnv, "", typedenv.SourceOptions{})
		assert.ErrorIs(t, err, typedenv.ErrInvalidSchema)
	})

	t.Run("Debug", func(t *testing.T) {
		env := loadedEnv(t)
		out := env.Debug()
		assert.Contains(t, out, "Source: map")
		assert.Contains(t, out, "HOST (string):")
		assert.Contains(t, out, `Value: "localhost"`)
		assert.Contains(t, out, "MISSING (string, optional):")
		assert.Contains(t, out, "Value: <nil>")
	})
}

func TestConcurrentReads(t *testing.T) {
	env := loadedEnv(t)
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := env.Int("PORT"); err != nil {
					t.Error(err)
				}
				if _, err := env.Export(); err != nil {
					t.Error(err)
				}
				_ = env.Warnings()
			}
		}()
	}
	wg.Wait()
}
