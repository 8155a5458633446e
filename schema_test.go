// FILE: lixenwraith/typedenv/schema_test.go
package typedenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaDeclaration(t *testing.T) {
	t.Run("ChainedFields", func(t *testing.T) {
		s := NewSchema().
			Field("PORT", TypeInt).
			Optional("DEBUG", TypeBool).
			Field("HOST", TypeString)

		require.NoError(t, s.Err())
		assert.Equal(t, 3, s.Len())
		assert.Equal(t, []string{"DEBUG", "HOST", "PORT"}, s.Names())

		f, ok := s.Lookup("DEBUG")
		require.True(t, ok)
		assert.True(t, f.Optional)
		assert.Equal(t, TypeBool, f.Type)
	})

	t.Run("OptionalMarkerNormalized", func(t *testing.T) {
		s := NewSchema().Field("STARTED", OptionalOf(TypeTime))
		f, ok := s.Lookup("STARTED")
		require.True(t, ok)
		assert.True(t, f.Optional)
		assert.Equal(t, TypeTime, f.Type)
	})

	t.Run("RedeclareReplaces", func(t *testing.T) {
		s := NewSchema().Field("X", TypeInt).Optional("X", TypeString)
		f, _ := s.Lookup("X")
		assert.Equal(t, TypeString, f.Type)
		assert.True(t, f.Optional)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("InvalidNames", func(t *testing.T) {
		for _, name := range []string{"", "HAS SPACE", "A=B", "ÜBER", "x/y"} {
			err := NewSchema().Declare(Field{Name: name, Type: TypeString})
			assert.ErrorIs(t, err, ErrInvalidSchema, "name %q", name)
		}
		for _, name := range []string{"A", "a_b", "app.port", "my-key", "X1"} {
			err := NewSchema().Declare(Field{Name: name, Type: TypeString})
			assert.NoError(t, err, "name %q", name)
		}
	})

	t.Run("MissingType", func(t *testing.T) {
		s := NewSchema().Field("X", "")
		assert.ErrorIs(t, s.Err(), ErrInvalidSchema)
	})

	t.Run("ErrorsAccumulate", func(t *testing.T) {
		s := NewSchema().Field("", TypeInt).Field("OK", TypeInt).Field("bad name", TypeInt)
		require.Error(t, s.Err())
		assert.Contains(t, s.Err().Error(), `""`)
		assert.Contains(t, s.Err().Error(), `"bad name"`)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("Defaults", func(t *testing.T) {
		s := NewSchema().Optional("DEBUG", TypeBool).Default("DEBUG", true)
		f, _ := s.Lookup("DEBUG")
		assert.True(t, f.HasDefault)
		assert.Equal(t, true, f.Default)

		s = NewSchema().Default("NOPE", 1)
		assert.ErrorIs(t, s.Err(), ErrInvalidSchema)
	})

	t.Run("OwnsRegistry", func(t *testing.T) {
		a, b := NewSchema(), NewSchema()
		a.Registry().Register("color", upper)
		_, ok := b.Registry().Lookup("color")
		assert.False(t, ok, "schemas do not share registries")
	})
}
