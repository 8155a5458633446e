// FILE: cmd/typedenv/main_test.go
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	schema := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(schema, []byte("fields:\n  PORT: {type: int}\n  DEBUG: {type: bool, optional: true}\n"), 0644))
	good := filepath.Join(dir, "good.env")
	require.NoError(t, os.WriteFile(good, []byte("PORT=8080\n"), 0644))
	bad := filepath.Join(dir, "bad.env")
	require.NoError(t, os.WriteFile(bad, []byte("PORT=eighty\n"), 0644))
	extra := filepath.Join(dir, "extra.env")
	require.NoError(t, os.WriteFile(extra, []byte("PORT=1\nEXTRA=x\n"), 0644))

	assert.Equal(t, 0, run([]string{"-schema", schema, "-env", good}))
	assert.Equal(t, 0, run([]string{"-schema", schema, "-env", good, "-output", "toml"}))
	assert.Equal(t, 1, run([]string{"-schema", schema, "-env", bad}))
	assert.Equal(t, 1, run([]string{"-schema", schema, "-env", extra}))
	assert.Equal(t, 0, run([]string{"-schema", schema, "-env", extra, "-strict=false"}))
	assert.Equal(t, 1, run([]string{"-schema", filepath.Join(dir, "missing.yaml"), "-env", good}))
	assert.Equal(t, 2, run([]string{"-env", good}))
	assert.Equal(t, 2, run([]string{"-schema", schema, "-method", "bogus"}))
	assert.Equal(t, 1, run([]string{"-schema", schema, "-env", good, "-output", "xml"}))
}
