package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAML(t *testing.T) {
	data := []byte(`
script:
  name: tidy
  description: drop comments and normalise greetings
  commands:
    - "/^#/d"
    - "s/Hello/Hi/g; $p"
`)

	s, err := LoadYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "tidy", s.Name)
	assert.Equal(t, "drop comments and normalise greetings", s.Description)
	require.Equal(t, 3, s.Len())
	assert.Equal(t, "/^#/d;s/Hello/Hi/g;$p", s.String())
}

func TestLoadYAML_Errors(t *testing.T) {
	_, err := LoadYAML([]byte("script: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")

	_, err = LoadYAML([]byte("script:\n  name: empty\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no commands found")

	_, err = LoadYAML([]byte("script:\n  commands:\n    - p\n    - 1x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command 2:")

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Offset)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "edit.lsed")
	require.NoError(t, os.WriteFile(plain, []byte("# comment\n1d\ns/a/b/\n"), 0o644))

	s, err := LoadFile(plain)
	require.NoError(t, err)
	assert.Equal(t, "edit.lsed", s.Name)
	assert.Equal(t, "1d;s/a/b/", s.String())

	yml := filepath.Join(dir, "edit.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("script:\n  name: named\n  commands: [\"$q\"]\n"), 0o644))

	s, err = LoadFile(yml)
	require.NoError(t, err)
	assert.Equal(t, "named", s.Name)
	assert.Equal(t, "$q", s.String())
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.lsed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read script file")

	bad := filepath.Join(dir, "bad.lsed")
	require.NoError(t, os.WriteFile(bad, []byte("p\n\n5,k\n"), 0o644))

	_, err = LoadFile(bad)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Position.Line)
	assert.Contains(t, err.Error(), "bad.lsed")
}
