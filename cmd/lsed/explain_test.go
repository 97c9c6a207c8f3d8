package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExplain(t *testing.T) {
	resetFlags()

	cmd, stdout, _ := newTestCmd("")
	err := runExplain(cmd, []string{`/ERROR/,$d; 3p
s/a\/b/c/g`})
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "/ERROR/,$")
	assert.Contains(t, out, "range")
	assert.Contains(t, out, `s/a\/b/c/g`)
	assert.Contains(t, out, "2:1")
	assert.Contains(t, out, "Commands: 3")
	assert.Contains(t, out, "Prefilter: 1 keyword(s)")
	assert.Contains(t, out, `"ERROR"`)
	assert.Contains(t, out, "Auto-print: on")
	assert.NotContains(t, out, "\x1b[", "no escape codes with --color=never")
}

func TestRunExplain_GlobalAndQuiet(t *testing.T) {
	resetFlags()
	quiet = true
	usePrefilter = false

	cmd, stdout, _ := newTestCmd("")
	err := runExplain(cmd, []string{`p`})
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "(every line)")
	assert.Contains(t, out, "global")
	assert.Contains(t, out, "Prefilter: 0 keyword(s)")
	assert.Contains(t, out, "Auto-print: off")
}

func TestRunExplain_ScriptFile(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	scriptFile = writeFile(t, dir, "tidy.yml", `script:
  name: tidy
  description: drop comments
  commands:
    - "/^#/d"
`)

	cmd, stdout, _ := newTestCmd("")
	require.NoError(t, runExplain(cmd, nil))
	assert.Contains(t, stdout.String(), "Script: tidy")
	assert.Contains(t, stdout.String(), "Description: drop comments")

	err := runExplain(cmd, []string{"p"})
	require.Error(t, err, "script argument and --file are exclusive")

	scriptFile = filepath.Join(dir, "missing.yml")
	require.Error(t, runExplain(cmd, nil))
}

func TestRunExplain_Color(t *testing.T) {
	resetFlags()
	colorMode = "always"

	cmd, stdout, _ := newTestCmd("")
	require.NoError(t, runExplain(cmd, []string{`1d`}))
	assert.Contains(t, stdout.String(), "\x1b[")

	colorMode = "sometimes"
	err := runExplain(cmd, []string{`1d`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --color value")
}
