package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/praetorian-inc/lsed/pkg/prefilter"
	"github.com/praetorian-inc/lsed/pkg/regex"
	"github.com/praetorian-inc/lsed/pkg/script"
	"github.com/praetorian-inc/lsed/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes text over input with main and side output going to one buffer,
// which is how the CLI wires them.
func run(t *testing.T, text, input string, opts Options) (string, Result) {
	t.Helper()

	s, err := script.Compile(text)
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := New(opts).Run(context.Background(), s, source.NewReader(strings.NewReader(input), "test"), &out, &out)
	require.NoError(t, err)
	return out.String(), res
}

func numbers(from, to int) string {
	var b strings.Builder
	for i := from; i <= to; i++ {
		fmt.Fprintf(&b, "%d\n", i)
	}
	return b.String()
}

func TestRun_DeleteTwoCharacterLines(t *testing.T) {
	out, res := run(t, `/.{2}/d`, numbers(1, 99), DefaultOptions())
	assert.Equal(t, numbers(1, 9), out)
	assert.Equal(t, 99, res.Lines)
	assert.False(t, res.Quit)
}

func TestRun_Substitute(t *testing.T) {
	out, _ := run(t, `s/Hello/World/`, "Hello World, Hello World\n", DefaultOptions())
	assert.Equal(t, "World World, Hello World\n", out)

	out, _ = run(t, `s/Hello/World/g`, "Hello World, Hello World\n", DefaultOptions())
	assert.Equal(t, "World World, World World\n", out)
}

func TestRun_EmptyScriptCopiesInput(t *testing.T) {
	input := "a\nb\nno newline"
	out, res := run(t, "", input, DefaultOptions())
	assert.Equal(t, input, out)
	assert.Equal(t, 3, res.Lines)
}

// endless is an input stream that never runs dry.
type endless struct {
	n       int
	pending []byte
}

func (e *endless) Read(p []byte) (int, error) {
	if len(e.pending) == 0 {
		e.n++
		e.pending = []byte(fmt.Sprintf("%d\n", e.n))
	}
	n := copy(p, e.pending)
	e.pending = e.pending[n:]
	return n, nil
}

func TestRun_QuitSuppressesCurrentLine(t *testing.T) {
	s := script.MustCompile("2q")
	var out bytes.Buffer

	res, err := New(DefaultOptions()).Run(context.Background(), s, source.NewReader(&endless{}, "endless"), &out, &out)
	require.NoError(t, err)

	assert.Equal(t, "1\n", out.String())
	assert.True(t, res.Quit)
	assert.Equal(t, 2, res.Lines)
}

func TestRun_PrintBeforeQuit(t *testing.T) {
	out, res := run(t, "2p;2q", numbers(1, 5), DefaultOptions())
	assert.Equal(t, "1\n2\n", out, "print runs before quit; auto-print of line 2 is suppressed")
	assert.True(t, res.Quit)
}

func TestRun_QuitBeforePrint(t *testing.T) {
	out, _ := run(t, "2q;2p", numbers(1, 5), DefaultOptions())
	assert.Equal(t, "1\n", out)
}

func TestRun_Print(t *testing.T) {
	out, _ := run(t, "p", "a\nb\n", DefaultOptions())
	assert.Equal(t, "a\na\nb\nb\n", out)
}

func TestRun_QuietMode(t *testing.T) {
	opts := Options{Quiet: true}

	out, _ := run(t, "", "a\nb\n", opts)
	assert.Empty(t, out)

	out, _ = run(t, "/b/p", "a\nb\nc\n", opts)
	assert.Equal(t, "b\n", out)

	out, _ = run(t, "$p", "a\nb\nc\n", opts)
	assert.Equal(t, "c\n", out)
}

func TestRun_DeleteDoesNotStopLaterCommands(t *testing.T) {
	// The print after delete still runs, against the emptied text.
	s := script.MustCompile("2d;p")
	var main, side bytes.Buffer

	_, err := New(DefaultOptions()).Run(context.Background(), s, source.FromStrings([]string{"a", "b", "c"}), &main, &side)
	require.NoError(t, err)

	assert.Equal(t, "a\nc\n", main.String())
	assert.Equal(t, "a\nc\n", side.String(), "print of deleted line 2 writes nothing")
}

func TestRun_SubstituteAfterDeleteSeesEmptyText(t *testing.T) {
	out, _ := run(t, "d;s/^/X/", "a\nb\n", DefaultOptions())
	// The empty pattern matches the empty text, so each line becomes "X".
	assert.Equal(t, "XX", out)
}

func TestRun_CommandsSeeEarlierEdits(t *testing.T) {
	out, _ := run(t, "s/cat/dog/;/dog/d", "cat\nbird\n", DefaultOptions())
	assert.Equal(t, "bird\n", out)
}

func TestRun_Ranges(t *testing.T) {
	out, _ := run(t, "3,6d", numbers(1, 10), DefaultOptions())
	assert.Equal(t, "1\n2\n7\n8\n9\n10\n", out)

	out, _ = run(t, "/^4$/,$d", numbers(1, 6), DefaultOptions())
	assert.Equal(t, numbers(1, 6), out, "$ in a pattern does not match before the newline")

	out, _ = run(t, "/4/,$d", numbers(1, 6), DefaultOptions())
	assert.Equal(t, "1\n2\n3\n", out)

	out, _ = run(t, "/begin/,/end/s/^/> /", "x\nbegin\ny\nend\nz\n", DefaultOptions())
	assert.Equal(t, "x\n> begin\n> y\n> end\nz\n", out)
}

func TestRun_LastLine(t *testing.T) {
	out, _ := run(t, "$d", "a\nb\nc\n", DefaultOptions())
	assert.Equal(t, "a\nb\n", out)

	out, _ = run(t, "$s/$/!/", "a\nb", DefaultOptions())
	assert.Equal(t, "a\nb!", out)
}

func TestRun_PrefilteredScriptMatchesPlain(t *testing.T) {
	text := "s/foo/bar/;/bar/p;/foo/d;/x/,/y/s/^/#/"
	input := "foo\nbar\nx\nfoo y\nz\n"

	plain, _ := run(t, text, input, DefaultOptions())

	s := script.MustCompile(text)
	require.NotNil(t, prefilter.Apply(s))
	var out bytes.Buffer
	_, err := New(DefaultOptions()).Run(context.Background(), s, source.NewReader(strings.NewReader(input), "test"), &out, &out)
	require.NoError(t, err)

	assert.Equal(t, plain, out.String())
}

func TestRun_Regexp2Engine(t *testing.T) {
	s := script.MustCompile(`/(\w)\1/d`, script.WithEngine(regex.EngineRegexp2))
	var out bytes.Buffer

	_, err := New(DefaultOptions()).Run(context.Background(), s, source.FromStrings([]string{"book", "cat", "moon"}), &out, &out)
	require.NoError(t, err)
	assert.Equal(t, "cat\n", out.String())
}

type brokenReader struct {
	data string
}

func (b *brokenReader) Read(p []byte) (int, error) {
	if b.data == "" {
		return 0, errors.New("device gone")
	}
	n := copy(p, b.data)
	b.data = b.data[n:]
	return n, nil
}

func TestRun_ReadErrorEndsRunGracefully(t *testing.T) {
	s := script.MustCompile("")
	var out, warn bytes.Buffer

	res, err := New(Options{Warn: &warn}).Run(context.Background(), s, source.NewReader(&brokenReader{data: "a\nb\n"}, "flaky"), &out, &out)
	require.NoError(t, err)

	assert.Equal(t, "a\nb\n", out.String())
	require.Error(t, res.ReadErr)
	assert.Contains(t, warn.String(), "[warn] reading flaky: device gone")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, io.ErrShortWrite
}

func TestRun_WriteErrors(t *testing.T) {
	s := script.MustCompile("")
	_, err := New(DefaultOptions()).Run(context.Background(), s, source.FromStrings([]string{"a"}), failingWriter{}, io.Discard)
	require.ErrorIs(t, err, io.ErrShortWrite)
	assert.Contains(t, err.Error(), "writing output")

	s = script.MustCompile("p")
	_, err = New(DefaultOptions()).Run(context.Background(), s, source.FromStrings([]string{"a"}), io.Discard, failingWriter{})
	require.ErrorIs(t, err, io.ErrShortWrite)
	assert.Contains(t, err.Error(), "line 1")
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	res, err := New(DefaultOptions()).Run(ctx, script.MustCompile(""), source.NewReader(&endless{}, "endless"), &out, &out)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Lines)
	assert.Empty(t, out.String())
}
