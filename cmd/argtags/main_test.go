package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/argtags/pkgs/errors"
	"github.com/aledsdavies/argtags/pkgs/eventcodec"
)

const script = `#!/usr/bin/env bash
# @describe Demo
# @cmd Build it
# @option -t --target[=debug|release] Profile
build() { :; }
`

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(&rootOptions{})
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestEventsText(t *testing.T) {
	out, err := runCLI(t, script, "events", "-f", "-")
	require.NoError(t, err)

	want := `2 describe "Demo"
3 cmd "Build it"
4 flag_option -t --target[=debug|release] Profile
5 func build
`
	assert.Equal(t, want, out)
}

func TestEventsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o644))

	out, err := runCLI(t, "", "events", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "5 func build")
}

func TestEventsJSONMatchesSchema(t *testing.T) {
	out, err := runCLI(t, script, "events", "-f", "-", "--format", "json")
	require.NoError(t, err)
	assert.NoError(t, eventcodec.Validate([]byte(out)))
}

func TestEventsDigest(t *testing.T) {
	out, err := runCLI(t, script, "events", "-f", "-", "--digest")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}\n$`), out)

	again, err := runCLI(t, script, "events", "-f", "-", "--digest")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestEventsBadFormat(t *testing.T) {
	_, err := runCLI(t, script, "events", "-f", "-", "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, exitCode(err))
}

func TestLint(t *testing.T) {
	source := "# @optoin --x\n# @version banana\n# @cmd\nrun() { :; }\n"
	out, err := runCLI(t, source, "lint", "-f", "-")
	require.NoError(t, err)

	want := `<stdin>:1: warning: unknown tag @optoin (did you mean @option?)
<stdin>:2: warning: version "banana" is not a semantic version
<stdin>:3: info: @cmd has no description
`
	assert.Equal(t, want, out)
}

func TestLintParseError(t *testing.T) {
	_, err := runCLI(t, "# @cmd ok\n# @option --foo[=a]\n", "lint", "-f", "-")
	require.Error(t, err)
	assert.Equal(t, ExitParseError, exitCode(err))

	var buf bytes.Buffer
	FormatError(&buf, err, false)
	assert.Equal(t,
		"Error: syntax error at line 2: invalid @option directive\n  2 | # @option --foo[=a]\n",
		buf.String())
}

func TestLintWatchRejectsStdin(t *testing.T) {
	_, err := runCLI(t, script, "lint", "-f", "-", "--watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch")
}

func TestMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.sh")
	_, err := runCLI(t, "", "events", "-f", missing)
	require.Error(t, err)
	assert.Equal(t, ExitIOError, exitCode(err))

	var buf bytes.Buffer
	FormatError(&buf, err, false)
	assert.Contains(t, buf.String(), "Hint: point --file at the script")
}

func TestSchema(t *testing.T) {
	out, err := runCLI(t, "", "schema")
	require.NoError(t, err)
	assert.Equal(t, string(eventcodec.Schema()), out)
}

func TestSchemaValidate(t *testing.T) {
	events, err := runCLI(t, script, "events", "-f", "-", "--format", "json")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte(events), 0o644))

	_, err = runCLI(t, "", "schema", "--validate", path)
	assert.NoError(t, err)

	_, err = runCLI(t, `[{"kind": "nope", "line": 1}]`, "schema", "--validate", "-")
	require.Error(t, err)
	assert.Equal(t, ExitEncodeError, exitCode(err))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.NewStructuralError(1, "x"), ExitParseError},
		{errors.NewDirectiveError(1, "flag", "x"), ExitParseError},
		{errors.NewInputError("x", nil), ExitIOError},
		{errors.New(errors.ErrFileNotFound, "x"), ExitIOError},
		{errors.New(errors.ErrEncode, "x"), ExitEncodeError},
		{errors.New(errors.ErrSchema, "x"), ExitEncodeError},
		{assert.AnError, ExitInvalidArguments},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, exitCode(tt.err), "exitCode(%v)", tt.err)
	}
}

func TestFileWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Argcfile.sh")
	require.NoError(t, os.WriteFile(path, []byte("# @cmd a\n"), 0o644))

	w, err := newFileWatcher(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.run(ctx, func() { changed <- struct{}{} })
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.sh"), []byte("x"), 0o644))
	select {
	case <-changed:
		t.Fatal("a write to another file was reported")
	case <-time.After(3 * debounceDelay):
	}

	require.NoError(t, os.WriteFile(path, []byte("# @cmd b\n"), 0o644))
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("write to the watched file was not reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestFileWatcherNeedsCancellableContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Argcfile.sh")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := newFileWatcher(path)
	require.NoError(t, err)
	defer func() { _ = w.watcher.Close() }()

	assert.Panics(t, func() { _ = w.run(context.Background(), func() {}) })
}
