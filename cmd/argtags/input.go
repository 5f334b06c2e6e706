package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/argtags/internal/logger"
	"github.com/aledsdavies/argtags/pkgs/errors"
	"github.com/aledsdavies/argtags/pkgs/tokenizer"
)

const stdinName = "<stdin>"

// getInputReader handles the 3 modes of input:
// 1. Explicit stdin with -f -
// 2. Piped input (auto-detected when using the default file)
// 3. File input
func getInputReader(file string, stdin io.Reader) (io.Reader, string, func() error, error) {
	noop := func() error { return nil }

	if file == "-" {
		return stdin, stdinName, noop, nil
	}

	if file == defaultFile && hasPipedInput() {
		return stdin, stdinName, noop, nil
	}

	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, file, nil, errors.Wrap(errors.ErrFileNotFound, fmt.Sprintf("script %s not found", file), err)
		}
		return nil, file, nil, errors.NewInputError(fmt.Sprintf("error opening %s", file), err)
	}
	return f, file, f.Close, nil
}

// hasPipedInput detects if there's data piped to stdin
func hasPipedInput() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	// Pipes may not report a size, so only the mode is checked.
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readScript returns the display name and contents of the selected script.
func readScript(cmd *cobra.Command, opts *rootOptions) (string, string, error) {
	reader, name, closeFunc, err := getInputReader(opts.file, cmd.InOrStdin())
	if err != nil {
		return name, "", err
	}
	defer func() { _ = closeFunc() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return name, "", errors.NewInputError(fmt.Sprintf("error reading %s", name), err)
	}
	return name, string(data), nil
}

// tokenize runs the tokenizer with the command's logging attached.
func tokenize(name, source string) ([]tokenizer.Event, error) {
	var tel tokenizer.Telemetry
	events, err := tokenizer.Tokenize(source,
		tokenizer.WithLogger(logger.NewStyledLogger("tokenizer", logger.Output())),
		tokenizer.WithTelemetry(&tel),
	)
	if err != nil {
		return nil, err
	}

	logger.Debug("tokenized script",
		"file", name,
		"lines", tel.Lines,
		"events", tel.Events,
		"continued", tel.ContinuationLines,
		"ignored", tel.IgnoredLines,
		"duration", tel.Duration,
	)
	return events, nil
}
