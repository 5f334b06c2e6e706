package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/argtags/internal/logger"
	"github.com/aledsdavies/argtags/pkgs/lint"
)

func newLintCmd(opts *rootOptions) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Report unknown tags and other suspicious directives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !watch {
				return runLint(cmd, opts, out)
			}

			if opts.file == "-" {
				return fmt.Errorf("--watch needs a script file, not stdin")
			}
			watcher, err := newFileWatcher(opts.file)
			if err != nil {
				return err
			}

			if err := runLint(cmd, opts, out); err != nil {
				FormatError(cmd.ErrOrStderr(), err, ShouldUseColor(opts.noColor))
			}
			logger.Info("watching for changes", "file", opts.file)
			return watcher.run(cmd.Context(), func() {
				_, _ = fmt.Fprintf(out, "--- %s changed\n", opts.file)
				if err := runLint(cmd, opts, out); err != nil {
					FormatError(cmd.ErrOrStderr(), err, ShouldUseColor(opts.noColor))
				}
			})
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Re-run whenever the script changes, until interrupted")
	return cmd
}

// runLint prints one `NAME:LINE: SEVERITY: MESSAGE` line per diagnostic.
func runLint(cmd *cobra.Command, opts *rootOptions, out io.Writer) error {
	name, source, err := readScript(cmd, opts)
	if err != nil {
		return err
	}
	events, err := tokenize(name, source)
	if err != nil {
		return err
	}

	diags := lint.Check(events)
	for _, d := range diags {
		if _, err := fmt.Fprintf(out, "%s:%s\n", name, d); err != nil {
			return err
		}
	}
	logger.Debug("lint finished", "file", name, "diagnostics", len(diags))
	return nil
}
