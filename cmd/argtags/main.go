// Command argtags inspects the tagged comments of a shell script.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/argtags/internal/logger"
	"github.com/aledsdavies/argtags/pkgs/errors"
)

// Exit codes
const (
	ExitSuccess          = 0
	ExitInvalidArguments = 1
	ExitIOError          = 2
	ExitParseError       = 3
	ExitEncodeError      = 4
)

// defaultFile is read when no --file is given and nothing is piped in.
const defaultFile = "Argcfile.sh"

type rootOptions struct {
	file     string
	logLevel string
	logFile  string
	noColor  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	opts := &rootOptions{}
	err := newRootCmd(opts).ExecuteContext(ctx)
	stop()
	logger.Close()

	if err != nil {
		FormatError(os.Stderr, err, ShouldUseColor(opts.noColor))
		os.Exit(exitCode(err))
	}
	os.Exit(ExitSuccess)
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "argtags",
		Short:         "Inspect the @directives of a shell script",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Configure(opts.logLevel, opts.logFile)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.file, "file", "f", defaultFile, "Script to read, or - for stdin")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from "+logger.EnvLevel+")")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newEventsCmd(opts), newLintCmd(opts), newSchemaCmd())
	return rootCmd
}

func exitCode(err error) int {
	switch {
	case errors.IsErrorType(err, errors.ErrStructural), errors.IsErrorType(err, errors.ErrDirectiveBody):
		return ExitParseError
	case errors.IsErrorType(err, errors.ErrInputRead), errors.IsErrorType(err, errors.ErrFileNotFound):
		return ExitIOError
	case errors.IsErrorType(err, errors.ErrEncode), errors.IsErrorType(err, errors.ErrSchema):
		return ExitEncodeError
	default:
		return ExitInvalidArguments
	}
}
