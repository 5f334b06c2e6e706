package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/argtags/pkgs/errors"
	"github.com/aledsdavies/argtags/pkgs/eventcodec"
)

func newSchemaCmd() *cobra.Command {
	var validate string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of `events --format json`, or check a document against it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if validate == "" {
				_, err := cmd.OutOrStdout().Write(eventcodec.Schema())
				return err
			}

			var (
				data []byte
				err  error
			)
			if validate == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(validate)
			}
			if err != nil {
				return errors.NewInputError("error reading "+validate, err)
			}
			return eventcodec.Validate(data)
		},
	}

	cmd.Flags().StringVar(&validate, "validate", "", "JSON document to validate, or - for stdin")
	return cmd
}
