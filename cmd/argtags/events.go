package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/argtags/pkgs/eventcodec"
)

func newEventsCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		digest bool
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Print the event stream of a script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := eventcodec.ParseFormat(format)
			if err != nil {
				return err
			}

			name, source, err := readScript(cmd, opts)
			if err != nil {
				return err
			}
			events, err := tokenize(name, source)
			if err != nil {
				return err
			}

			if digest {
				sum, err := eventcodec.Digest(events)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%x\n", sum)
				return err
			}
			return eventcodec.Encode(cmd.OutOrStdout(), events, f)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: "+strings.Join(eventcodec.FormatNames(), ", "))
	cmd.Flags().BoolVar(&digest, "digest", false, "Print the BLAKE2b-256 digest of the events instead")
	return cmd
}
