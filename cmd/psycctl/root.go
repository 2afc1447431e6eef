package main

import (
	"encoding/hex"
	"io"

	"github.com/danmuck/psyc/internal/observability"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	Verbose bool
	Hex     bool
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "psycctl",
		Short:         "Render PSYC packets, lists and packet ids",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			observability.InitLogger("psycctl")
			if opts.Verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&opts.Hex, "hex", false, "write rendered bytes hex-encoded")

	cmd.AddCommand(newRenderCommand(opts))
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newPacketIDCommand(opts))
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newConfigCommand())

	return cmd
}

func writeOutput(w io.Writer, opts *rootOptions, out []byte) error {
	if opts.Hex {
		_, err := io.WriteString(w, hex.EncodeToString(out)+"\n")
		return err
	}
	_, err := w.Write(out)
	return err
}
