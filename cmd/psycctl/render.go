package main

import (
	"fmt"

	"github.com/danmuck/psyc/internal/protocol"
	"github.com/danmuck/psyc/internal/protocol/schema"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRenderCommand(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a packet described in a TOML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := schema.LoadPacket(file)
			if err != nil {
				return err
			}
			p, err := spec.Packet()
			if err != nil {
				return err
			}
			out, err := protocol.MarshalPacket(p)
			if err != nil {
				return fmt.Errorf("render %s: %w", file, err)
			}
			log.Debug().Str("file", file).Int("length", p.Length).Msg("packet rendered")
			return writeOutput(cmd.OutOrStdout(), opts, out)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "packet description (TOML)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newListCommand(opts *rootOptions) *cobra.Command {
	var spec schema.ListSpec
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Render a list, or a table when --width is set",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := spec.Table()
			if err != nil {
				return err
			}
			var out []byte
			if table.Width > 0 {
				out, err = protocol.MarshalTable(table)
			} else {
				out, err = protocol.MarshalList(table.List)
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), opts, out)
		},
	}
	cmd.Flags().StringArrayVar(&spec.Elems, "elem", nil, "list element (repeatable)")
	cmd.Flags().IntVar(&spec.Width, "width", 0, "declared table width, 0 for a plain list")
	cmd.Flags().StringVar(&spec.Length, "length", schema.LengthCheck, "element framing: check|need|none")
	return cmd
}

func newPacketIDCommand(opts *rootOptions) *cobra.Command {
	var spec schema.PacketIDSpec
	cmd := &cobra.Command{
		Use:   "packet-id",
		Short: "Render a packet id from its components",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := protocol.MarshalPacketID(spec.Components())
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), opts, out)
		},
	}
	cmd.Flags().StringVar(&spec.Context, "context", "", "context uniform")
	cmd.Flags().StringVar(&spec.Source, "source", "", "source uniform")
	cmd.Flags().StringVar(&spec.Target, "target", "", "target uniform")
	cmd.Flags().StringVar(&spec.Counter, "counter", "", "packet counter")
	cmd.Flags().StringVar(&spec.Fragment, "fragment", "", "fragment number")
	return cmd
}
