package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pumlrender/internal/plantuml"
	"pumlrender/internal/render"
	"pumlrender/internal/transport"
)

func newEncodeCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <diagram.puml>",
		Short: "Print the encoded payload and render URL without contacting the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			text, err := render.ReadSource(args[0])
			if err != nil {
				return err
			}

			payload := plantuml.Encode(text)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, payload)
			fmt.Fprintln(out, transport.RenderURL(cfg.Server.URL, cfg.Server.Format, payload))
			return nil
		},
	}
}
