package main

import (
	"os"

	"github.com/spf13/cobra"
	"turtle.dev/script"
)

func (a *app) newEncodeCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "encode SCRIPT",
		Short: "Convert a script to its binary CBOR form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadScript(args[0])
			if err != nil {
				return err
			}
			enc, err := script.EncodeScript(s)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, enc, 0o644); err != nil {
				return err
			}
			a.log.Info("encoded", "script", args[0], "output", output, "bytes", len(enc))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	cmd.MarkFlagRequired("output")
	return cmd
}
