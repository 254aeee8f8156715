package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate SCRIPT...",
		Short: "Check scripts for errors without running them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				s, err := a.loadScript(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d commands\n", path, len(s))
			}
			return nil
		},
	}
}
