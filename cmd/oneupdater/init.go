package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m-217/oneupdater/oneupdater/config"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := opts.resolveConfigPath()
			if err != nil {
				return err
			}
			created, err := config.Init(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !created {
				_, _ = fmt.Fprintf(out, "%s Configuration already exists at %s\n", warningMark(), path)
				return nil
			}
			_, _ = fmt.Fprintf(out, "%s Created configuration at %s\n", successMark(), path)
			return nil
		},
	}
}
