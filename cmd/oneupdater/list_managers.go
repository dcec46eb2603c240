package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/m-217/oneupdater/logger"
	"github.com/m-217/oneupdater/oneupdater/config"
	"github.com/m-217/oneupdater/oneupdater/packagemanager"
)

func newListManagersCmd(opts *rootOptions) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list-managers",
		Short: "List the configured package managers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			style := table.StyleLight
			style.Options.DrawBorder = false
			t.SetStyle(style)

			if all {
				t.AppendHeader(table.Row{"Manager"})
				for _, name := range packagemanager.Names() {
					t.AppendRow(table.Row{name})
				}
				t.Render()
				return nil
			}

			f, err := opts.loadConfig()
			if err != nil {
				return err
			}
			t.AppendHeader(table.Row{"Manager", "Enabled", "Update", "Upgrade"})
			for _, cfg := range f.Managers {
				t.AppendRow(managerRow(cfg))
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "list every supported package manager instead")
	return cmd
}

func managerRow(cfg config.ManagerConfig) table.Row {
	enabled := "yes"
	if !cfg.IsEnabled() {
		enabled = "no"
	}
	manager, err := packagemanager.New(cfg.Name, cfg, packagemanager.Deps{Logger: logger.Nop()})
	if err != nil {
		return table.Row{cfg.Name, enabled, "unknown manager", "unknown manager"}
	}
	return table.Row{cfg.Name, enabled, commandSource(cfg, manager, config.OpUpdate), commandSource(cfg, manager, config.OpUpgrade)}
}

func commandSource(cfg config.ManagerConfig, manager packagemanager.PackageManager, op string) string {
	if _, ok := cfg.Command(op); ok {
		return "configured"
	}
	if manager.Configured(op) {
		return "built-in"
	}
	return "-"
}
