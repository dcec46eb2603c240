package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m-217/oneupdater/oneupdater/commandmanager"
	"github.com/m-217/oneupdater/oneupdater/config"
	"github.com/m-217/oneupdater/oneupdater/managergroup"
	"github.com/m-217/oneupdater/oneupdater/packagemanager"
	"github.com/m-217/oneupdater/oneupdater/progress"
)

type operationOptions struct {
	managers []string
	output   string
}

func newOperationCmd(opts *rootOptions, op string) *cobra.Command {
	o := &operationOptions{}
	short := "Refresh package metadata of every enabled package manager"
	if op == config.OpUpgrade {
		short = "Upgrade installed packages of every enabled package manager"
	}
	cmd := &cobra.Command{
		Use:   op,
		Short: short,
		Args:  cobra.NoArgs,
		Example: fmt.Sprintf(`  one-updater %[1]s
  one-updater %[1]s -m brew -m npm
  one-updater %[1]s --managers pip,go -o json`, op),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOperation(cmd, opts, o, op)
		},
	}
	cmd.Flags().StringSliceVarP(&o.managers, "managers", "m", nil, "only run these package managers")
	cmd.Flags().StringVarP(&o.output, "output", "o", outputText, "summary format: text, json or yaml")
	return cmd
}

func runOperation(cmd *cobra.Command, opts *rootOptions, o *operationOptions, op string) error {
	if err := validOutput(o.output); err != nil {
		return err
	}
	f, err := opts.loadConfig()
	if err != nil {
		return err
	}
	selected, err := f.Select(o.managers)
	if err != nil {
		return err
	}
	verbose := opts.verbose || f.Verbose

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var handle progress.Handle = progress.Nop{}
	var spinner *progress.Spinner
	if isTerminal(stderr) {
		spinner = progress.NewSpinner(stderr, "Starting...")
		spinner.Start()
		defer spinner.Stop()
		handle = spinner
	}

	log, closeLog, err := opts.newLogger(progress.Writer(handle, stderr), verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := f.Validate(); err != nil {
		log.Warn("Configuration problems found", "error", err)
	}

	out := progress.Writer(handle, stdout)
	if !anyEnabled(selected) {
		_, _ = fmt.Fprintf(out, "%s No package managers enabled\n", warningMark())
		return nil
	}

	deps := packagemanager.Deps{
		CommandManager: commandmanager.NewUnixCommandManager(log, verbose, handle),
		Logger:         log,
		Verbose:        verbose,
	}
	group := managergroup.NewManagerGroup(func(name string, cfg config.ManagerConfig) (packagemanager.PackageManager, error) {
		return packagemanager.New(name, cfg, deps)
	}, selected...)
	group.Logger = log
	group.OnStart = func(name, op string) {
		if spinner != nil {
			spinner.SetMessage(fmt.Sprintf("%s %s...", gerund(op), name))
		}
	}
	if o.output == outputText {
		group.OnResult = func(r managergroup.Result) { printResult(out, r, verbose) }
	}

	results, runErr := group.Run(cmd.Context(), op)
	if spinner != nil {
		spinner.Stop()
	}
	if err := printSummary(stdout, results, o.output); err != nil {
		return err
	}
	if runErr != nil || len(managergroup.Failures(results)) > 0 {
		return &SilentExitError{Code: 1}
	}
	return nil
}

func anyEnabled(configs []config.ManagerConfig) bool {
	for _, cfg := range configs {
		if cfg.IsEnabled() {
			return true
		}
	}
	return false
}
