package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/m-217/oneupdater/logger"
	"github.com/m-217/oneupdater/oneupdater/config"
	"github.com/m-217/oneupdater/oneupdater/environmentmanager"
)

type rootOptions struct {
	configPath string
	verbose    bool
	logFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "one-updater",
		Short: "Update and upgrade every package manager on this machine",
		Long: `one-updater runs the update and upgrade operations of the package managers
listed in its configuration file, one after another, and reports which
ones failed.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "configuration file (default ~/.config/one-updater/config.yaml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "show command output and debug logs")
	flags.StringVar(&opts.logFile, "log", "", "append logs to this file instead of stderr")

	cmd.AddCommand(
		newInitCmd(opts),
		newListManagersCmd(opts),
		newOperationCmd(opts, config.OpUpdate),
		newOperationCmd(opts, config.OpUpgrade),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) resolveConfigPath() (string, error) {
	env := environmentmanager.UnixEnvironmentManager{}
	if o.configPath != "" {
		return env.Expand(o.configPath)
	}
	home, err := env.Home()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return config.DefaultPath(home), nil
}

func (o *rootOptions) loadConfig() (*config.File, error) {
	path, err := o.resolveConfigPath()
	if err != nil {
		return nil, err
	}
	f, err := config.Load(path)
	if errors.Is(err, config.ErrNotFound) {
		return nil, fmt.Errorf("%w; run 'one-updater init' to create one", err)
	}
	return f, err
}

// newLogger logs to w, or appends to the --log file when one is given.
// The returned function closes the log file.
func (o *rootOptions) newLogger(w io.Writer, verbose bool) (logger.Logger, func(), error) {
	if o.logFile == "" {
		return logger.NewWithWriter(w, verbose), func() {}, nil
	}
	f, err := os.OpenFile(o.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logger.NewWithWriter(f, verbose), func() { _ = f.Close() }, nil
}
