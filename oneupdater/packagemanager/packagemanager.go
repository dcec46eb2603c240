// Package packagemanager implements the package manager backends that
// one-updater drives, and the registry that builds them by name.
package packagemanager

import (
	"context"

	"github.com/m-217/oneupdater/logger"
	cm "github.com/m-217/oneupdater/oneupdater/commandmanager"
	"github.com/m-217/oneupdater/oneupdater/config"
	em "github.com/m-217/oneupdater/oneupdater/environmentmanager"
	fm "github.com/m-217/oneupdater/oneupdater/filemanager"
)

const (
	OpUpdate  = config.OpUpdate
	OpUpgrade = config.OpUpgrade
)

// PackageManager is a single package manager backend. Update refreshes the
// manager's metadata and Upgrade applies available upgrades. Neither returns
// an error: failures are logged and reported as false.
type PackageManager interface {
	Name() string
	IsAvailable(ctx context.Context) bool
	Update(ctx context.Context) bool
	Upgrade(ctx context.Context) bool

	// Configured reports whether op has a command, either from the
	// configuration or built in. Operations that are not configured are
	// skipped by the caller.
	Configured(op string) bool
}

// Deps are the collaborators shared by every backend. Zero fields are
// replaced with the Unix implementations.
type Deps struct {
	CommandManager     cm.CommandManager
	FileManager        fm.FileManager
	EnvironmentManager em.EnvironmentManager
	Logger             logger.Logger
	Verbose            bool
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	if d.CommandManager == nil {
		d.CommandManager = cm.NewUnixCommandManager(d.Logger, d.Verbose, nil)
	}
	if d.FileManager == nil {
		d.FileManager = fm.UnixFileManager{}
	}
	if d.EnvironmentManager == nil {
		d.EnvironmentManager = em.UnixEnvironmentManager{}
	}
	return d
}

// baseManager carries what every backend shares: its configuration, the
// executable probed for availability and the built-in commands used when
// the configuration has none.
type baseManager struct {
	name     string
	tool     string
	cfg      config.ManagerConfig
	defaults map[string][]string
	deps     Deps
	log      logger.Logger
}

func newBaseManager(name, tool string, cfg config.ManagerConfig, deps Deps, defaults map[string][]string) baseManager {
	deps = deps.withDefaults()
	return baseManager{
		name:     name,
		tool:     tool,
		cfg:      cfg,
		defaults: defaults,
		deps:     deps,
		log:      deps.Logger.With("manager", name),
	}
}

func (b *baseManager) Name() string {
	return b.name
}

// IsAvailable reports whether the manager's executable is on PATH.
func (b *baseManager) IsAvailable(ctx context.Context) bool {
	_, err := b.deps.CommandManager.LookPath(b.tool)
	return err == nil
}

func (b *baseManager) Configured(op string) bool {
	_, ok := b.command(op)
	return ok
}

func (b *baseManager) Update(ctx context.Context) bool {
	return b.runOperation(ctx, OpUpdate, b.IsAvailable)
}

func (b *baseManager) Upgrade(ctx context.Context) bool {
	return b.runOperation(ctx, OpUpgrade, b.IsAvailable)
}

// command returns the argv for op: the configured one if present, else the
// built-in default.
func (b *baseManager) command(op string) ([]string, bool) {
	if argv, ok := b.cfg.Command(op); ok {
		return argv, true
	}
	if argv, ok := b.defaults[op]; ok {
		return append([]string(nil), argv...), true
	}
	return nil, false
}

// emptyOverride reports whether the configuration sets op to an empty
// command, which turns the operation into a successful no-op.
func (b *baseManager) emptyOverride(op string) bool {
	argv, ok := b.cfg.Command(op)
	return ok && len(argv) == 0
}

// checkAvailable logs and returns false when the manager is missing.
func (b *baseManager) checkAvailable(ctx context.Context, op string, available func(context.Context) bool) bool {
	if available(ctx) {
		return true
	}
	b.log.Warn(b.name+" is not installed, skipping", "operation", op)
	return false
}

// runOperation runs the command for op. An empty command succeeds without
// probing or starting anything.
func (b *baseManager) runOperation(ctx context.Context, op string, available func(context.Context) bool) bool {
	argv, ok := b.command(op)
	if !ok {
		b.log.Info("No command configured, skipping", "operation", op)
		return true
	}
	if len(argv) == 0 {
		b.log.Debug("Empty command, nothing to do", "operation", op)
		return true
	}
	if !b.checkAvailable(ctx, op, available) {
		return false
	}
	return b.deps.CommandManager.Run(ctx, argv)
}

// upgradeEach runs prefix+pkg for every package and reports whether all of
// them succeeded. A failure does not stop the remaining packages.
func (b *baseManager) upgradeEach(ctx context.Context, prefix []string, packages []string) bool {
	ok := true
	for _, pkg := range packages {
		argv := append(append([]string(nil), prefix...), pkg)
		b.log.Info("Upgrading package", "package", pkg)
		if !b.deps.CommandManager.Run(ctx, argv) {
			b.log.Error("Failed to upgrade package", "package", pkg)
			ok = false
		}
	}
	return ok
}
