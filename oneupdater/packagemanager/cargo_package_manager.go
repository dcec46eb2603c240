package packagemanager

import (
	"context"
	"strings"

	"github.com/m-217/oneupdater/oneupdater/config"
)

// CargoPackageManager updates the Rust toolchain with rustup. Upgrade runs
// the update step and, when an upgrade command is configured, reinstalls
// every crate from cargo install --list with it as the prefix.
type CargoPackageManager struct {
	baseManager
}

func NewCargoPackageManager(cfg config.ManagerConfig, deps Deps) *CargoPackageManager {
	return &CargoPackageManager{baseManager: newBaseManager("cargo", "cargo", cfg, deps, map[string][]string{
		OpUpdate: {"rustup", "update"},
	})}
}

func (cpm *CargoPackageManager) Configured(op string) bool {
	return op == OpUpgrade || cpm.baseManager.Configured(op)
}

func (cpm *CargoPackageManager) Upgrade(ctx context.Context) bool {
	if cpm.emptyOverride(OpUpgrade) {
		return true
	}
	if !cpm.checkAvailable(ctx, OpUpgrade, cpm.IsAvailable) {
		return false
	}

	ok := cpm.Update(ctx)

	prefix, configured := cpm.cfg.Command(OpUpgrade)
	if !configured {
		return ok
	}

	result := cpm.deps.CommandManager.RunCapturing(ctx, []string{"cargo", "install", "--list"})
	if !result.Succeeded() {
		cpm.log.Error("Failed to list installed crates", "stderr", strings.TrimSpace(result.STDERR))
		return false
	}
	crates := parseCargoInstallList(result.STDOUT)
	if len(crates) == 0 {
		cpm.log.Info("No installed crates found")
		return ok
	}
	return cpm.upgradeEach(ctx, prefix, crates) && ok
}

// parseCargoInstallList returns the crate names from cargo install --list.
// Crate lines look like "ripgrep v14.1.0:"; the binaries they provide are
// listed below them, indented.
func parseCargoInstallList(out string) []string {
	var crates []string
	for _, line := range strings.Split(out, "\n") {
		if line == "" || line[0] == ' ' || line[0] == '\t' || !strings.Contains(line, ":") {
			continue
		}
		crates = append(crates, strings.Fields(line)[0])
	}
	return crates
}
