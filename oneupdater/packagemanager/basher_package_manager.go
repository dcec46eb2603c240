package packagemanager

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/m-217/oneupdater/oneupdater/config"
)

// BasherPackageManager updates the basher checkout with git and upgrades
// each package basher reports as outdated. A configured upgrade command is
// used as the per-package prefix.
type BasherPackageManager struct {
	baseManager
}

func NewBasherPackageManager(cfg config.ManagerConfig, deps Deps) *BasherPackageManager {
	bpm := &BasherPackageManager{baseManager: newBaseManager("basher", "basher", cfg, deps, nil)}
	home, err := bpm.deps.EnvironmentManager.Home()
	if err != nil {
		bpm.log.Warn("Cannot determine home directory", "error", err)
		return bpm
	}
	bpm.defaults = map[string][]string{
		OpUpdate: {"git", "-C", filepath.Join(home, ".basher"), "pull"},
	}
	return bpm
}

func (bpm *BasherPackageManager) Configured(op string) bool {
	return op == OpUpgrade || bpm.baseManager.Configured(op)
}

func (bpm *BasherPackageManager) Upgrade(ctx context.Context) bool {
	if bpm.emptyOverride(OpUpgrade) {
		return true
	}
	if !bpm.checkAvailable(ctx, OpUpgrade, bpm.IsAvailable) {
		return false
	}

	result := bpm.deps.CommandManager.RunCapturing(ctx, []string{"basher", "outdated"})
	if !result.Succeeded() {
		bpm.log.Error("Failed to list outdated packages", "stderr", strings.TrimSpace(result.STDERR))
		return false
	}
	outdated := strings.Fields(result.STDOUT)
	if len(outdated) == 0 {
		bpm.log.Info("All packages are up to date")
		return true
	}

	prefix, ok := bpm.cfg.Command(OpUpgrade)
	if !ok {
		prefix = []string{"basher", "upgrade"}
	}
	return bpm.upgradeEach(ctx, prefix, outdated)
}
