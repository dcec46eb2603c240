package packagemanager

import "github.com/m-217/oneupdater/oneupdater/config"

// UvPackageManager updates uv itself and upgrades the tools it installed.
type UvPackageManager struct {
	baseManager
}

func NewUvPackageManager(cfg config.ManagerConfig, deps Deps) *UvPackageManager {
	return &UvPackageManager{baseManager: newBaseManager("uv", "uv", cfg, deps, map[string][]string{
		OpUpdate:  {"uv", "self", "update"},
		OpUpgrade: {"uv", "tool", "upgrade", "--all"},
	})}
}
