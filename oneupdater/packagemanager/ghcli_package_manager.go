package packagemanager

import "github.com/m-217/oneupdater/oneupdater/config"

// GhCliPackageManager upgrades GitHub CLI extensions.
type GhCliPackageManager struct {
	baseManager
}

func NewGhCliPackageManager(cfg config.ManagerConfig, deps Deps) *GhCliPackageManager {
	argv := []string{"gh", "extension", "upgrade", "--all"}
	return &GhCliPackageManager{baseManager: newBaseManager("gh-cli", "gh", cfg, deps, map[string][]string{
		OpUpdate:  argv,
		OpUpgrade: argv,
	})}
}
