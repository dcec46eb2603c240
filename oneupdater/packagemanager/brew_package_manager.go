package packagemanager

import "github.com/m-217/oneupdater/oneupdater/config"

type BrewPackageManager struct {
	baseManager
}

func NewBrewPackageManager(cfg config.ManagerConfig, deps Deps) *BrewPackageManager {
	return &BrewPackageManager{baseManager: newBaseManager("brew", "brew", cfg, deps, map[string][]string{
		OpUpdate:  {"brew", "update"},
		OpUpgrade: {"brew", "upgrade"},
	})}
}
