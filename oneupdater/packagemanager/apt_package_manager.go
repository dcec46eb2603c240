package packagemanager

import "github.com/m-217/oneupdater/oneupdater/config"

// AptPackageManager drives apt. Both operations need root and go through
// sudo, so they run attached to the terminal.
type AptPackageManager struct {
	baseManager
}

func NewAptPackageManager(cfg config.ManagerConfig, deps Deps) *AptPackageManager {
	return &AptPackageManager{baseManager: newBaseManager("apt", "apt", cfg, deps, map[string][]string{
		OpUpdate:  {"sudo", "apt", "update"},
		OpUpgrade: {"sudo", "apt", "upgrade", "-y"},
	})}
}
