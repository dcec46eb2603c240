package packagemanager

import "github.com/m-217/oneupdater/oneupdater/config"

// KrewPackageManager manages kubectl plugins. krew installs itself as the
// kubectl-krew plugin binary, which is what gets probed.
type KrewPackageManager struct {
	baseManager
}

func NewKrewPackageManager(cfg config.ManagerConfig, deps Deps) *KrewPackageManager {
	return &KrewPackageManager{baseManager: newBaseManager("krew", "kubectl-krew", cfg, deps, map[string][]string{
		OpUpdate:  {"kubectl", "krew", "update"},
		OpUpgrade: {"kubectl", "krew", "upgrade"},
	})}
}
