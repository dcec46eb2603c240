package packagemanager

import "github.com/m-217/oneupdater/oneupdater/config"

// MicroPackageManager updates plugins of the micro editor.
type MicroPackageManager struct {
	baseManager
}

func NewMicroPackageManager(cfg config.ManagerConfig, deps Deps) *MicroPackageManager {
	argv := []string{"micro", "-plugin", "update"}
	return &MicroPackageManager{baseManager: newBaseManager("micro", "micro", cfg, deps, map[string][]string{
		OpUpdate:  argv,
		OpUpgrade: argv,
	})}
}
