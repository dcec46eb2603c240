package packagemanager

import "github.com/m-217/oneupdater/oneupdater/config"

type PipxPackageManager struct {
	baseManager
}

func NewPipxPackageManager(cfg config.ManagerConfig, deps Deps) *PipxPackageManager {
	argv := []string{"pipx", "upgrade-all"}
	return &PipxPackageManager{baseManager: newBaseManager("pipx", "pipx", cfg, deps, map[string][]string{
		OpUpdate:  argv,
		OpUpgrade: argv,
	})}
}
