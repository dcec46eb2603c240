package packagemanager

import "github.com/m-217/oneupdater/oneupdater/config"

// VagrantPackageManager updates installed Vagrant plugins.
type VagrantPackageManager struct {
	baseManager
}

func NewVagrantPackageManager(cfg config.ManagerConfig, deps Deps) *VagrantPackageManager {
	argv := []string{"vagrant", "plugin", "update"}
	return &VagrantPackageManager{baseManager: newBaseManager("vagrant", "vagrant", cfg, deps, map[string][]string{
		OpUpdate:  argv,
		OpUpgrade: argv,
	})}
}
