package packagemanager

import "github.com/m-217/oneupdater/oneupdater/config"

// NpmPackageManager updates globally installed npm packages.
type NpmPackageManager struct {
	baseManager
}

func NewNpmPackageManager(cfg config.ManagerConfig, deps Deps) *NpmPackageManager {
	argv := []string{"npm", "update", "-g"}
	return &NpmPackageManager{baseManager: newBaseManager("npm", "npm", cfg, deps, map[string][]string{
		OpUpdate:  argv,
		OpUpgrade: argv,
	})}
}
