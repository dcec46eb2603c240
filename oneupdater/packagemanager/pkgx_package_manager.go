package packagemanager

import "github.com/m-217/oneupdater/oneupdater/config"

// PkgxPackageManager refreshes the pkgx cache through mash.
type PkgxPackageManager struct {
	baseManager
}

func NewPkgxPackageManager(cfg config.ManagerConfig, deps Deps) *PkgxPackageManager {
	argv := []string{"pkgx", "mash", "pkgx/cache", "upgrade"}
	return &PkgxPackageManager{baseManager: newBaseManager("pkgx", "pkgx", cfg, deps, map[string][]string{
		OpUpdate:  argv,
		OpUpgrade: argv,
	})}
}
