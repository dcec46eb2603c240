package packagemanager

import "github.com/m-217/oneupdater/oneupdater/config"

// SnapPackageManager refreshes snaps. snap refresh both fetches and
// installs, so both operations run it.
type SnapPackageManager struct {
	baseManager
}

func NewSnapPackageManager(cfg config.ManagerConfig, deps Deps) *SnapPackageManager {
	argv := []string{"sudo", "snap", "refresh"}
	return &SnapPackageManager{baseManager: newBaseManager("snap", "snap", cfg, deps, map[string][]string{
		OpUpdate:  argv,
		OpUpgrade: argv,
	})}
}
