package packagemanager

import "github.com/m-217/oneupdater/oneupdater/config"

// DnfPackageManager has no built-in commands; both operations must be
// configured, typically as sudo dnf check-update and sudo dnf upgrade -y.
type DnfPackageManager struct {
	baseManager
}

func NewDnfPackageManager(cfg config.ManagerConfig, deps Deps) *DnfPackageManager {
	return &DnfPackageManager{baseManager: newBaseManager("dnf", "dnf", cfg, deps, nil)}
}
