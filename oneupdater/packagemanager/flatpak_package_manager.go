package packagemanager

import "github.com/m-217/oneupdater/oneupdater/config"

// FlatpakPackageManager runs only configured commands.
type FlatpakPackageManager struct {
	baseManager
}

func NewFlatpakPackageManager(cfg config.ManagerConfig, deps Deps) *FlatpakPackageManager {
	return &FlatpakPackageManager{baseManager: newBaseManager("flatpak", "flatpak", cfg, deps, nil)}
}
