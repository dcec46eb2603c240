package packagemanager

import "github.com/m-217/oneupdater/oneupdater/config"

// PacmanPackageManager runs only configured commands.
type PacmanPackageManager struct {
	baseManager
}

func NewPacmanPackageManager(cfg config.ManagerConfig, deps Deps) *PacmanPackageManager {
	return &PacmanPackageManager{baseManager: newBaseManager("pacman", "pacman", cfg, deps, nil)}
}
