package packagemanager

import "github.com/m-217/oneupdater/oneupdater/config"

// GemPackageManager updates RubyGems itself, then the installed gems.
type GemPackageManager struct {
	baseManager
}

func NewGemPackageManager(cfg config.ManagerConfig, deps Deps) *GemPackageManager {
	return &GemPackageManager{baseManager: newBaseManager("gem", "gem", cfg, deps, map[string][]string{
		OpUpdate:  {"gem", "update", "--system"},
		OpUpgrade: {"gem", "update"},
	})}
}
