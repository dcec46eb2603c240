package packagemanager

import "github.com/m-217/oneupdater/oneupdater/config"

// TldrPackageManager refreshes the local tldr page cache.
type TldrPackageManager struct {
	baseManager
}

func NewTldrPackageManager(cfg config.ManagerConfig, deps Deps) *TldrPackageManager {
	argv := []string{"tldr", "--update"}
	return &TldrPackageManager{baseManager: newBaseManager("tldr", "tldr", cfg, deps, map[string][]string{
		OpUpdate:  argv,
		OpUpgrade: argv,
	})}
}
