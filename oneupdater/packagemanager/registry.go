package packagemanager

import (
	"errors"
	"fmt"
	"sort"

	"github.com/m-217/oneupdater/oneupdater/config"
)

// ErrUnknownManager is returned by New for names with no backend.
var ErrUnknownManager = errors.New("unknown package manager")

// Constructor builds a backend from its configuration.
type Constructor func(cfg config.ManagerConfig, deps Deps) PackageManager

func constructor[T PackageManager](newFn func(config.ManagerConfig, Deps) T) Constructor {
	return func(cfg config.ManagerConfig, deps Deps) PackageManager {
		return newFn(cfg, deps)
	}
}

var registry = map[string]Constructor{
	"apt":     constructor(NewAptPackageManager),
	"basher":  constructor(NewBasherPackageManager),
	"brew":    constructor(NewBrewPackageManager),
	"cargo":   constructor(NewCargoPackageManager),
	"dnf":     constructor(NewDnfPackageManager),
	"flatpak": constructor(NewFlatpakPackageManager),
	"gem":     constructor(NewGemPackageManager),
	"gh-cli":  constructor(NewGhCliPackageManager),
	"go":      constructor(NewGoPackageManager),
	"krew":    constructor(NewKrewPackageManager),
	"micro":   constructor(NewMicroPackageManager),
	"npm":     constructor(NewNpmPackageManager),
	"pacman":  constructor(NewPacmanPackageManager),
	"pip":     constructor(NewPipPackageManager),
	"pipx":    constructor(NewPipxPackageManager),
	"pkgx":    constructor(NewPkgxPackageManager),
	"snap":    constructor(NewSnapPackageManager),
	"tldr":    constructor(NewTldrPackageManager),
	"uv":      constructor(NewUvPackageManager),
	"vagrant": constructor(NewVagrantPackageManager),
}

// New builds the backend registered under name.
func New(name string, cfg config.ManagerConfig, deps Deps) (PackageManager, error) {
	newFn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownManager, name)
	}
	cfg.Name = name
	return newFn(cfg, deps), nil
}

// Names returns the registered manager names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
