// Package config loads the user's package manager configuration.
//
// The file lists package managers in the order they should run. Each entry
// may override the commands used for the "update" and "upgrade" operations
// and, for pip, name the Python environments to upgrade:
//
//	verbose: false
//	package_managers:
//	  brew:
//	    enabled: true
//	    commands:
//	      update: ["brew", "update"]
//	      upgrade: ["brew", "upgrade"]
//	  pip:
//	    virtualenv: ["~/.venvs/tools", "~/.venvs/notebooks"]
//
// Files ending in .ini use one section per manager instead; see LoadINI.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
)

const (
	OpUpdate  = "update"
	OpUpgrade = "upgrade"
)

var (
	// ErrNotFound is returned when the configuration file does not exist.
	ErrNotFound = errors.New("config file not found")

	// ErrConflictingEnvironments is reported for a pip entry that names
	// both virtualenvs and pyenv versions.
	ErrConflictingEnvironments = errors.New("virtualenv and pyenv_version are mutually exclusive")

	// ErrInvalidSelection is returned by Select for names that are not in
	// the file.
	ErrInvalidSelection = errors.New("invalid package manager(s)")
)

// File is a loaded configuration.
type File struct {
	Path     string
	Verbose  bool
	Managers []ManagerConfig
}

// ManagerConfig is the configuration of a single package manager.
type ManagerConfig struct {
	Name         string              `yaml:"-"`
	Enabled      *bool               `yaml:"enabled"`
	Commands     map[string][]string `yaml:"commands"`
	Virtualenv   StringList          `yaml:"virtualenv"`
	PyenvVersion StringList          `yaml:"pyenv_version"`
}

// IsEnabled reports whether the manager should run. Managers are enabled
// unless the file says otherwise.
func (m ManagerConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// Command returns the configured argv for op. The boolean is false when the
// file has no entry for op; an entry may be present and empty.
func (m ManagerConfig) Command(op string) ([]string, bool) {
	argv, ok := m.Commands[op]
	if !ok {
		return nil, false
	}
	return append([]string(nil), argv...), true
}

// Validate reports configuration errors for this manager.
func (m ManagerConfig) Validate() error {
	var result *multierror.Error
	if len(m.Virtualenv) > 0 && len(m.PyenvVersion) > 0 {
		result = multierror.Append(result, fmt.Errorf("%s: %w", m.Name, ErrConflictingEnvironments))
	}
	for op, argv := range m.Commands {
		if len(argv) > 0 && strings.TrimSpace(argv[0]) == "" {
			result = multierror.Append(result, fmt.Errorf("%s: %s command has an empty executable", m.Name, op))
		}
	}
	return result.ErrorOrNil()
}

// Validate checks every manager and returns all problems at once.
func (f *File) Validate() error {
	var result *multierror.Error
	for _, m := range f.Managers {
		if err := m.Validate(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Manager returns the entry named name.
func (f *File) Manager(name string) (ManagerConfig, bool) {
	for _, m := range f.Managers {
		if m.Name == name {
			return m, true
		}
	}
	return ManagerConfig{}, false
}

// Select returns the managers named in names, in file order. An empty
// selection returns every manager.
func (f *File) Select(names []string) ([]ManagerConfig, error) {
	if len(names) == 0 {
		return f.Managers, nil
	}

	want := make(map[string]bool, len(names))
	var invalid []string
	for _, name := range names {
		if _, ok := f.Manager(name); !ok {
			invalid = append(invalid, name)
			continue
		}
		want[name] = true
	}
	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSelection, strings.Join(invalid, ", "))
	}

	var selected []ManagerConfig
	for _, m := range f.Managers {
		if want[m.Name] {
			selected = append(selected, m)
		}
	}
	return selected, nil
}

// Load reads the configuration at path, choosing the format by extension.
func Load(path string) (*File, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini":
		return LoadINI(path)
	default:
		return LoadYAML(path)
	}
}

// DefaultPath returns the configuration path under home.
func DefaultPath(home string) string {
	return filepath.Join(home, ".config", "one-updater", "config.yaml")
}
