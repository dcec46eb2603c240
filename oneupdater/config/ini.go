package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/shlex"
	"gopkg.in/ini.v1"
)

// LoadINI reads an INI configuration file. The unnamed section holds
// top-level settings; every other section is a package manager, in file
// order:
//
//	verbose = true
//
//	[apt]
//	update  = sudo apt-get update
//	upgrade = sudo apt-get upgrade -y
//
//	[pip]
//	virtualenv = ~/.venvs/tools, ~/.venvs/notebooks
//
// Commands are split into arguments with shell quoting rules but are never
// run through a shell.
func LoadINI(path string) (*File, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("invalid INI in %s: %w", path, err)
	}

	f := &File{
		Path:    path,
		Verbose: cfg.Section(ini.DefaultSection).Key("verbose").MustBool(false),
	}

	for _, section := range cfg.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		m := ManagerConfig{Name: section.Name()}

		if section.HasKey("enabled") {
			enabled, err := section.Key("enabled").Bool()
			if err != nil {
				return nil, fmt.Errorf("[%s] enabled: %w", m.Name, err)
			}
			m.Enabled = &enabled
		}

		for _, op := range []string{OpUpdate, OpUpgrade} {
			if !section.HasKey(op) {
				continue
			}
			argv, err := shlex.Split(section.Key(op).String())
			if err != nil {
				return nil, fmt.Errorf("[%s] %s: %w", m.Name, op, err)
			}
			if m.Commands == nil {
				m.Commands = make(map[string][]string)
			}
			m.Commands[op] = append([]string{}, argv...)
		}

		if section.HasKey("virtualenv") {
			m.Virtualenv = section.Key("virtualenv").Strings(",")
		}
		if section.HasKey("pyenv_version") {
			m.PyenvVersion = section.Key("pyenv_version").Strings(",")
		}

		f.Managers = append(f.Managers, m)
	}
	return f, nil
}
