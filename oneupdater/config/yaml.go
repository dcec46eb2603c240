package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StringList accepts either a single string or a list of strings.
type StringList []string

func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || value.Value == "" {
			*s = nil
			return nil
		}
		*s = StringList{value.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", value.Line)
	}
}

type yamlFile struct {
	Verbose         bool      `yaml:"verbose"`
	PackageManagers yaml.Node `yaml:"package_managers"`
}

// LoadYAML reads a YAML configuration file. Manager order follows the file.
func LoadYAML(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	f, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// ParseYAML decodes a YAML configuration document.
func ParseYAML(data []byte) (*File, error) {
	var raw yamlFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	f := &File{Verbose: raw.Verbose}
	node := raw.PackageManagers
	if node.Kind == 0 || node.Tag == "!!null" {
		return f, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: package_managers must be a mapping", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var m ManagerConfig
		if err := node.Content[i+1].Decode(&m); err != nil {
			return nil, fmt.Errorf("package_managers.%s: %w", name, err)
		}
		m.Name = name
		f.Managers = append(f.Managers, m)
	}
	return f, nil
}

const defaultConfig = `verbose: false
package_managers:
  brew:
    enabled: true
    commands:
      update: ["brew", "update"]
      upgrade: ["brew", "upgrade"]
  apt:
    enabled: true
    commands:
      update: ["sudo", "apt-get", "update"]
      upgrade: ["sudo", "apt", "upgrade", "-y"]
`

// Init writes the default configuration to path. It reports false without
// touching the file when one already exists.
func Init(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
