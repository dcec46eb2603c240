package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func names(ms []ManagerConfig) []string {
	var out []string
	for _, m := range ms {
		out = append(out, m.Name)
	}
	return out
}

func TestLoadYAMLKeepsOrderAndDefaults(t *testing.T) {
	path := writeTemp(t, "config.yaml", `
verbose: true
logging:
  level: INFO
package_managers:
  npm:
    commands:
      update: ["npm", "update", "-g"]
  apt:
    enabled: false
  pip:
    virtualenv: ~/.venvs/tools
    commands:
      update: []
  brew:
`)

	f, err := Load(path)
	require.NoError(t, err)

	assert.True(t, f.Verbose)
	assert.Equal(t, path, f.Path)
	assert.Equal(t, []string{"npm", "apt", "pip", "brew"}, names(f.Managers))

	npm, _ := f.Manager("npm")
	assert.True(t, npm.IsEnabled())
	argv, ok := npm.Command(OpUpdate)
	assert.True(t, ok)
	assert.Equal(t, []string{"npm", "update", "-g"}, argv)
	_, ok = npm.Command(OpUpgrade)
	assert.False(t, ok)

	apt, _ := f.Manager("apt")
	assert.False(t, apt.IsEnabled())

	pip, _ := f.Manager("pip")
	assert.Equal(t, StringList{"~/.venvs/tools"}, pip.Virtualenv)
	argv, ok = pip.Command(OpUpdate)
	assert.True(t, ok)
	assert.Empty(t, argv)

	brew, _ := f.Manager("brew")
	assert.True(t, brew.IsEnabled())
}

func TestStringListAcceptsList(t *testing.T) {
	f, err := ParseYAML([]byte(`
package_managers:
  pip:
    pyenv_version: ["3.11.9", "3.12.4"]
`))
	require.NoError(t, err)
	assert.Equal(t, StringList{"3.11.9", "3.12.4"}, f.Managers[0].PyenvVersion)
}

func TestStringListRejectsMapping(t *testing.T) {
	_, err := ParseYAML([]byte(`
package_managers:
  pip:
    virtualenv:
      a: b
`))
	assert.Error(t, err)
}

func TestParseYAMLWithoutManagers(t *testing.T) {
	f, err := ParseYAML([]byte("verbose: false\n"))
	require.NoError(t, err)
	assert.Empty(t, f.Managers)
}

func TestParseYAMLRejectsListOfManagers(t *testing.T) {
	_, err := ParseYAML([]byte("package_managers:\n  - brew\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = Load(filepath.Join(t.TempDir(), "missing.ini"))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeTemp(t, "config.yaml", "package_managers: [unterminated\n")
	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML")
}

func TestLoadINI(t *testing.T) {
	path := writeTemp(t, "config.ini", `verbose = true

[apt]
update = sudo apt-get update
upgrade = sudo apt-get upgrade -y

[pip]
enabled = false
virtualenv = ~/.venvs/a, ~/.venvs/b
upgrade = "pip install" --upgrade

[flatpak]
update =
`)

	f, err := Load(path)
	require.NoError(t, err)

	assert.True(t, f.Verbose)
	assert.Equal(t, []string{"apt", "pip", "flatpak"}, names(f.Managers))

	apt := f.Managers[0]
	assert.True(t, apt.IsEnabled())
	argv, _ := apt.Command(OpUpgrade)
	assert.Equal(t, []string{"sudo", "apt-get", "upgrade", "-y"}, argv)

	pip := f.Managers[1]
	assert.False(t, pip.IsEnabled())
	assert.Equal(t, StringList{"~/.venvs/a", "~/.venvs/b"}, pip.Virtualenv)
	argv, _ = pip.Command(OpUpgrade)
	assert.Equal(t, []string{"pip install", "--upgrade"}, argv)

	argv, ok := f.Managers[2].Command(OpUpdate)
	assert.True(t, ok)
	assert.Empty(t, argv)
}

func TestValidate(t *testing.T) {
	f := &File{Managers: []ManagerConfig{
		{Name: "brew"},
		{Name: "pip", Virtualenv: StringList{"/v"}, PyenvVersion: StringList{"3.12"}},
		{Name: "npm", Commands: map[string][]string{OpUpdate: {" ", "x"}}},
	}}

	err := f.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflictingEnvironments))
	assert.Contains(t, err.Error(), "npm: update command has an empty executable")

	assert.NoError(t, f.Managers[0].Validate())
}

func TestSelect(t *testing.T) {
	f := &File{Managers: []ManagerConfig{{Name: "brew"}, {Name: "pip"}, {Name: "npm"}}}

	all, err := f.Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	picked, err := f.Select([]string{"npm", "brew"})
	require.NoError(t, err)
	assert.Equal(t, []string{"brew", "npm"}, names(picked))

	_, err = f.Select([]string{"brew", "nonexistent"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSelection))
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one-updater", "config.yaml")

	created, err := Init(path)
	require.NoError(t, err)
	assert.True(t, created)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"brew", "apt"}, names(f.Managers))

	require.NoError(t, os.WriteFile(path, []byte("verbose: true\n"), 0o644))
	created, err = Init(path)
	require.NoError(t, err)
	assert.False(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "verbose: true\n", string(data))
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "/home/u/.config/one-updater/config.yaml", DefaultPath("/home/u"))
}
