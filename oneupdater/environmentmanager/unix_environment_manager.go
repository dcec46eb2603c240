package environmentmanager

import (
	"os"

	"github.com/mitchellh/go-homedir"
)

// UnixEnvironmentManager reads the environment of the current process.
type UnixEnvironmentManager struct{}

func (UnixEnvironmentManager) Home() (string, error) {
	return homedir.Dir()
}

func (UnixEnvironmentManager) Expand(path string) (string, error) {
	expanded, err := homedir.Expand(os.ExpandEnv(path))
	if err != nil {
		return "", err
	}
	return expanded, nil
}

// StaticEnvironmentManager serves a fixed environment. It is used where the
// process environment must not leak in, such as tests.
type StaticEnvironmentManager struct {
	Vars    map[string]string
	HomeDir string
}

func (s StaticEnvironmentManager) Home() (string, error) {
	return s.HomeDir, nil
}

func (s StaticEnvironmentManager) Expand(path string) (string, error) {
	expanded := os.Expand(path, func(key string) string { return s.Vars[key] })
	if expanded == "~" {
		return s.HomeDir, nil
	}
	if len(expanded) > 1 && expanded[0] == '~' && expanded[1] == '/' {
		return s.HomeDir + expanded[1:], nil
	}
	return expanded, nil
}
