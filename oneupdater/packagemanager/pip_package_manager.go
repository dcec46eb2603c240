package packagemanager

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	multierror "github.com/hashicorp/go-multierror"

	"github.com/m-217/oneupdater/oneupdater/config"
)

// OutdatedPackage is one entry of pip list --outdated --format=json.
type OutdatedPackage struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	LatestVersion string `json:"latest_version"`
}

// Bump classifies the upgrade as "major", "minor" or "patch". Versions
// that are not semantic versions yield "unknown".
func (o OutdatedPackage) Bump() string {
	current, err := semver.NewVersion(o.Version)
	if err != nil {
		return "unknown"
	}
	latest, err := semver.NewVersion(o.LatestVersion)
	if err != nil {
		return "unknown"
	}
	switch {
	case latest.Major() != current.Major():
		return "major"
	case latest.Minor() != current.Minor():
		return "minor"
	default:
		return "patch"
	}
}

// PythonEnvironment is one place pip packages are installed.
type PythonEnvironment struct {
	// Name identifies the environment in logs: the virtualenv path, the
	// pyenv version or "system".
	Name string

	// Interpreter is the environment's python. It is empty for the
	// system environment, which uses pip from PATH.
	Interpreter string

	// Pip is the argv prefix that invokes pip in this environment.
	Pip []string

	err error
}

// PipPackageManager upgrades outdated pip packages in each configured
// environment: every virtualenv, every pyenv version, or the system pip
// when neither is configured. Naming both is a configuration error that
// disables the manager.
type PipPackageManager struct {
	baseManager
	configErr error
}

func NewPipPackageManager(cfg config.ManagerConfig, deps Deps) *PipPackageManager {
	ppm := &PipPackageManager{baseManager: newBaseManager("pip", "pip", cfg, deps, nil)}
	if len(cfg.Virtualenv) > 0 && len(cfg.PyenvVersion) > 0 {
		ppm.configErr = fmt.Errorf("pip: %w", config.ErrConflictingEnvironments)
		ppm.log.Error("Invalid configuration, pip is disabled", "error", ppm.configErr)
	}
	return ppm
}

func (ppm *PipPackageManager) Configured(op string) bool {
	return op == OpUpdate || op == OpUpgrade
}

// IsAvailable reports whether at least one environment has a usable pip.
// It starts no process when the configuration is invalid.
func (ppm *PipPackageManager) IsAvailable(ctx context.Context) bool {
	if ppm.configErr != nil {
		return false
	}
	for _, env := range ppm.Environments(ctx) {
		if ppm.present(env) {
			return true
		}
	}
	return false
}

// Update checks every environment. pip has no index to refresh, so only a
// configured update command is run, once per available environment.
func (ppm *PipPackageManager) Update(ctx context.Context) bool {
	if ppm.configErr != nil {
		ppm.log.Error("Skipping update", "error", ppm.configErr)
		return false
	}
	if ppm.emptyOverride(OpUpdate) {
		return true
	}
	argv, configured := ppm.cfg.Command(OpUpdate)

	ok := true
	for _, env := range ppm.Environments(ctx) {
		if !ppm.present(env) {
			ppm.log.Warn("Python environment not available", "environment", env.Name, "error", env.err)
			ok = false
			continue
		}
		if !configured {
			ppm.log.Debug("Nothing to update", "environment", env.Name)
			continue
		}
		ok = ppm.deps.CommandManager.Run(ctx, argv) && ok
	}
	return ok
}

// Upgrade upgrades every outdated package in every environment. Each
// package is attempted even after a failure; the result is false if any
// environment or package failed.
func (ppm *PipPackageManager) Upgrade(ctx context.Context) bool {
	if ppm.configErr != nil {
		ppm.log.Error("Skipping upgrade", "error", ppm.configErr)
		return false
	}
	if ppm.emptyOverride(OpUpgrade) {
		return true
	}

	envs := ppm.Environments(ctx)
	var result *multierror.Error
	for _, env := range envs {
		if err := ppm.upgradeEnvironment(ctx, env); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result != nil {
		ppm.log.Error("pip upgrade finished with errors", "error", result)
		return false
	}
	return true
}

// Environments resolves the configured environments. Resolution problems
// are kept on the environment and reported when it is used.
func (ppm *PipPackageManager) Environments(ctx context.Context) []PythonEnvironment {
	var envs []PythonEnvironment
	for _, v := range ppm.cfg.Virtualenv {
		envs = append(envs, ppm.virtualenv(v))
	}
	for _, v := range ppm.cfg.PyenvVersion {
		envs = append(envs, ppm.pyenv(ctx, v))
	}
	if len(envs) == 0 {
		envs = append(envs, PythonEnvironment{Name: "system", Pip: []string{"pip"}})
	}
	return envs
}

func (ppm *PipPackageManager) virtualenv(path string) PythonEnvironment {
	env := PythonEnvironment{Name: path}
	dir, err := ppm.deps.EnvironmentManager.Expand(path)
	if err != nil {
		env.err = err
		return env
	}
	env.Interpreter = filepath.Join(dir, "bin", "python")
	env.Pip = []string{env.Interpreter, "-m", "pip"}
	return env
}

func (ppm *PipPackageManager) pyenv(ctx context.Context, version string) PythonEnvironment {
	env := PythonEnvironment{Name: "pyenv " + version}
	result := ppm.deps.CommandManager.RunCapturing(ctx, []string{"pyenv", "prefix", version})
	if !result.Succeeded() {
		env.err = fmt.Errorf("pyenv prefix %s: %s", version, strings.TrimSpace(result.STDERR))
		return env
	}
	env.Interpreter = filepath.Join(strings.TrimSpace(result.STDOUT), "bin", "python")
	env.Pip = []string{env.Interpreter, "-m", "pip"}
	return env
}

func (ppm *PipPackageManager) present(env PythonEnvironment) bool {
	if env.err != nil || len(env.Pip) == 0 {
		return false
	}
	if env.Interpreter == "" {
		_, err := ppm.deps.CommandManager.LookPath(env.Pip[0])
		return err == nil
	}
	return ppm.deps.FileManager.IsExecutable(env.Interpreter)
}

func (ppm *PipPackageManager) upgradeEnvironment(ctx context.Context, env PythonEnvironment) error {
	log := ppm.log.With("environment", env.Name)
	if !ppm.present(env) {
		if env.err != nil {
			return fmt.Errorf("%s: %w", env.Name, env.err)
		}
		return fmt.Errorf("%s: python not found", env.Name)
	}

	packages, err := ppm.Outdated(ctx, env)
	if err != nil {
		return fmt.Errorf("%s: %w", env.Name, err)
	}
	if len(packages) == 0 {
		log.Info("No outdated packages found")
		return nil
	}
	log.Info("Found outdated packages", "count", len(packages))

	var result *multierror.Error
	for _, pkg := range packages {
		log.Info("Upgrading package", "package", pkg.Name, "from", pkg.Version, "to", pkg.LatestVersion, "bump", pkg.Bump())
		if !ppm.deps.CommandManager.Run(ctx, ppm.upgradeCommand(env, pkg.Name)) {
			result = multierror.Append(result, fmt.Errorf("%s: upgrade %s failed", env.Name, pkg.Name))
		}
	}
	return result.ErrorOrNil()
}

// Outdated lists the outdated packages of env. A failing command or output
// that is not the expected JSON is an error.
func (ppm *PipPackageManager) Outdated(ctx context.Context, env PythonEnvironment) ([]OutdatedPackage, error) {
	argv := append(append([]string(nil), env.Pip...), "list", "--outdated", "--format=json")
	result := ppm.deps.CommandManager.RunCapturing(ctx, argv)
	if !result.Succeeded() {
		return nil, fmt.Errorf("pip list failed with exit code %d: %s", result.ExitCode, strings.TrimSpace(result.STDERR))
	}

	var packages []OutdatedPackage
	if err := json.Unmarshal([]byte(strings.TrimSpace(result.STDOUT)), &packages); err != nil {
		ppm.logUnparseable(env, result.STDOUT)
		return nil, fmt.Errorf("parse pip list output: %w", err)
	}
	for _, pkg := range packages {
		if pkg.Name == "" {
			ppm.logUnparseable(env, result.STDOUT)
			return nil, fmt.Errorf("parse pip list output: entry without a name")
		}
	}
	return packages, nil
}

func (ppm *PipPackageManager) logUnparseable(env PythonEnvironment, stdout string) {
	if ppm.deps.Verbose {
		ppm.log.Error("Unparseable pip list output", "environment", env.Name, "stdout", stdout)
	}
}

// upgradeCommand returns the argv that upgrades pkg in env. A configured
// upgrade command replaces pip install --upgrade and gets the package name
// appended.
func (ppm *PipPackageManager) upgradeCommand(env PythonEnvironment, pkg string) []string {
	if prefix, ok := ppm.cfg.Command(OpUpgrade); ok && len(prefix) > 0 {
		return append(prefix, pkg)
	}
	return append(append([]string(nil), env.Pip...), "install", "--upgrade", pkg)
}
