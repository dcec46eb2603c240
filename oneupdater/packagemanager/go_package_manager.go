package packagemanager

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
	"golang.org/x/mod/module"

	cm "github.com/m-217/oneupdater/oneupdater/commandmanager"
	"github.com/m-217/oneupdater/oneupdater/config"
)

// goSpecialCases maps binaries whose recorded module path does not install
// them to the package path that does. They get a single attempt.
var goSpecialCases = map[string]string{
	"staticcheck": "honnef.co/go/tools/cmd/staticcheck",
	"kube-linter": "golang.stackrox.io/kube-linter/cmd/kube-linter",
	"yamlfmt":     "github.com/google/yamlfmt/cmd/yamlfmt",
}

var errModuleUnknown = errors.New("module path unknown")

// GoBinary is an executable found in the Go binary directory.
type GoBinary struct {
	Name       string
	Path       string
	ModulePath string

	// SpecialCase marks a ModulePath taken from the built-in table.
	SpecialCase bool
}

// GoPackageManager reinstalls every binary in the Go binary directory at
// its latest version. The module each binary came from is read from its
// build info.
type GoPackageManager struct {
	baseManager
}

func NewGoPackageManager(cfg config.ManagerConfig, deps Deps) *GoPackageManager {
	return &GoPackageManager{baseManager: newBaseManager("go", "go", cfg, deps, map[string][]string{
		OpUpdate: {},
	})}
}

func (gpm *GoPackageManager) Configured(op string) bool {
	return op == OpUpgrade || gpm.baseManager.Configured(op)
}

func (gpm *GoPackageManager) Upgrade(ctx context.Context) bool {
	if gpm.emptyOverride(OpUpgrade) {
		return true
	}
	if !gpm.checkAvailable(ctx, OpUpgrade, gpm.IsAvailable) {
		return false
	}

	binDir := gpm.BinDir(ctx)
	if binDir == "" || !gpm.deps.FileManager.DirExists(binDir) {
		gpm.log.Info("Go binary directory not found, nothing to upgrade", "dir", binDir)
		return true
	}

	binaries, err := gpm.Binaries(ctx, binDir)
	if err != nil {
		gpm.log.Error("Failed to list Go binaries", "dir", binDir, "error", err)
		return false
	}
	if len(binaries) == 0 {
		gpm.log.Info("No Go binaries found", "dir", binDir)
		return true
	}

	var result *multierror.Error
	for _, bin := range binaries {
		if err := gpm.upgradeBinary(ctx, bin); err != nil {
			gpm.log.Error("Failed to upgrade binary", "binary", bin.Name, "error", err)
			result = multierror.Append(result, err)
		}
	}
	if result != nil {
		gpm.log.Error("Some Go binaries were not upgraded", "failed", len(result.Errors), "total", len(binaries))
		return false
	}
	gpm.log.Info("Upgraded Go binaries", "count", len(binaries))
	return true
}

// BinDir returns where go install puts binaries: GOBIN, else the bin
// directory of the first GOPATH entry, else ~/go/bin.
func (gpm *GoPackageManager) BinDir(ctx context.Context) string {
	result := gpm.deps.CommandManager.RunCapturing(ctx, []string{"go", "env", "GOBIN", "GOPATH"})
	if result.Succeeded() {
		lines := strings.Split(strings.TrimRight(result.STDOUT, "\n"), "\n")
		if gobin := strings.TrimSpace(lines[0]); gobin != "" {
			return gobin
		}
		if len(lines) > 1 {
			if gopath := strings.TrimSpace(lines[1]); gopath != "" {
				return filepath.Join(filepath.SplitList(gopath)[0], "bin")
			}
		}
	}

	home, err := gpm.deps.EnvironmentManager.Home()
	if err != nil {
		gpm.log.Warn("Cannot determine home directory", "error", err)
		return ""
	}
	return filepath.Join(home, "go", "bin")
}

// Binaries lists the executables in dir with their module paths. A binary
// whose module cannot be determined is returned with an empty ModulePath.
func (gpm *GoPackageManager) Binaries(ctx context.Context, dir string) ([]GoBinary, error) {
	files, err := gpm.deps.FileManager.ListExecutables(dir)
	if err != nil {
		return nil, err
	}

	binaries := make([]GoBinary, 0, len(files))
	for _, f := range files {
		bin := GoBinary{Name: f.Name, Path: f.Path}
		if path, ok := goSpecialCases[f.Name]; ok {
			bin.ModulePath = path
			bin.SpecialCase = true
		} else {
			bin.ModulePath = gpm.modulePath(ctx, f.Path)
		}
		binaries = append(binaries, bin)
	}
	return binaries, nil
}

// modulePath reads the main module recorded in the binary's build info.
func (gpm *GoPackageManager) modulePath(ctx context.Context, binary string) string {
	result := gpm.deps.CommandManager.RunCapturing(ctx, []string{"go", "version", "-m", binary})
	if !result.Succeeded() {
		gpm.log.Debug("Cannot read build info", "binary", binary, "stderr", strings.TrimSpace(result.STDERR))
		return ""
	}
	path := parseModulePath(result.STDOUT)
	if path == "" {
		return ""
	}
	if err := module.CheckPath(path); err != nil {
		gpm.log.Debug("Ignoring invalid module path", "binary", binary, "path", path, "error", err)
		return ""
	}
	return path
}

// parseModulePath extracts the path from the "mod" line of go version -m.
func parseModulePath(out string) string {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "mod" {
			return fields[1]
		}
	}
	return ""
}

func (gpm *GoPackageManager) upgradeBinary(ctx context.Context, bin GoBinary) error {
	if bin.ModulePath == "" {
		return fmt.Errorf("%s: %w", bin.Name, errModuleUnknown)
	}
	gpm.log.Info("Upgrading binary", "binary", bin.Name, "module", bin.ModulePath)
	if bin.SpecialCase {
		return gpm.installOnce(ctx, bin.Name, bin.ModulePath)
	}
	return gpm.install(ctx, bin.Name, bin.ModulePath, false)
}

// install runs go install for path. After a first failure that matches a
// known layout problem it tries the alternative path once.
func (gpm *GoPackageManager) install(ctx context.Context, binary, path string, retried bool) error {
	result := gpm.runInstall(ctx, path)
	if result.Succeeded() {
		return nil
	}

	stderr := normalizeStderr(result.STDERR)
	if !retried {
		if next, ok := retryInstallPath(binary, path, stderr); ok {
			gpm.log.Info("Retrying with alternative package path", "binary", binary, "path", next)
			return gpm.install(ctx, binary, next, true)
		}
	}
	return fmt.Errorf("%s: go install %s: %s", binary, path, strings.TrimSpace(stderr))
}

func (gpm *GoPackageManager) installOnce(ctx context.Context, binary, path string) error {
	result := gpm.runInstall(ctx, path)
	if result.Succeeded() {
		return nil
	}
	return fmt.Errorf("%s: go install %s: %s", binary, path, strings.TrimSpace(normalizeStderr(result.STDERR)))
}

func (gpm *GoPackageManager) runInstall(ctx context.Context, path string) cm.CommandResult {
	result := gpm.deps.CommandManager.RunCapturing(ctx, []string{"go", "install", path + "@latest"})
	if gpm.deps.Verbose {
		for _, line := range strings.Split(strings.TrimSpace(result.STDERR), "\n") {
			if line != "" && !strings.HasPrefix(line, "go: downloading") {
				gpm.log.Debug(line, "path", path)
			}
		}
	}
	return result
}
