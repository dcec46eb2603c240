// Package managergroup runs one operation across the configured package
// managers, in configuration order.
package managergroup

import (
	"context"
	"fmt"
	"time"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/m-217/oneupdater/logger"
	"github.com/m-217/oneupdater/oneupdater/config"
	pm "github.com/m-217/oneupdater/oneupdater/packagemanager"
)

type Status int

const (
	Succeeded Status = iota
	Failed
	Skipped
	Disabled
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	case Disabled:
		return "disabled"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is the outcome of one manager for one operation.
type Result struct {
	Manager   string
	Operation string
	Status    Status
	Err       error
	Duration  time.Duration
}

// Factory builds the backend for a configuration entry.
type Factory func(name string, cfg config.ManagerConfig) (pm.PackageManager, error)

// ManagerGroup is an ordered set of configured package managers.
type ManagerGroup struct {
	Configs []config.ManagerConfig
	Factory Factory
	Logger  logger.Logger

	// OnStart and OnResult, when set, are called around each manager that
	// actually runs, and with every result.
	OnStart  func(name, op string)
	OnResult func(Result)
}

// NewManagerGroup creates a group that builds backends with factory.
func NewManagerGroup(factory Factory, configs ...config.ManagerConfig) *ManagerGroup {
	return &ManagerGroup{Configs: configs, Factory: factory, Logger: logger.Nop()}
}

// Run performs op on every manager in order. Disabled managers are never
// built, and a manager without a command for op is skipped. Managers that
// cannot be built are reported in the returned error; the rest still run.
func (mg *ManagerGroup) Run(ctx context.Context, op string) ([]Result, error) {
	if op != config.OpUpdate && op != config.OpUpgrade {
		return nil, fmt.Errorf("unsupported operation %q", op)
	}

	var errs *multierror.Error
	results := make([]Result, 0, len(mg.Configs))
	for _, cfg := range mg.Configs {
		if ctx.Err() != nil {
			errs = multierror.Append(errs, ctx.Err())
			break
		}
		result := mg.runOne(ctx, cfg, op)
		if result.Status == Failed && result.Err != nil {
			errs = multierror.Append(errs, result.Err)
		}
		results = append(results, result)
		if mg.OnResult != nil {
			mg.OnResult(result)
		}
	}
	return results, errs.ErrorOrNil()
}

func (mg *ManagerGroup) runOne(ctx context.Context, cfg config.ManagerConfig, op string) Result {
	result := Result{Manager: cfg.Name, Operation: op}
	log := mg.log().With("manager", cfg.Name, "operation", op)

	if !cfg.IsEnabled() {
		log.Debug("Manager is disabled")
		result.Status = Disabled
		return result
	}

	manager, err := mg.Factory(cfg.Name, cfg)
	if err != nil {
		log.Error("Cannot create package manager", "error", err)
		result.Status = Failed
		result.Err = err
		return result
	}

	if !manager.Configured(op) {
		log.Info("No command configured, skipping")
		result.Status = Skipped
		return result
	}

	if mg.OnStart != nil {
		mg.OnStart(cfg.Name, op)
	}
	start := time.Now()
	var ok bool
	if op == config.OpUpdate {
		ok = manager.Update(ctx)
	} else {
		ok = manager.Upgrade(ctx)
	}
	result.Duration = time.Since(start)

	if ok {
		result.Status = Succeeded
	} else {
		result.Status = Failed
	}
	return result
}

func (mg *ManagerGroup) log() logger.Logger {
	if mg.Logger == nil {
		return logger.Nop()
	}
	return mg.Logger
}

// Failures returns the results that failed.
func Failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Status == Failed {
			failed = append(failed, r)
		}
	}
	return failed
}
