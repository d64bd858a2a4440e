package buildplan

import (
	"fmt"

	"github.com/philipparndt/meshcombine/internal/config"
	"github.com/philipparndt/meshcombine/internal/ui"
)

// BuildStep represents a single step in the build plan
type BuildStep interface {
	Name() string
	Execute() error
}

// BuildPlan contains all steps of one combine job
type BuildPlan struct {
	Steps   []BuildStep
	Context *Context
	// Verbose prints a header before every step.
	Verbose bool
}

// Request is everything the command line hands to the planner.
type Request struct {
	ConfigPath string
	Overrides  config.Overrides
	DryRun     bool
	Verbose    bool
}

// Planner creates build plans
type Planner struct{}

// NewPlanner creates a new build planner
func NewPlanner() *Planner {
	return &Planner{}
}

// CreatePlan returns the steps of a combine job. A dry run combines into
// memory and prints the manifest instead of writing anything.
func (p *Planner) CreatePlan(req Request) *BuildPlan {
	ctx := &Context{DryRun: req.DryRun}
	plan := &BuildPlan{Context: ctx, Verbose: req.Verbose}

	plan.Steps = append(plan.Steps,
		&LoadConfigStep{Context: ctx, ConfigPath: req.ConfigPath, Overrides: req.Overrides},
		&CheckPreconditionsStep{Context: ctx},
		&LoadSceneStep{Context: ctx},
		&ResolveRootStep{Context: ctx},
		&CombineMeshesStep{Context: ctx},
	)
	if !req.DryRun {
		plan.Steps = append(plan.Steps, &WriteSceneStep{Context: ctx})
	}
	plan.Steps = append(plan.Steps, &ReportStep{Context: ctx})

	return plan
}

// Execute runs all steps in the plan and stops at the first failure
func (p *BuildPlan) Execute() error {
	if p.Verbose {
		ui.PrintTitle("Build Plan Execution")
		ui.PrintInfo(fmt.Sprintf("Total steps: %d", len(p.Steps)))
	}

	for i, step := range p.Steps {
		if p.Verbose {
			ui.PrintHeader(fmt.Sprintf("Step %d/%d: %s", i+1, len(p.Steps), step.Name()))
		}
		if err := step.Execute(); err != nil {
			return fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	if p.Context.DryRun {
		ui.PrintSuccess("Dry run completed, nothing was written")
		return nil
	}
	ui.PrintSuccess("Meshes combined successfully!")
	if res := p.Context.Result; res != nil {
		ui.PrintBox(fmt.Sprintf("Prefab:   %s\nMeshes:   %d\nWarnings: %d",
			p.Context.Store.Abs(res.PrefabPath), len(res.Nodes), len(res.Warnings)))
	}
	return nil
}

// pluralize returns "s" if count != 1, empty string otherwise
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
