package core

import (
	"context"
	"errors"
	"fmt"

	"badrefining/internal/ledger"
)

// Patch is one family of reversible edits applied during Load. Implementations
// must route every write through PatchContext.Ledger.
type Patch interface {
	Name() string
	Apply(ctx context.Context, pc *PatchContext) error
}

// ErrLookup is wrapped by every LookupError.
var ErrLookup = errors.New("definition lookup failed")

// LookupError reports a named definition that the registry does not hold.
// Lookup failures skip the affected step; they never abort a load.
type LookupError struct {
	Kind string
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// Unwrap returns ErrLookup.
func (e *LookupError) Unwrap() error { return ErrLookup }

// PatchContext is the session state handed to each patch.
type PatchContext struct {
	Registry DefinitionRegistry
	Settings Settings
	Ledger   *ledger.Ledger
	Logger   Logger

	failures []error
	observe  func(ctx context.Context, operation string, fn func(context.Context) error) error
}

// ReportLookupFailure logs a missing definition and records it against the
// running patch.
func (pc *PatchContext) ReportLookupFailure(kind, name string) {
	err := &LookupError{Kind: kind, Name: name}
	pc.logger().Error(err.Error(), "kind", kind, "name", name)
	pc.failures = append(pc.failures, err)
}

func (pc *PatchContext) logger() Logger {
	if pc.Logger == nil {
		return noopLogger{}
	}
	return pc.Logger
}

func (pc *PatchContext) run(ctx context.Context, patch Patch) error {
	if pc.observe == nil {
		return patch.Apply(ctx, pc)
	}
	return pc.observe(ctx, patchOperationPrefix+patch.Name(), func(ctx context.Context) error {
		return patch.Apply(ctx, pc)
	})
}

// PatchResult summarises one patch run.
type PatchResult struct {
	Patch         string
	Modifications int
	Failures      []error
}

// LoadReport aggregates the results of a load pass.
type LoadReport struct {
	Patches       []PatchResult
	Modifications int
}

// Failures returns every lookup failure reported during the pass.
func (r LoadReport) Failures() []error {
	var out []error
	for _, p := range r.Patches {
		out = append(out, p.Failures...)
	}
	return out
}

// Result returns the result recorded for the named patch.
func (r LoadReport) Result(name string) (PatchResult, bool) {
	for _, p := range r.Patches {
		if p.Patch == name {
			return p, true
		}
	}
	return PatchResult{}, false
}

// PatchEngine runs patches in registration order.
type PatchEngine struct {
	patches []Patch
}

// NewPatchEngine constructs an empty engine.
func NewPatchEngine() *PatchEngine {
	return &PatchEngine{}
}

// NewDefaultPatchEngine builds an engine with the six built-in families in
// their fixed order.
func NewDefaultPatchEngine() *PatchEngine {
	engine := NewPatchEngine()
	for _, patch := range DefaultPatches() {
		engine.Register(patch)
	}
	return engine
}

// DefaultPatches returns the built-in families in the order they must run.
func DefaultPatches() []Patch {
	return []Patch{
		NewRefineryBlueprintClassPatch(),
		NewProductionBlockPowerPatch(),
		NewOxygenGeneratorIcePatch(),
		NewOxygenFarmOutputPatch(),
		NewLargeRefineryYieldPatch(),
		NewSmallRefineryYieldPatch(),
	}
}

// Register appends a patch to the engine.
func (e *PatchEngine) Register(patch Patch) {
	if patch == nil {
		return
	}
	e.patches = append(e.patches, patch)
}

// Patches returns a copy of the registered patches.
func (e *PatchEngine) Patches() []Patch {
	out := make([]Patch, len(e.patches))
	copy(out, e.patches)
	return out
}

// Apply runs every patch in order. A cancelled context stops the pass before
// the next patch; a patch error stops it immediately. Either way the report
// covers the patches that ran and their ledger entries stay recorded.
func (e *PatchEngine) Apply(ctx context.Context, pc *PatchContext) (LoadReport, error) {
	var report LoadReport
	for _, patch := range e.patches {
		if err := ctx.Err(); err != nil {
			report.Modifications = pc.Ledger.Count()
			return report, err
		}
		before := pc.Ledger.Count()
		pc.failures = nil
		err := pc.run(ctx, patch)
		report.Patches = append(report.Patches, PatchResult{
			Patch:         patch.Name(),
			Modifications: pc.Ledger.Count() - before,
			Failures:      pc.failures,
		})
		if err != nil {
			report.Modifications = pc.Ledger.Count()
			return report, fmt.Errorf("patch %s: %w", patch.Name(), err)
		}
	}
	pc.failures = nil
	report.Modifications = pc.Ledger.Count()
	return report, nil
}
