package core

import (
	"context"

	"badrefining/internal/ledger"
	"badrefining/pkg/domain"
)

const (
	// PatchLargeRefineryYield reduces large refinery ingot yields.
	PatchLargeRefineryYield = "large_refinery_yield"
	// PatchSmallRefineryYield reduces the survival stone recipes.
	PatchSmallRefineryYield = "small_refinery_yield"
)

var minimumYield = domain.AmountFromInt(1)

// NewLargeRefineryYieldPatch returns the patch scaling the results of every
// large refinery blueprint by its override factor or the configured default.
func NewLargeRefineryYieldPatch() Patch {
	return largeRefineryYieldPatch{}
}

type largeRefineryYieldPatch struct{}

func (largeRefineryYieldPatch) Name() string { return PatchLargeRefineryYield }

func (largeRefineryYieldPatch) Apply(_ context.Context, pc *PatchContext) error {
	defaultFactor := pc.Settings.LargeRefineryIngotYieldFactor
	for _, bp := range pc.Registry.BlueprintDefinitions() {
		if !IsLargeRefineryBlueprint(bp) {
			continue
		}
		factor := ResolveYieldFactor(bp.ID.SubtypeName, defaultFactor, pc.Settings.YieldFactorOverrides)
		MultiplyResultAmounts(pc, bp, factor)
	}
	return nil
}

// NewSmallRefineryYieldPatch returns the patch scaling the two stone recipes
// used by the basic refinery and the survival kit. Overrides do not apply.
func NewSmallRefineryYieldPatch() Patch {
	return smallRefineryYieldPatch{}
}

type smallRefineryYieldPatch struct{}

func (smallRefineryYieldPatch) Name() string { return PatchSmallRefineryYield }

func (smallRefineryYieldPatch) Apply(_ context.Context, pc *PatchContext) error {
	steps := []struct {
		blueprint string
		factor    float32
	}{
		{StoneOreToIngotBlueprint, pc.Settings.StoneOreToIngotYieldFactor},
		{StoneOreToIngotBasicBlueprint, pc.Settings.StoneOreToIngotSurvivalKitYieldFactor},
	}
	for _, step := range steps {
		bp, ok := pc.Registry.BlueprintDefinition(domain.BlueprintID(step.blueprint))
		if !ok || bp == nil {
			pc.ReportLookupFailure("blueprint", step.blueprint)
			continue
		}
		MultiplyResultAmounts(pc, bp, step.factor)
	}
	return nil
}

// MultiplyResultAmounts replaces the result list of bp with one whose amounts
// are scaled by factor and floored at one unit. The replacement is a single
// ledger entry.
func MultiplyResultAmounts(pc *PatchContext, bp *Blueprint, factor float32) {
	pc.logger().Info("Multiplying yield", "blueprint", bp.ID.String(), "factor", factor)

	results := make([]BlueprintItem, len(bp.Results))
	for i, item := range bp.Results {
		results[i] = BlueprintItem{
			ID:     item.ID,
			Amount: domain.MaxAmount(minimumYield, item.Amount.Mul(factor)),
		}
	}
	ledger.Set(pc.Ledger, bp, blueprintResultsField, results)
}
