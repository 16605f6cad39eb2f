package core

import (
	"context"

	"badrefining/internal/ledger"
)

// PatchRefineryBlueprintClass routes large refineries to ingot-only blueprints.
const PatchRefineryBlueprintClass = "refinery_blueprint_class"

// NewRefineryBlueprintClassPatch returns the patch that stops large refineries
// from processing stone. Every large refinery blueprint is added to the
// RefineryIngots class, then each large refinery's class list is replaced by
// that class alone. Class membership is not recorded in the ledger; only the
// refinery class lists are restored at unload.
func NewRefineryBlueprintClassPatch() Patch {
	return refineryBlueprintClassPatch{}
}

type refineryBlueprintClassPatch struct{}

func (refineryBlueprintClassPatch) Name() string { return PatchRefineryBlueprintClass }

func (refineryBlueprintClassPatch) Apply(_ context.Context, pc *PatchContext) error {
	class, ok := pc.Registry.BlueprintClass(RefineryIngotsClass)
	if !ok {
		pc.ReportLookupFailure("blueprint class", RefineryIngotsClass)
		return nil
	}

	for _, bp := range pc.Registry.BlueprintDefinitions() {
		if !IsLargeRefineryBlueprint(bp) {
			continue
		}
		pc.logger().Info("Adding blueprint to class", "blueprint", bp.ID.String(), "class", class.Name)
		class.AddBlueprint(bp)
	}

	for _, def := range pc.Registry.AllDefinitions() {
		refinery, ok := def.(*Refinery)
		if !ok || IsSmallRefinery(&refinery.ProductionBlock) {
			continue
		}
		pc.logger().Info("Setting refinery blueprint class", "refinery", refinery.ID.String(), "class", class.Name)
		ledger.Set(pc.Ledger, &refinery.ProductionBlock, blueprintClassesField, []*BlueprintClass{class})
	}
	return nil
}
