package core

import "badrefining/pkg/domain"

// Category is one classification outcome for a definition. Categories are
// independent predicates; a record can match several.
type Category string

// Categories reported by Categorize.
const (
	CategoryLargeRefineryRecipe Category = "large_refinery_recipe"
	CategorySmallRefineryBlock  Category = "small_refinery_block"
	CategoryOxygenGenerator     Category = "oxygen_generator"
	CategoryOxygenFarm          Category = "oxygen_farm"
	CategoryProductionBlock     Category = "production_block"
	CategoryUncategorized       Category = "uncategorized"
)

// ProducesIngot reports whether any item is an ingot.
func ProducesIngot(items []BlueprintItem) bool {
	for _, item := range items {
		if item.ID.TypeID == domain.TypeIngot {
			return true
		}
	}
	return false
}

// ContainsStone reports whether any item has the Stone subtype, ore or ingot alike.
func ContainsStone(items []BlueprintItem) bool {
	for _, item := range items {
		if item.ID.SubtypeName == StoneSubtype {
			return true
		}
	}
	return false
}

// IsLargeRefineryBlueprint reports whether bp belongs to the large refinery
// ingot family: it yields at least one ingot and neither consumes nor
// produces stone. Extra non-ingot results do not exclude it.
func IsLargeRefineryBlueprint(bp *Blueprint) bool {
	return ProducesIngot(bp.Results) &&
		!ContainsStone(bp.Results) &&
		!ContainsStone(bp.Prerequisites)
}

// IsSmallRefinery reports whether block is built on a small grid or is the
// Blast Furnace, the one large block handled as small.
func IsSmallRefinery(block *ProductionBlock) bool {
	return block.CubeSize != domain.CubeSizeLarge || block.ID.SubtypeName == BlastFurnaceSubtype
}

// Categorize returns every category def falls into, or only
// CategoryUncategorized when none apply. Small refinery classification is
// only reported for refineries.
func Categorize(def Definition) []Category {
	var out []Category
	switch d := def.(type) {
	case *Blueprint:
		if IsLargeRefineryBlueprint(d) {
			out = append(out, CategoryLargeRefineryRecipe)
		}
	case *Refinery:
		out = append(out, CategoryProductionBlock)
		if IsSmallRefinery(&d.ProductionBlock) {
			out = append(out, CategorySmallRefineryBlock)
		}
	case ProductionBlockDefinition:
		out = append(out, CategoryProductionBlock)
	case *OxygenGenerator:
		out = append(out, CategoryOxygenGenerator)
	case *OxygenFarm:
		out = append(out, CategoryOxygenFarm)
	}
	if len(out) == 0 {
		return []Category{CategoryUncategorized}
	}
	return out
}
