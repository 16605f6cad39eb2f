package core

import "badrefining/pkg/domain"

type (
	DefinitionID              = domain.DefinitionID
	Definition                = domain.Definition
	ProductionBlockDefinition = domain.ProductionBlockDefinition
	ProductionBlock           = domain.ProductionBlock
	Refinery                  = domain.Refinery
	OxygenGenerator           = domain.OxygenGenerator
	OxygenFarm                = domain.OxygenFarm
	GasInfo                   = domain.GasInfo
	Blueprint                 = domain.Blueprint
	BlueprintItem             = domain.BlueprintItem
	BlueprintClass            = domain.BlueprintClass
	Settings                  = domain.Settings
	YieldFactorOverride       = domain.YieldFactorOverride
	DefinitionRegistry        = domain.DefinitionRegistry
	SettingsStore             = domain.SettingsStore
)

const (
	// RefineryIngotsClass is the blueprint class large refineries are restricted to.
	RefineryIngotsClass = "RefineryIngots"
	// BlastFurnaceSubtype is the large refinery treated as a small one.
	BlastFurnaceSubtype = "Blast Furnace"
	// StoneSubtype marks raw stone and gravel items.
	StoneSubtype = "Stone"
	// StoneOreToIngotBlueprint is the survival refinery stone recipe.
	StoneOreToIngotBlueprint = "StoneOreToIngot"
	// StoneOreToIngotBasicBlueprint is the survival kit stone recipe.
	StoneOreToIngotBasicBlueprint = "StoneOreToIngotBasic"
)
