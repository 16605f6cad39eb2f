package domain

import "testing"

func TestRefineryIsProductionBlockDefinition(t *testing.T) {
	ref := &Refinery{ProductionBlock: ProductionBlock{ID: NewDefinitionID(TypeRefinery, "LargeRefinery"), CubeSize: CubeSizeLarge}}
	var def Definition = ref
	pb, ok := def.(ProductionBlockDefinition)
	if !ok {
		t.Fatalf("expected refinery to satisfy ProductionBlockDefinition")
	}
	if pb.Block() != &ref.ProductionBlock {
		t.Fatalf("expected embedded production block pointer")
	}
	if def.DefinitionID().String() != "Refinery/LargeRefinery" {
		t.Fatalf("unexpected id %s", def.DefinitionID())
	}
}

func TestOxygenDefinitionsAreNotProductionBlocks(t *testing.T) {
	defs := []Definition{
		&OxygenGenerator{ID: NewDefinitionID(TypeOxygenGenerator, "IceGen")},
		&OxygenFarm{ID: NewDefinitionID(TypeOxygenFarm, "Farm")},
		&Blueprint{ID: BlueprintID("IronOreToIngot")},
		&GenericDefinition{ID: NewDefinitionID("CubeBlock", "Armor")},
	}
	for _, def := range defs {
		if _, ok := def.(ProductionBlockDefinition); ok {
			t.Fatalf("%s should not be a production block", def.DefinitionID())
		}
	}
}

func TestBlueprintClassAddBlueprintSkipsDuplicates(t *testing.T) {
	class := &BlueprintClass{Name: "RefineryIngots"}
	bp := &Blueprint{ID: BlueprintID("IronOreToIngot")}
	class.AddBlueprint(bp)
	class.AddBlueprint(&Blueprint{ID: BlueprintID("IronOreToIngot")})
	class.AddBlueprint(nil)
	if len(class.Blueprints) != 1 {
		t.Fatalf("expected one blueprint, got %d", len(class.Blueprints))
	}
	if !class.ContainsBlueprint(bp.ID) {
		t.Fatalf("expected class to contain %s", bp.ID)
	}
}

func TestDefaultSettingsAndClone(t *testing.T) {
	s := DefaultSettings()
	if s.LargeRefineryIngotYieldFactor != 0.6 || s.StoneOreToIngotSurvivalKitYieldFactor != 0.35 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if len(s.YieldFactorOverrides) != 1 || s.YieldFactorOverrides[0].BlueprintName != "UraniumOreToIngot" {
		t.Fatalf("unexpected default overrides: %+v", s.YieldFactorOverrides)
	}
	clone := s.Clone()
	clone.YieldFactorOverrides[0].YieldFactor = 9
	if s.YieldFactorOverrides[0].YieldFactor != 0.1 {
		t.Fatalf("clone shares override storage with original")
	}
}
