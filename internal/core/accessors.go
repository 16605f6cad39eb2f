package core

import "badrefining/internal/ledger"

var (
	blueprintClassesField = ledger.Accessor[*ProductionBlock, []*BlueprintClass]{
		Get: func(pb *ProductionBlock) []*BlueprintClass {
			return append([]*BlueprintClass(nil), pb.BlueprintClasses...)
		},
		// rewrites the existing list in place; blocks must not share a backing array
		Set: func(pb *ProductionBlock, v []*BlueprintClass) {
			pb.BlueprintClasses = append(pb.BlueprintClasses[:0], v...)
		},
	}
	operationalPowerField = ledger.Accessor[*ProductionBlock, float32]{
		Get: func(pb *ProductionBlock) float32 { return pb.OperationalPowerConsumption },
		Set: func(pb *ProductionBlock, v float32) { pb.OperationalPowerConsumption = v },
	}
	standbyPowerField = ledger.Accessor[*ProductionBlock, float32]{
		Get: func(pb *ProductionBlock) float32 { return pb.StandbyPowerConsumption },
		Set: func(pb *ProductionBlock, v float32) { pb.StandbyPowerConsumption = v },
	}
	iceConsumptionField = ledger.Accessor[*OxygenGenerator, float32]{
		Get: func(g *OxygenGenerator) float32 { return g.IceConsumptionPerSecond },
		Set: func(g *OxygenGenerator, v float32) { g.IceConsumptionPerSecond = v },
	}
	producedGasesField = ledger.Accessor[*OxygenGenerator, []GasInfo]{
		Get: func(g *OxygenGenerator) []GasInfo { return g.ProducedGases },
		Set: func(g *OxygenGenerator, v []GasInfo) { g.ProducedGases = v },
	}
	maxGasOutputField = ledger.Accessor[*OxygenFarm, float32]{
		Get: func(f *OxygenFarm) float32 { return f.MaxGasOutput },
		Set: func(f *OxygenFarm, v float32) { f.MaxGasOutput = v },
	}
	blueprintResultsField = ledger.Accessor[*Blueprint, []BlueprintItem]{
		Get: func(bp *Blueprint) []BlueprintItem { return bp.Results },
		Set: func(bp *Blueprint, v []BlueprintItem) { bp.Results = v },
	}
)
