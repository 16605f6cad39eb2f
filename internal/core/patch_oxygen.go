package core

import (
	"context"

	"badrefining/internal/ledger"
)

const (
	// PatchOxygenGeneratorIce degrades ice-based gas generation.
	PatchOxygenGeneratorIce = "oxygen_generator_ice"
	// PatchOxygenFarmOutput boosts solar oxygen farms.
	PatchOxygenFarmOutput = "oxygen_farm_output"
)

// NewOxygenGeneratorIcePatch returns the patch that raises ice consumption and
// lowers the ice-to-gas ratio of every oxygen generator.
//
// Ice consumption is doubled in place before the ledgered write, so the
// effective factor is 2x the configured one and unload restores the doubled
// value, not the pristine original.
func NewOxygenGeneratorIcePatch() Patch {
	return oxygenGeneratorIcePatch{}
}

type oxygenGeneratorIcePatch struct{}

func (oxygenGeneratorIcePatch) Name() string { return PatchOxygenGeneratorIce }

func (oxygenGeneratorIcePatch) Apply(_ context.Context, pc *PatchContext) error {
	iceFactor := pc.Settings.OxygenGeneratorIceConsumptionFactor
	ratioFactor := pc.Settings.OxygenGeneratorIceToGasRatioFactor

	for _, def := range pc.Registry.AllDefinitions() {
		gen, ok := def.(*OxygenGenerator)
		if !ok {
			continue
		}
		pc.logger().Info("Making oxygen generator bad", "generator", gen.ID.String())

		gen.IceConsumptionPerSecond *= 2
		ledger.Set(pc.Ledger, gen, iceConsumptionField, gen.IceConsumptionPerSecond*iceFactor)

		gases := make([]GasInfo, 0, len(gen.ProducedGases))
		for _, produced := range gen.ProducedGases {
			gases = append(gases, GasInfo{ID: produced.ID, IceToGasRatio: produced.IceToGasRatio * ratioFactor})
		}
		ledger.Set(pc.Ledger, gen, producedGasesField, gases)
	}
	return nil
}

// NewOxygenFarmOutputPatch returns the patch multiplying the max gas output of
// every oxygen farm.
func NewOxygenFarmOutputPatch() Patch {
	return oxygenFarmOutputPatch{}
}

type oxygenFarmOutputPatch struct{}

func (oxygenFarmOutputPatch) Name() string { return PatchOxygenFarmOutput }

func (oxygenFarmOutputPatch) Apply(_ context.Context, pc *PatchContext) error {
	factor := pc.Settings.OxygenFarmMaxGasOutputFactor
	pc.logger().Info("Increasing oxygen farm output", "factor", factor)

	for _, def := range pc.Registry.AllDefinitions() {
		farm, ok := def.(*OxygenFarm)
		if !ok {
			continue
		}
		ledger.Set(pc.Ledger, farm, maxGasOutputField, farm.MaxGasOutput*factor)
	}
	return nil
}
