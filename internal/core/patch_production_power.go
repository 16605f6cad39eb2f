package core

import (
	"context"

	"badrefining/internal/ledger"
)

// PatchProductionBlockPower scales production block power draw.
const PatchProductionBlockPower = "production_block_power"

// NewProductionBlockPowerPatch returns the patch multiplying operational and
// standby power of every production block by their configured factors.
func NewProductionBlockPowerPatch() Patch {
	return productionBlockPowerPatch{}
}

type productionBlockPowerPatch struct{}

func (productionBlockPowerPatch) Name() string { return PatchProductionBlockPower }

func (productionBlockPowerPatch) Apply(_ context.Context, pc *PatchContext) error {
	operational := pc.Settings.ProductionBlockOperationalPowerConsumptionFactor
	standby := pc.Settings.ProductionBlockStandbyPowerConsumptionFactor

	for _, def := range pc.Registry.AllDefinitions() {
		block, ok := def.(ProductionBlockDefinition)
		if !ok {
			continue
		}
		pb := block.Block()
		pc.logger().Info("Increasing power consumption", "block", pb.ID.String())
		ledger.Set(pc.Ledger, pb, operationalPowerField, pb.OperationalPowerConsumption*operational)
		ledger.Set(pc.Ledger, pb, standbyPowerField, pb.StandbyPowerConsumption*standby)
	}
	return nil
}
