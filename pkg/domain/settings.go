package domain

// SettingsFileName is the resource the session reads its settings from.
const SettingsFileName = "Settings.xml"

// YieldFactorOverride replaces the large refinery yield factor for one blueprint.
type YieldFactorOverride struct {
	BlueprintName string  `json:"blueprint_name" yaml:"blueprint_name"`
	YieldFactor   float32 `json:"yield_factor" yaml:"yield_factor"`
}

// Settings holds the balance factors applied by the patch families. Settings
// are read once per session and never mutated afterwards.
type Settings struct {
	ProductionBlockOperationalPowerConsumptionFactor float32 `json:"production_block_operational_power_consumption_factor" yaml:"production_block_operational_power_consumption_factor"`
	ProductionBlockStandbyPowerConsumptionFactor     float32 `json:"production_block_standby_power_consumption_factor" yaml:"production_block_standby_power_consumption_factor"`

	OxygenGeneratorIceConsumptionFactor float32 `json:"oxygen_generator_ice_consumption_factor" yaml:"oxygen_generator_ice_consumption_factor"`
	OxygenGeneratorIceToGasRatioFactor  float32 `json:"oxygen_generator_ice_to_gas_ratio_factor" yaml:"oxygen_generator_ice_to_gas_ratio_factor"`

	OxygenFarmMaxGasOutputFactor float32 `json:"oxygen_farm_max_gas_output_factor" yaml:"oxygen_farm_max_gas_output_factor"`

	LargeRefineryIngotYieldFactor         float32 `json:"large_refinery_ingot_yield_factor" yaml:"large_refinery_ingot_yield_factor"`
	StoneOreToIngotYieldFactor            float32 `json:"stone_ore_to_ingot_yield_factor" yaml:"stone_ore_to_ingot_yield_factor"`
	StoneOreToIngotSurvivalKitYieldFactor float32 `json:"stone_ore_to_ingot_survival_kit_yield_factor" yaml:"stone_ore_to_ingot_survival_kit_yield_factor"`

	YieldFactorOverrides []YieldFactorOverride `json:"yield_factor_overrides" yaml:"yield_factor_overrides"`
}

// DefaultSettings returns the hard-coded settings written when no settings
// resource exists yet.
func DefaultSettings() Settings {
	return Settings{
		ProductionBlockOperationalPowerConsumptionFactor: 1.5,
		ProductionBlockStandbyPowerConsumptionFactor:     1.5,
		OxygenGeneratorIceConsumptionFactor:              2,
		OxygenGeneratorIceToGasRatioFactor:               0.1,
		OxygenFarmMaxGasOutputFactor:                     2,
		LargeRefineryIngotYieldFactor:                    0.6,
		StoneOreToIngotYieldFactor:                       0.5,
		StoneOreToIngotSurvivalKitYieldFactor:            0.35,
		YieldFactorOverrides: []YieldFactorOverride{
			{BlueprintName: "UraniumOreToIngot", YieldFactor: 0.1},
		},
	}
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	out := s
	if s.YieldFactorOverrides != nil {
		out.YieldFactorOverrides = append([]YieldFactorOverride(nil), s.YieldFactorOverrides...)
	}
	return out
}
