package registry

import (
	"sort"

	"badrefining/pkg/domain"
)

// Snapshot is a value copy of every patchable field in a registry, keyed by
// definition identifier. Two snapshots compare equal with cmp.Diff when the
// registry fields match.
type Snapshot struct {
	Blocks     map[string]BlockSnapshot
	Generators map[string]GeneratorSnapshot
	Farms      map[string]float32
	Blueprints map[string][]ItemSnapshot
	Classes    map[string][]string
}

// BlockSnapshot captures a production block.
type BlockSnapshot struct {
	Classes          []string
	OperationalPower float32
	StandbyPower     float32
}

// GeneratorSnapshot captures an oxygen generator.
type GeneratorSnapshot struct {
	IceConsumption float32
	Gases          map[string]float32
}

// ItemSnapshot captures one blueprint result.
type ItemSnapshot struct {
	Item   string
	Amount string
}

// Snapshot copies the patchable state of every definition in r.
func (r *Registry) Snapshot() Snapshot {
	snap := Snapshot{
		Blocks:     make(map[string]BlockSnapshot),
		Generators: make(map[string]GeneratorSnapshot),
		Farms:      make(map[string]float32),
		Blueprints: make(map[string][]ItemSnapshot),
		Classes:    make(map[string][]string),
	}
	for _, def := range r.definitions {
		key := def.DefinitionID().String()
		switch d := def.(type) {
		case domain.ProductionBlockDefinition:
			pb := d.Block()
			classes := make([]string, 0, len(pb.BlueprintClasses))
			for _, class := range pb.BlueprintClasses {
				classes = append(classes, class.Name)
			}
			snap.Blocks[key] = BlockSnapshot{
				Classes:          classes,
				OperationalPower: pb.OperationalPowerConsumption,
				StandbyPower:     pb.StandbyPowerConsumption,
			}
		case *domain.OxygenGenerator:
			gases := make(map[string]float32, len(d.ProducedGases))
			for _, gas := range d.ProducedGases {
				gases[gas.ID.String()] = gas.IceToGasRatio
			}
			snap.Generators[key] = GeneratorSnapshot{IceConsumption: d.IceConsumptionPerSecond, Gases: gases}
		case *domain.OxygenFarm:
			snap.Farms[key] = d.MaxGasOutput
		case *domain.Blueprint:
			items := make([]ItemSnapshot, 0, len(d.Results))
			for _, item := range d.Results {
				items = append(items, ItemSnapshot{Item: item.ID.String(), Amount: item.Amount.String()})
			}
			snap.Blueprints[key] = items
		}
	}
	for name, class := range r.classes {
		members := make([]string, 0, len(class.Blueprints))
		for _, bp := range class.Blueprints {
			members = append(members, bp.ID.SubtypeName)
		}
		sort.Strings(members)
		snap.Classes[name] = members
	}
	return snap
}
