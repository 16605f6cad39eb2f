// Package domain defines the balance definition records, settings, and
// collaborator contracts shared by the badrefining session and its hosts.
package domain

import "fmt"

// TypeID identifies the object builder type of a definition or item.
type TypeID string

// Definition and item type identifiers recognised by the patch families.
const (
	// TypeIngot identifies refined ingot items.
	TypeIngot TypeID = "Ingot"
	// TypeOre identifies raw ore items.
	TypeOre TypeID = "Ore"
	// TypeComponent identifies assembled component items.
	TypeComponent TypeID = "Component"
	// TypeGasProperties identifies gas resources produced by generators.
	TypeGasProperties TypeID = "GasProperties"
	// TypeBlueprint identifies blueprint (recipe) definitions.
	TypeBlueprint TypeID = "BlueprintDefinition"
	// TypeRefinery identifies refinery production blocks.
	TypeRefinery TypeID = "Refinery"
	// TypeAssembler identifies assembler production blocks.
	TypeAssembler TypeID = "Assembler"
	// TypeOxygenGenerator identifies ice-to-gas generator blocks.
	TypeOxygenGenerator TypeID = "OxygenGenerator"
	// TypeOxygenFarm identifies solar oxygen farm blocks.
	TypeOxygenFarm TypeID = "OxygenFarm"
)

// DefinitionID is the (type, subtype) pair that uniquely names a record.
type DefinitionID struct {
	TypeID      TypeID
	SubtypeName string
}

// NewDefinitionID builds an identifier from its parts.
func NewDefinitionID(typeID TypeID, subtype string) DefinitionID {
	return DefinitionID{TypeID: typeID, SubtypeName: subtype}
}

// BlueprintID returns the identifier of the blueprint with the given subtype name.
func BlueprintID(name string) DefinitionID {
	return DefinitionID{TypeID: TypeBlueprint, SubtypeName: name}
}

func (id DefinitionID) String() string {
	return fmt.Sprintf("%s/%s", id.TypeID, id.SubtypeName)
}

// CubeSize is the grid size a block is built on.
type CubeSize string

// Supported grid sizes.
const (
	CubeSizeSmall CubeSize = "small"
	CubeSizeLarge CubeSize = "large"
)

// Definition is implemented by every record held by a DefinitionRegistry.
type Definition interface {
	DefinitionID() DefinitionID
}

// ProductionBlockDefinition is implemented by every block that processes
// blueprints (refineries, assemblers, survival kits).
type ProductionBlockDefinition interface {
	Definition
	Block() *ProductionBlock
}

// BlueprintItem is one prerequisite or result entry of a blueprint.
type BlueprintItem struct {
	ID     DefinitionID
	Amount Amount
}

// Blueprint describes a recipe turning prerequisites into results.
type Blueprint struct {
	ID                        DefinitionID
	DisplayName               string
	Prerequisites             []BlueprintItem
	Results                   []BlueprintItem
	BaseProductionTimeSeconds float32
}

// DefinitionID implements Definition.
func (b *Blueprint) DefinitionID() DefinitionID { return b.ID }

func (b *Blueprint) String() string { return b.ID.String() }

// BlueprintClass groups the blueprints a production block can queue.
type BlueprintClass struct {
	Name       string
	Blueprints []*Blueprint
}

// AddBlueprint appends bp to the class. Adding a blueprint that is already a
// member is a no-op.
func (c *BlueprintClass) AddBlueprint(bp *Blueprint) {
	if bp == nil || c.ContainsBlueprint(bp.ID) {
		return
	}
	c.Blueprints = append(c.Blueprints, bp)
}

// ContainsBlueprint reports whether the class lists a blueprint with id.
func (c *BlueprintClass) ContainsBlueprint(id DefinitionID) bool {
	for _, existing := range c.Blueprints {
		if existing.ID == id {
			return true
		}
	}
	return false
}

func (c *BlueprintClass) String() string { return c.Name }

// ProductionBlock carries the fields shared by all production blocks.
type ProductionBlock struct {
	ID                          DefinitionID
	CubeSize                    CubeSize
	BlueprintClasses            []*BlueprintClass
	OperationalPowerConsumption float32
	StandbyPowerConsumption     float32
}

// DefinitionID implements Definition.
func (p *ProductionBlock) DefinitionID() DefinitionID { return p.ID }

// Block implements ProductionBlockDefinition. It is promoted through the
// embedded ProductionBlock of Refinery and Assembler.
func (p *ProductionBlock) Block() *ProductionBlock { return p }

var (
	_ ProductionBlockDefinition = (*ProductionBlock)(nil)
	_ ProductionBlockDefinition = (*Refinery)(nil)
	_ ProductionBlockDefinition = (*Assembler)(nil)
)

// Refinery is a production block that turns ore into ingots.
type Refinery struct {
	ProductionBlock
	MaterialEfficiency float32
}

// Assembler is a production block that turns ingots into components.
type Assembler struct {
	ProductionBlock
	AssemblySpeed float32
}

// GasInfo describes one gas produced by an oxygen generator.
type GasInfo struct {
	ID            DefinitionID
	IceToGasRatio float32
}

// OxygenGenerator consumes ice and produces gases.
type OxygenGenerator struct {
	ID                      DefinitionID
	CubeSize                CubeSize
	IceConsumptionPerSecond float32
	ProducedGases           []GasInfo
}

// DefinitionID implements Definition.
func (g *OxygenGenerator) DefinitionID() DefinitionID { return g.ID }

// OxygenFarm produces oxygen from sunlight.
type OxygenFarm struct {
	ID           DefinitionID
	CubeSize     CubeSize
	MaxGasOutput float32
}

// DefinitionID implements Definition.
func (f *OxygenFarm) DefinitionID() DefinitionID { return f.ID }

// GenericDefinition stands in for any record no patch family targets.
type GenericDefinition struct {
	ID DefinitionID
}

// DefinitionID implements Definition.
func (g *GenericDefinition) DefinitionID() DefinitionID { return g.ID }
