package registry

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"badrefining/pkg/domain"
)

// MaxCatalogSize bounds the catalog files LoadCatalogFile accepts.
const MaxCatalogSize = 4 << 20

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// Catalog is the YAML document describing a registry.
type Catalog struct {
	BlueprintClasses []string                 `yaml:"blueprint_classes"`
	Blueprints       []CatalogBlueprint       `yaml:"blueprints"`
	Refineries       []CatalogProductionBlock `yaml:"refineries"`
	Assemblers       []CatalogProductionBlock `yaml:"assemblers"`
	OxygenGenerators []CatalogOxygenGenerator `yaml:"oxygen_generators"`
	OxygenFarms      []CatalogOxygenFarm      `yaml:"oxygen_farms"`
	Definitions      []CatalogItem            `yaml:"definitions"`
}

// CatalogItem references a definition, optionally with a quantity.
type CatalogItem struct {
	Type    domain.TypeID `yaml:"type"`
	Subtype string        `yaml:"subtype"`
	Amount  float64       `yaml:"amount,omitempty"`
}

// CatalogBlueprint describes a blueprint and the classes listing it.
type CatalogBlueprint struct {
	Subtype        string        `yaml:"subtype"`
	DisplayName    string        `yaml:"display_name"`
	Prerequisites  []CatalogItem `yaml:"prerequisites"`
	Results        []CatalogItem `yaml:"results"`
	ProductionTime float32       `yaml:"production_time"`
	Classes        []string      `yaml:"classes"`
}

// CatalogProductionBlock describes a refinery or assembler.
type CatalogProductionBlock struct {
	Subtype            string          `yaml:"subtype"`
	CubeSize           domain.CubeSize `yaml:"cube_size"`
	Classes            []string        `yaml:"classes"`
	OperationalPower   float32         `yaml:"operational_power"`
	StandbyPower       float32         `yaml:"standby_power"`
	MaterialEfficiency float32         `yaml:"material_efficiency"`
	AssemblySpeed      float32         `yaml:"assembly_speed"`
}

// CatalogGas is one gas produced by an oxygen generator.
type CatalogGas struct {
	Subtype       string  `yaml:"subtype"`
	IceToGasRatio float32 `yaml:"ice_to_gas_ratio"`
}

// CatalogOxygenGenerator describes an ice-to-gas generator.
type CatalogOxygenGenerator struct {
	Subtype        string          `yaml:"subtype"`
	CubeSize       domain.CubeSize `yaml:"cube_size"`
	IceConsumption float32         `yaml:"ice_consumption"`
	Gases          []CatalogGas    `yaml:"gases"`
}

// CatalogOxygenFarm describes a solar oxygen farm.
type CatalogOxygenFarm struct {
	Subtype      string          `yaml:"subtype"`
	CubeSize     domain.CubeSize `yaml:"cube_size"`
	MaxGasOutput float32         `yaml:"max_gas_output"`
}

// DefaultCatalog builds a registry from the embedded vanilla catalog.
func DefaultCatalog() (*Registry, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// LoadCatalogFile reads and builds the catalog at path.
func LoadCatalogFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// LoadCatalog reads a YAML catalog from r.
func LoadCatalog(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxCatalogSize+1))
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(data) > MaxCatalogSize {
		return nil, fmt.Errorf("catalog exceeds %d bytes", MaxCatalogSize)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog and builds a registry from it.
func ParseCatalog(data []byte) (*Registry, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return catalog.Build()
}

// Build turns the catalog into a registry. Classes referenced by blueprints
// or blocks must be declared in BlueprintClasses.
func (c Catalog) Build() (*Registry, error) {
	reg := New()
	for _, name := range c.BlueprintClasses {
		if err := reg.AddBlueprintClass(&domain.BlueprintClass{Name: name}); err != nil {
			return nil, err
		}
	}

	for _, entry := range c.Blueprints {
		bp := &domain.Blueprint{
			ID:                        domain.BlueprintID(entry.Subtype),
			DisplayName:               entry.DisplayName,
			Prerequisites:             catalogItems(entry.Prerequisites),
			Results:                   catalogItems(entry.Results),
			BaseProductionTimeSeconds: entry.ProductionTime,
		}
		if err := reg.Add(bp); err != nil {
			return nil, err
		}
		for _, name := range entry.Classes {
			class, ok := reg.BlueprintClass(name)
			if !ok {
				return nil, fmt.Errorf("blueprint %s: unknown class %s", entry.Subtype, name)
			}
			class.AddBlueprint(bp)
		}
	}

	for _, entry := range c.Refineries {
		block, err := reg.productionBlock(domain.TypeRefinery, entry)
		if err != nil {
			return nil, err
		}
		if err := reg.Add(&domain.Refinery{ProductionBlock: block, MaterialEfficiency: entry.MaterialEfficiency}); err != nil {
			return nil, err
		}
	}
	for _, entry := range c.Assemblers {
		block, err := reg.productionBlock(domain.TypeAssembler, entry)
		if err != nil {
			return nil, err
		}
		if err := reg.Add(&domain.Assembler{ProductionBlock: block, AssemblySpeed: entry.AssemblySpeed}); err != nil {
			return nil, err
		}
	}

	for _, entry := range c.OxygenGenerators {
		gases := make([]domain.GasInfo, 0, len(entry.Gases))
		for _, gas := range entry.Gases {
			gases = append(gases, domain.GasInfo{
				ID:            domain.NewDefinitionID(domain.TypeGasProperties, gas.Subtype),
				IceToGasRatio: gas.IceToGasRatio,
			})
		}
		gen := &domain.OxygenGenerator{
			ID:                      domain.NewDefinitionID(domain.TypeOxygenGenerator, entry.Subtype),
			CubeSize:                cubeSizeOrLarge(entry.CubeSize),
			IceConsumptionPerSecond: entry.IceConsumption,
			ProducedGases:           gases,
		}
		if err := reg.Add(gen); err != nil {
			return nil, err
		}
	}
	for _, entry := range c.OxygenFarms {
		farm := &domain.OxygenFarm{
			ID:           domain.NewDefinitionID(domain.TypeOxygenFarm, entry.Subtype),
			CubeSize:     cubeSizeOrLarge(entry.CubeSize),
			MaxGasOutput: entry.MaxGasOutput,
		}
		if err := reg.Add(farm); err != nil {
			return nil, err
		}
	}

	for _, entry := range c.Definitions {
		if err := reg.Add(&domain.GenericDefinition{ID: domain.NewDefinitionID(entry.Type, entry.Subtype)}); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (r *Registry) productionBlock(typeID domain.TypeID, entry CatalogProductionBlock) (domain.ProductionBlock, error) {
	classes := make([]*domain.BlueprintClass, 0, len(entry.Classes))
	for _, name := range entry.Classes {
		class, ok := r.BlueprintClass(name)
		if !ok {
			return domain.ProductionBlock{}, fmt.Errorf("%s %s: unknown class %s", typeID, entry.Subtype, name)
		}
		classes = append(classes, class)
	}
	return domain.ProductionBlock{
		ID:                          domain.NewDefinitionID(typeID, entry.Subtype),
		CubeSize:                    cubeSizeOrLarge(entry.CubeSize),
		BlueprintClasses:            classes,
		OperationalPowerConsumption: entry.OperationalPower,
		StandbyPowerConsumption:     entry.StandbyPower,
	}, nil
}

func catalogItems(items []CatalogItem) []domain.BlueprintItem {
	out := make([]domain.BlueprintItem, 0, len(items))
	for _, item := range items {
		out = append(out, domain.BlueprintItem{
			ID:     domain.NewDefinitionID(item.Type, item.Subtype),
			Amount: domain.AmountFromFloat64(item.Amount),
		})
	}
	return out
}

func cubeSizeOrLarge(size domain.CubeSize) domain.CubeSize {
	if size == "" {
		return domain.CubeSizeLarge
	}
	return size
}
