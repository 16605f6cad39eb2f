package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"badrefining/internal/registry"
	"badrefining/pkg/domain"
)

func ingot(subtype string, amount int64) BlueprintItem {
	return BlueprintItem{ID: domain.NewDefinitionID(domain.TypeIngot, subtype), Amount: domain.AmountFromInt(amount)}
}

func ore(subtype string, amount int64) BlueprintItem {
	return BlueprintItem{ID: domain.NewDefinitionID(domain.TypeOre, subtype), Amount: domain.AmountFromInt(amount)}
}

func blueprint(name string, prereqs []BlueprintItem, results ...BlueprintItem) *Blueprint {
	return &Blueprint{ID: domain.BlueprintID(name), Prerequisites: prereqs, Results: results}
}

func refinery(subtype string, size domain.CubeSize, classes ...*BlueprintClass) *Refinery {
	return &Refinery{ProductionBlock: ProductionBlock{
		ID:                          domain.NewDefinitionID(domain.TypeRefinery, subtype),
		CubeSize:                    size,
		BlueprintClasses:            classes,
		OperationalPowerConsumption: 2,
		StandbyPowerConsumption:     0.5,
	}}
}

type fixture struct {
	reg        *registry.Registry
	ingots     *BlueprintClass
	refIngots  *BlueprintClass
	ironBP     *Blueprint
	uraniumBP  *Blueprint
	stoneBP    *Blueprint
	stoneKitBP *Blueprint
	large      *Refinery
	furnace    *Refinery
	small      *Refinery
	assembler  *domain.Assembler
	generator  *OxygenGenerator
	farm       *OxygenFarm
}

// newFixture builds a small registry covering every patch family.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{reg: registry.New()}
	f.ingots = &BlueprintClass{Name: "Ingots"}
	f.refIngots = &BlueprintClass{Name: RefineryIngotsClass}
	f.ironBP = blueprint("IronOreToIngot", []BlueprintItem{ore("Iron", 20)}, ingot("Iron", 14))
	f.uraniumBP = blueprint("UraniumOreToIngot", []BlueprintItem{ore("Uranium", 100)}, ingot("Uranium", 20))
	f.stoneBP = blueprint(StoneOreToIngotBlueprint, []BlueprintItem{ore("Stone", 100)}, ingot("Iron", 3), ingot("Nickel", 2))
	f.stoneKitBP = blueprint(StoneOreToIngotBasicBlueprint, []BlueprintItem{ore("Stone", 100)}, ingot("Iron", 4))
	for _, bp := range []*Blueprint{f.ironBP, f.uraniumBP, f.stoneBP} {
		f.ingots.AddBlueprint(bp)
	}
	f.large = refinery("LargeRefinery", domain.CubeSizeLarge, f.ingots)
	f.furnace = refinery(BlastFurnaceSubtype, domain.CubeSizeLarge, f.ingots)
	f.small = refinery("SmallRefinery", domain.CubeSizeSmall, f.ingots)
	f.assembler = &domain.Assembler{ProductionBlock: ProductionBlock{
		ID:                          domain.NewDefinitionID(domain.TypeAssembler, "LargeAssembler"),
		CubeSize:                    domain.CubeSizeLarge,
		OperationalPowerConsumption: 1,
		StandbyPowerConsumption:     0.25,
	}}
	f.generator = &OxygenGenerator{
		ID:                      domain.NewDefinitionID(domain.TypeOxygenGenerator, "LargeOxygenGenerator"),
		CubeSize:                domain.CubeSizeLarge,
		IceConsumptionPerSecond: 5,
		ProducedGases: []GasInfo{
			{ID: domain.NewDefinitionID(domain.TypeGasProperties, "Oxygen"), IceToGasRatio: 10},
			{ID: domain.NewDefinitionID(domain.TypeGasProperties, "Hydrogen"), IceToGasRatio: 20},
		},
	}
	f.farm = &OxygenFarm{ID: domain.NewDefinitionID(domain.TypeOxygenFarm, "LargeBlockOxygenFarm"), CubeSize: domain.CubeSizeLarge, MaxGasOutput: 0.5}

	for _, class := range []*BlueprintClass{f.ingots, f.refIngots} {
		if err := f.reg.AddBlueprintClass(class); err != nil {
			t.Fatalf("add class: %v", err)
		}
	}
	defs := []Definition{f.ironBP, f.uraniumBP, f.stoneBP, f.stoneKitBP, f.large, f.furnace, f.small, f.assembler, f.generator, f.farm}
	for _, def := range defs {
		if err := f.reg.Add(def); err != nil {
			t.Fatalf("add %s: %v", def.DefinitionID(), err)
		}
	}
	return f
}

type memorySettingsStore struct {
	resources map[string]Settings
	existsErr error
	loadErr   error
	saveErr   error
	saves     int
}

func newMemorySettingsStore() *memorySettingsStore {
	return &memorySettingsStore{resources: make(map[string]Settings)}
}

func (m *memorySettingsStore) Exists(_ context.Context, name string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.resources[name]
	return ok, nil
}

func (m *memorySettingsStore) Load(_ context.Context, name string) (Settings, error) {
	if m.loadErr != nil {
		return Settings{}, m.loadErr
	}
	s, ok := m.resources[name]
	if !ok {
		return Settings{}, errors.New("missing")
	}
	return s.Clone(), nil
}

func (m *memorySettingsStore) Save(_ context.Context, s Settings, name string) (Settings, error) {
	m.saves++
	if m.saveErr != nil {
		return s, m.saveErr
	}
	m.resources[name] = s.Clone()
	return s, nil
}

type logEntry struct {
	level string
	msg   string
}

type captureLogger struct {
	entries []logEntry
}

func (c *captureLogger) Debug(msg string, _ ...any) { c.entries = append(c.entries, logEntry{"debug", msg}) }
func (c *captureLogger) Info(msg string, _ ...any)  { c.entries = append(c.entries, logEntry{"info", msg}) }
func (c *captureLogger) Warn(msg string, _ ...any)  { c.entries = append(c.entries, logEntry{"warn", msg}) }
func (c *captureLogger) Error(msg string, _ ...any) { c.entries = append(c.entries, logEntry{"error", msg}) }

func (c *captureLogger) has(level, msg string) bool {
	for _, e := range c.entries {
		if e.level == level && e.msg == msg {
			return true
		}
	}
	return false
}

// registryWithout rebuilds the fixture registry without the named class or
// blueprint.
func registryWithout(t *testing.T, f *fixture, name string) *registry.Registry {
	t.Helper()
	reg := registry.New()
	for _, class := range f.reg.BlueprintClasses() {
		if class.Name == name {
			continue
		}
		if err := reg.AddBlueprintClass(class); err != nil {
			t.Fatalf("add class: %v", err)
		}
	}
	for _, def := range f.reg.AllDefinitions() {
		if def.DefinitionID() == domain.BlueprintID(name) {
			continue
		}
		if err := reg.Add(def); err != nil {
			t.Fatalf("add %s: %v", def.DefinitionID(), err)
		}
	}
	return reg
}

type metricsCall struct {
	op       string
	success  bool
	duration time.Duration
}

type captureMetricsRecorder struct {
	calls []metricsCall
}

func (c *captureMetricsRecorder) Observe(_ context.Context, op string, success bool, duration time.Duration) {
	c.calls = append(c.calls, metricsCall{op: op, success: success, duration: duration})
}

func (c *captureMetricsRecorder) has(op string, success bool) bool {
	for _, call := range c.calls {
		if call.op == op && call.success == success {
			return true
		}
	}
	return false
}

type spanRecord struct {
	op  string
	err error
}

type captureTracer struct {
	started []string
	ended   []spanRecord
}

func (c *captureTracer) Start(ctx context.Context, op string) (context.Context, TraceSpan) {
	c.started = append(c.started, op)
	return ctx, &captureSpan{tracer: c, op: op}
}

func (c *captureTracer) has(op string, success bool) bool {
	for _, record := range c.ended {
		if record.op == op && (record.err == nil) == success {
			return true
		}
	}
	return false
}

type captureSpan struct {
	tracer *captureTracer
	op     string
}

func (s *captureSpan) End(err error) {
	s.tracer.ended = append(s.tracer.ended, spanRecord{op: s.op, err: err})
}
