package badrefining

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"badrefining/internal/core"
	"badrefining/internal/registry"
	"badrefining/pkg/domain"
)

type memoryStore struct {
	saved map[string]domain.Settings
}

func (m *memoryStore) Exists(_ context.Context, name string) (bool, error) {
	_, ok := m.saved[name]
	return ok, nil
}

func (m *memoryStore) Load(_ context.Context, name string) (domain.Settings, error) {
	return m.saved[name], nil
}

func (m *memoryStore) Save(_ context.Context, s domain.Settings, name string) (domain.Settings, error) {
	m.saved[name] = s
	return s, nil
}

func TestPluginRegistersDefaultPatchesInOrder(t *testing.T) {
	registry := core.NewPluginRegistry()
	if err := New().Register(registry); err != nil {
		t.Fatalf("register: %v", err)
	}
	var names []string
	for _, p := range registry.Patches() {
		names = append(names, p.Name())
	}
	want := []string{
		core.PatchRefineryBlueprintClass,
		core.PatchProductionBlockPower,
		core.PatchOxygenGeneratorIce,
		core.PatchOxygenFarmOutput,
		core.PatchLargeRefineryYield,
		core.PatchSmallRefineryYield,
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("patch order mismatch (-want +got):\n%s", diff)
	}
}

func TestPluginDrivesSession(t *testing.T) {
	reg, err := registry.DefaultCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	session := core.NewSession(reg, &memoryStore{saved: map[string]domain.Settings{}}, core.WithPatchEngine(core.NewPatchEngine()))
	meta, err := session.InstallPlugin(New())
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if meta.Name != "badrefining" || meta.Version != "1.0.0" || len(meta.Patches) != 6 {
		t.Fatalf("unexpected metadata %+v", meta)
	}

	report, err := session.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(report.Patches) != 6 || report.Modifications == 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	undone, err := session.Unload(context.Background())
	if err != nil {
		t.Fatalf("unload: %v", err)
	}
	if undone != report.Modifications {
		t.Fatalf("expected %d undone, got %d", report.Modifications, undone)
	}
}
