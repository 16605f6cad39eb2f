package domain

import "context"

// DefinitionRegistry owns and indexes every balance definition. The session
// only reads through it and calls BlueprintClass.AddBlueprint; records are
// never removed or replaced wholesale.
type DefinitionRegistry interface {
	// AllDefinitions enumerates every record, blueprints included.
	AllDefinitions() []Definition
	// BlueprintDefinitions enumerates blueprint records only.
	BlueprintDefinitions() []*Blueprint
	// BlueprintDefinition looks up one blueprint by exact identifier.
	BlueprintDefinition(id DefinitionID) (*Blueprint, bool)
	// BlueprintClass looks up a named blueprint class.
	BlueprintClass(name string) (*BlueprintClass, bool)
}

// SettingsStore persists Settings under a named resource.
type SettingsStore interface {
	// Exists reports whether the named resource is present.
	Exists(ctx context.Context, name string) (bool, error)
	// Load reads and decodes the named resource.
	Load(ctx context.Context, name string) (Settings, error)
	// Save encodes and writes settings, returning them unchanged even when
	// the write fails.
	Save(ctx context.Context, settings Settings, name string) (Settings, error)
}
