// Package registry provides an in-memory DefinitionRegistry backed by a YAML
// catalog. Hosts embedding the patcher in a real game supply their own
// registry; this one serves the CLI and tests.
package registry

import (
	"fmt"

	"badrefining/pkg/domain"
)

// Registry is an ordered, in-memory definition registry. It is not safe for
// concurrent mutation.
type Registry struct {
	definitions []domain.Definition
	byID        map[domain.DefinitionID]domain.Definition
	blueprints  []*domain.Blueprint
	classes     map[string]*domain.BlueprintClass
	classOrder  []string
}

var _ domain.DefinitionRegistry = (*Registry)(nil)

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		byID:    make(map[domain.DefinitionID]domain.Definition),
		classes: make(map[string]*domain.BlueprintClass),
	}
}

// Add appends a definition. Identifiers must be unique.
func (r *Registry) Add(def domain.Definition) error {
	if def == nil {
		return fmt.Errorf("definition cannot be nil")
	}
	id := def.DefinitionID()
	if id.SubtypeName == "" {
		return fmt.Errorf("definition %s: subtype required", id.TypeID)
	}
	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("definition %s already registered", id)
	}
	r.byID[id] = def
	r.definitions = append(r.definitions, def)
	if bp, ok := def.(*domain.Blueprint); ok {
		r.blueprints = append(r.blueprints, bp)
	}
	return nil
}

// AddBlueprintClass registers a named class. Class names must be unique.
func (r *Registry) AddBlueprintClass(class *domain.BlueprintClass) error {
	if class == nil || class.Name == "" {
		return fmt.Errorf("blueprint class name required")
	}
	if _, exists := r.classes[class.Name]; exists {
		return fmt.Errorf("blueprint class %s already registered", class.Name)
	}
	r.classes[class.Name] = class
	r.classOrder = append(r.classOrder, class.Name)
	return nil
}

// Definition returns the record registered under id.
func (r *Registry) Definition(id domain.DefinitionID) (domain.Definition, bool) {
	def, ok := r.byID[id]
	return def, ok
}

// AllDefinitions returns every record in registration order.
func (r *Registry) AllDefinitions() []domain.Definition {
	out := make([]domain.Definition, len(r.definitions))
	copy(out, r.definitions)
	return out
}

// BlueprintDefinitions returns every blueprint in registration order.
func (r *Registry) BlueprintDefinitions() []*domain.Blueprint {
	out := make([]*domain.Blueprint, len(r.blueprints))
	copy(out, r.blueprints)
	return out
}

// BlueprintDefinition looks up a blueprint by identifier.
func (r *Registry) BlueprintDefinition(id domain.DefinitionID) (*domain.Blueprint, bool) {
	def, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	bp, ok := def.(*domain.Blueprint)
	return bp, ok
}

// BlueprintClass looks up a class by name.
func (r *Registry) BlueprintClass(name string) (*domain.BlueprintClass, bool) {
	class, ok := r.classes[name]
	return class, ok
}

// BlueprintClasses returns every class in registration order.
func (r *Registry) BlueprintClasses() []*domain.BlueprintClass {
	out := make([]*domain.BlueprintClass, 0, len(r.classOrder))
	for _, name := range r.classOrder {
		out = append(out, r.classes[name])
	}
	return out
}
