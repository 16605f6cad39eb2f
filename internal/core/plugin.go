package core

// Plugin is a bundle of patch families installed into a session before Load.
type Plugin interface {
	Name() string
	Version() string
	Register(registry *PluginRegistry) error
}

// PluginRegistry accumulates plugin contributions during registration.
type PluginRegistry struct {
	patches []Patch
	names   map[string]struct{}
}

// NewPluginRegistry constructs a plugin registry.
func NewPluginRegistry() *PluginRegistry {
	return &PluginRegistry{names: make(map[string]struct{})}
}

// RegisterPatch appends a patch contributed by the plugin. Nil patches and
// repeated names are ignored.
func (r *PluginRegistry) RegisterPatch(patch Patch) {
	if patch == nil {
		return
	}
	if _, dup := r.names[patch.Name()]; dup {
		return
	}
	r.names[patch.Name()] = struct{}{}
	r.patches = append(r.patches, patch)
}

// Patches returns a copy of registered patches in registration order.
func (r *PluginRegistry) Patches() []Patch {
	out := make([]Patch, len(r.patches))
	copy(out, r.patches)
	return out
}

// PluginMetadata describes an installed plugin.
type PluginMetadata struct {
	Name    string
	Version string
	Patches []string
}
