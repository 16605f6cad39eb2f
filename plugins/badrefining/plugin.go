// Package badrefining bundles the built-in patch families as a session plugin.
package badrefining

import "badrefining/internal/core"

// Plugin registers the six balance patches in their required order.
type Plugin struct{}

// New constructs the plugin.
func New() Plugin {
	return Plugin{}
}

// Name returns the plugin identifier.
func (Plugin) Name() string { return "badrefining" }

// Version returns the plugin semantic version.
func (Plugin) Version() string { return "1.0.0" }

// Register contributes the built-in patches.
func (Plugin) Register(registry *core.PluginRegistry) error {
	for _, patch := range core.DefaultPatches() {
		registry.RegisterPatch(patch)
	}
	return nil
}
