package core

import "strings"

// ResolveYieldFactor returns the factor of the first override whose blueprint
// name equals name under simple case folding, or defaultFactor when none does.
// Duplicate names are allowed; table order decides.
func ResolveYieldFactor(name string, defaultFactor float32, table []YieldFactorOverride) float32 {
	for _, override := range table {
		if strings.EqualFold(override.BlueprintName, name) {
			return override.YieldFactor
		}
	}
	return defaultFactor
}
