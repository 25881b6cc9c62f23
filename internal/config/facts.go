package config

import (
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/cochange"
	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/extensions"
)

// ApplyToFacts merges config values into the aggregator facts map.
// Zero numeric values mean "use the aggregator default" and are skipped.
// Booleans are always applied because false is a meaningful override.
func (c *Config) ApplyToFacts(facts map[string]any) {
	if c.CoChange.Window > 0 {
		facts[cochange.ConfigWindow] = c.CoChange.Window
	}

	facts[extensions.ConfigSkipVendor] = c.Extensions.SkipVendor
}
