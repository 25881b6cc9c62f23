package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/gitstats/pkg/pipeline"
)

func TestConfigurationOptionType_String(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pipeline.BoolConfigurationOption.String())
	assert.Equal(t, "int", pipeline.IntConfigurationOption.String())
	assert.Equal(t, "string", pipeline.StringConfigurationOption.String())
	assert.Equal(t, "float", pipeline.FloatConfigurationOption.String())
	assert.Equal(t, "ConfigurationOptionType(9)", pipeline.ConfigurationOptionType(9).String())
}

func TestConfigurationOption_FormatDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"x"`, pipeline.ConfigurationOption{Type: pipeline.StringConfigurationOption, Default: "x"}.FormatDefault())
	assert.Equal(t, "10", pipeline.ConfigurationOption{Type: pipeline.IntConfigurationOption, Default: 10}.FormatDefault())
	assert.Equal(t, "true", pipeline.ConfigurationOption{Type: pipeline.BoolConfigurationOption, Default: true}.FormatDefault())
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	options := []pipeline.ConfigurationOption{
		{Name: "CoChange.Window", Default: 10, Type: pipeline.IntConfigurationOption},
		{Name: "Extensions.SkipVendor", Default: false, Type: pipeline.BoolConfigurationOption},
	}

	assert.Equal(t, map[string]any{"CoChange.Window": 10, "Extensions.SkipVendor": false}, pipeline.Defaults(options))
}
