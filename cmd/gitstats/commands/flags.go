package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitstats/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/gitstats/pkg/pipeline"
)

// registerAggregatorFlags adds one flag per configuration option of every
// registered aggregator.
func registerAggregatorFlags(cobraCmd *cobra.Command, registry *analyze.Registry) {
	all, err := registry.Select([]string{"*"})
	if err != nil {
		return
	}

	registered := make(map[string]bool)

	for _, opt := range all.ConfigurationOptions() {
		if registered[opt.Flag] || cobraCmd.Flags().Lookup(opt.Flag) != nil {
			continue
		}

		registered[opt.Flag] = true
		registerConfigFlag(cobraCmd, opt)
	}
}

// registerConfigFlag registers a single configuration option as a cobra flag.
func registerConfigFlag(cobraCmd *cobra.Command, opt pipeline.ConfigurationOption) {
	switch opt.Type {
	case pipeline.BoolConfigurationOption:
		if v, ok := opt.Default.(bool); ok {
			cobraCmd.Flags().Bool(opt.Flag, v, opt.Description)
		}
	case pipeline.IntConfigurationOption:
		if v, ok := opt.Default.(int); ok {
			cobraCmd.Flags().Int(opt.Flag, v, opt.Description)
		}
	case pipeline.StringConfigurationOption:
		if v, ok := opt.Default.(string); ok {
			cobraCmd.Flags().String(opt.Flag, v, opt.Description)
		}
	case pipeline.FloatConfigurationOption:
		if v, ok := opt.Default.(float64); ok {
			cobraCmd.Flags().Float64(opt.Flag, v, opt.Description)
		}
	}
}

// applyFlagFacts copies explicitly set option flags into facts.
func applyFlagFacts(cobraCmd *cobra.Command, options []pipeline.ConfigurationOption, facts map[string]any) {
	flags := cobraCmd.Flags()

	for _, opt := range options {
		if !flags.Changed(opt.Flag) {
			continue
		}

		var (
			value any
			err   error
		)

		switch opt.Type {
		case pipeline.BoolConfigurationOption:
			value, err = flags.GetBool(opt.Flag)
		case pipeline.IntConfigurationOption:
			value, err = flags.GetInt(opt.Flag)
		case pipeline.StringConfigurationOption:
			value, err = flags.GetString(opt.Flag)
		case pipeline.FloatConfigurationOption:
			value, err = flags.GetFloat64(opt.Flag)
		default:
			continue
		}

		if err == nil {
			facts[opt.Name] = value
		}
	}
}
