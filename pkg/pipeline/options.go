// Package pipeline describes the options that aggregators accept, so the
// CLI and the config loader can expose them without knowing each aggregator.
package pipeline

import "fmt"

// ConfigurationOptionType is the value type of a ConfigurationOption.
type ConfigurationOptionType int

const (
	// BoolConfigurationOption reflects the boolean value type.
	BoolConfigurationOption ConfigurationOptionType = iota
	// IntConfigurationOption reflects the integer value type.
	IntConfigurationOption
	// StringConfigurationOption reflects the string value type.
	StringConfigurationOption
	// FloatConfigurationOption reflects a floating point value type.
	FloatConfigurationOption
)

// String returns the type name shown in CLI help. Booleans have none.
func (opt ConfigurationOptionType) String() string {
	switch opt {
	case BoolConfigurationOption:
		return ""
	case IntConfigurationOption:
		return "int"
	case StringConfigurationOption:
		return "string"
	case FloatConfigurationOption:
		return "float"
	default:
		return fmt.Sprintf("ConfigurationOptionType(%d)", int(opt))
	}
}

// ConfigurationOption describes one aggregator setting.
type ConfigurationOption struct {
	// Default is the value used when neither a flag nor a fact is set.
	Default any
	// Name is the fact key, also the dotted config key, e.g. "CoChange.Window".
	Name string
	// Description is the help text.
	Description string
	// Flag is the CLI token without the leading "--".
	Flag string
	// Type is the kind of the value.
	Type ConfigurationOptionType
}

// FormatDefault renders the default value for CLI help.
func (opt ConfigurationOption) FormatDefault() string {
	if opt.Type == StringConfigurationOption {
		return fmt.Sprintf("%q", opt.Default)
	}

	return fmt.Sprint(opt.Default)
}

// Defaults returns the facts map holding every option's default.
func Defaults(options []ConfigurationOption) map[string]any {
	facts := make(map[string]any, len(options))
	for _, opt := range options {
		facts[opt.Name] = opt.Default
	}

	return facts
}
