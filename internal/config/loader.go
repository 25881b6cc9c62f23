package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/gitstats/pkg/report"
)

const (
	configName      = ".gitstats"
	configType      = "yaml"
	envPrefix       = "GITSTATS"
	envKeySeparator = "_"
)

// Default values.
const (
	DefaultFormat   = report.FormatText
	DefaultWorkers  = 0
	DefaultWindow   = 0
	DefaultLogLevel = "info"
)

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("aggregators", []string{})

	viperCfg.SetDefault("output.format", DefaultFormat)
	viperCfg.SetDefault("output.metrics_file", "")

	viperCfg.SetDefault("pipeline.workers", DefaultWorkers)

	viperCfg.SetDefault("history.first_parent", false)
	viperCfg.SetDefault("history.limit", 0)
	viperCfg.SetDefault("history.since", "")
	viperCfg.SetDefault("history.newest_first", false)

	viperCfg.SetDefault("cochange.enabled", false)
	viperCfg.SetDefault("cochange.window", DefaultWindow)

	viperCfg.SetDefault("extensions.skip_vendor", false)

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.json", false)

	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.environment", "")
}
