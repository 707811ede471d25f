// Package config provides a reusable loader for uplink node configuration
// files and environment variables: a base YAML file merged with an
// optional environment-specific overlay, then environment variables on
// top via viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config is the unified configuration surface the asset subsystem's
// collaborators read from. The asset core itself (package asset) takes
// no configuration directly; it operates purely on values passed to it.
type Config struct {
	Network struct {
		ID           string `mapstructure:"id" json:"id"`
		Preallocated string `mapstructure:"preallocated" json:"preallocated"`
		GenesisFile  string `mapstructure:"genesis_file" json:"genesis_file"`
	} `mapstructure:"network" json:"network"`

	Storage struct {
		DBPath string `mapstructure:"db_path" json:"db_path"`
	} `mapstructure:"storage" json:"storage"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load.
var AppConfig Config

// Load reads a base "default" YAML configuration file from configPaths,
// optionally merges an env-specific overlay (e.g. "staging.yaml"), then
// layers in environment variables, and unmarshals the result into
// AppConfig.
func Load(env string, configPaths ...string) (*Config, error) {
	viper.SetConfigName("default")
	for _, p := range configPaths {
		viper.AddConfigPath(p)
	}
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read default config: %w", err)
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("config: merge %s config: %w", env, err)
		}
	}

	viper.SetEnvPrefix("UPLINK")
	viper.AutomaticEnv()

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &AppConfig, nil
}
