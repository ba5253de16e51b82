// Package config loads engine parameter defaults and persisted CLI
// preferences with github.com/spf13/viper, backed by ~/.vstol.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pirl-unc/vstol-go/internal/matchoracle"
)

const fileName = ".vstol.yaml"

// Defaults bundles the engine-wide defaults a fresh CLI invocation falls
// back to when a flag is not supplied.
type Defaults struct {
	Match                 matchoracle.Params
	NumThreads            int
	OverlapPadding        int64
	ExcludedRegionPadding int64
	HomopolymerLength     int
}

// NewDefaults returns the engine defaults: D=100, match_all=true,
// match_types=true, min_ins=0.5, min_del=0.5, four worker threads,
// overlap padding 0, excluded-region padding 100000, and homopolymer
// length 20.
func NewDefaults() Defaults {
	return Defaults{
		Match:                 matchoracle.DefaultParams(),
		NumThreads:            4,
		OverlapPadding:        0,
		ExcludedRegionPadding: 100000,
		HomopolymerLength:     20,
	}
}

// Load initializes viper against ~/.vstol.yaml, creating no file if one
// does not yet exist (a fresh install simply uses NewDefaults()).
func Load() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("determine home directory: %w", err)
	}

	viper.SetConfigName(".vstol")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Path returns the config file viper loaded from, or the default
// ~/.vstol.yaml path if none was loaded yet.
func Path() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}
	return filepath.Join(home, fileName), nil
}

// Show renders every persisted setting as YAML.
func Show() (string, error) {
	settings := viper.AllSettings()
	if len(settings) == 0 {
		return "# no configuration set\n", nil
	}
	out, err := yaml.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(out), nil
}

// Get returns a persisted value, or nil if key is unset.
func Get(key string) any {
	return viper.Get(key)
}

// Set persists a value to the config file, creating it if necessary.
func Set(key, value string) (string, error) {
	switch value {
	case "true", "yes", "on":
		viper.Set(key, true)
	case "false", "no", "off":
		viper.Set(key, false)
	default:
		viper.Set(key, value)
	}

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		path, err := Path()
		if err != nil {
			return "", err
		}
		cfgFile = path
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return cfgFile, nil
}
