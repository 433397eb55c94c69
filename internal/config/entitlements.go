package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// EntitlementsConfig is the on-disk form of the subscription entitlement
// table. Any section left empty keeps the built-in default.
//
//	entitled_statuses: [active, trialing]
//	features:
//	  engine: [engine, premium]
//	aliases:
//	  full-program: engine
type EntitlementsConfig struct {
	EntitledStatuses []string            `mapstructure:"entitled_statuses"`
	Features         map[string][]string `mapstructure:"features"`
	Aliases          map[string]string   `mapstructure:"aliases"`
}

// LoadEntitlements reads an entitlement table from a YAML or JSON file.
// An empty path returns nil so callers fall back to defaults.
func LoadEntitlements(path string) (*EntitlementsConfig, error) {
	if path == "" {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read entitlements file %s: %w", path, err)
	}

	var ec EntitlementsConfig
	if err := v.Unmarshal(&ec); err != nil {
		return nil, fmt.Errorf("failed to parse entitlements file %s: %w", path, err)
	}

	return &ec, nil
}
