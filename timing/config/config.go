// Package config holds the JSON-configurable knobs for a simulation run.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// SimConfig holds the parameters that govern how long a simulation is
// allowed to run before it is considered non-terminating.
type SimConfig struct {
	// MaxCycles bounds how many cycles Run will tick before giving up on a
	// program that never reaches EBREAK. Default: 1,000,000.
	MaxCycles uint64 `json:"max_cycles"`

	// ResetPC is the program counter fetch starts from. Default: 0.
	ResetPC uint32 `json:"reset_pc"`
}

// DefaultSimConfig returns a SimConfig with the simulator's default values.
func DefaultSimConfig() *SimConfig {
	return &SimConfig{
		MaxCycles: 1_000_000,
		ResetPC:   0,
	}
}

// LoadConfig reads a SimConfig from a JSON file, starting from the
// defaults so a partial file only overrides the fields it sets.
func LoadConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sim config file: %w", err)
	}

	cfg := DefaultSimConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sim config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes a SimConfig to a JSON file.
func (c *SimConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sim config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sim config file: %w", err)
	}

	return nil
}

// Validate reports whether the config's values are usable.
func (c *SimConfig) Validate() error {
	if c.MaxCycles == 0 {
		return fmt.Errorf("max_cycles must be > 0")
	}
	if c.ResetPC%4 != 0 {
		return fmt.Errorf("reset_pc must be word-aligned")
	}
	return nil
}

// Clone returns a deep copy of the SimConfig.
func (c *SimConfig) Clone() *SimConfig {
	clone := *c
	return &clone
}
