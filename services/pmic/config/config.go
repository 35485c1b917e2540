// Package config loads the pmic-sampler YAML file.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"npm1300-go/services/pmic"
)

// BusSim selects the in-memory simulator instead of a Linux I²C bus.
const BusSim = "sim"

type Config struct {
	Bus      string   `yaml:"bus"`       // "sim" or a periph I²C bus name, e.g. "1" or "/dev/i2c-1"
	LogLevel string   `yaml:"log_level"` // "debug", "info" (default), "warn", "error"
	Devices  []Device `yaml:"devices"`
}

// Device describes one nPM1300 on the bus.
type Device struct {
	ID     string      `yaml:"id"`
	Params pmic.Params `yaml:"params"`
}

// Load reads and decodes path. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes a YAML document and applies defaults.
func Parse(b []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	Normalize(&cfg)
	return &cfg, nil
}

// Normalize fills defaults. It must not reject anything.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Bus == "" {
		cfg.Bus = BusSim
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Validate checks configuration correctness without mutating it.
func Validate(cfg *Config) error {
	if len(cfg.Devices) == 0 {
		return fmt.Errorf("config: no devices")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", cfg.LogLevel)
	}
	ids := map[string]bool{}
	addrs := map[int]string{}
	for i, d := range cfg.Devices {
		if d.ID == "" {
			return fmt.Errorf("config: devices[%d]: id required", i)
		}
		if ids[d.ID] {
			return fmt.Errorf("config: duplicate device id %q", d.ID)
		}
		ids[d.ID] = true
		if err := d.Params.Validate(); err != nil {
			return fmt.Errorf("config: device %q: %w", d.ID, err)
		}
		addr := d.Params.Addr
		if addr == 0 {
			addr = 0x6B
		}
		if prev, dup := addrs[addr]; dup {
			return fmt.Errorf("config: devices %q and %q share address %#x", prev, d.ID, addr)
		}
		addrs[addr] = d.ID
	}
	return nil
}
