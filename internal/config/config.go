// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Bus     BusConfig      `yaml:"bus"`
	Devices []DeviceConfig `yaml:"devices"`
}

// ---- BUS ----

type BusConfig struct {
	// Port is the spireg port name; empty picks the first port
	Port    string `yaml:"port"`
	SpeedHz int64  `yaml:"speed_hz"`

	// Simulate replaces the hardware with in-memory devices
	Simulate bool `yaml:"simulate"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Name       string `yaml:"name"`
	Part       string `yaml:"part"`
	ChipSelect uint8  `yaml:"chip_select"`
	Pin        string `yaml:"pin"` // gpioreg name driving chip select

	// Custom geometry, used when part is empty
	Size     int `yaml:"size"`
	PageSize int `yaml:"page_size"`

	SpanPolicy    string `yaml:"span_policy"` // reject | wrap | advance
	MaxPolls      int    `yaml:"max_polls"`
	SelectSetupNs int    `yaml:"select_setup_ns"`
}

// Load reads a YAML configuration file. The result is validated and
// normalized.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes, validates and normalizes a YAML configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	Normalize(&cfg)
	return &cfg, nil
}

// Default is the configuration used without a config file: one simulated
// 25LC320A on chip select 0.
func Default() *Config {
	cfg := &Config{
		Bus: BusConfig{Simulate: true},
		Devices: []DeviceConfig{
			{Name: "eeprom0", Part: "25LC320A"},
		},
	}
	Normalize(cfg)
	return cfg
}

// Device returns the device with the given name. An empty name returns the
// first device.
func (c *Config) Device(name string) (*DeviceConfig, error) {
	if len(c.Devices) == 0 {
		return nil, fmt.Errorf("no devices configured")
	}
	if name == "" {
		return &c.Devices[0], nil
	}
	for i := range c.Devices {
		if c.Devices[i].Name == name {
			return &c.Devices[i], nil
		}
	}
	return nil, fmt.Errorf("device %q not found", name)
}
