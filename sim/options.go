package sim

import "github.com/moffa90/go-eeprom25/eeprom"

// Config holds the simulator configuration.
type Config struct {
	// Part is the simulated geometry
	Part eeprom.Part

	// Line is the chip-select line the device answers to
	Line eeprom.ChipSelect

	// BusyPolls is how many status reads report WIP after each write cycle
	BusyPolls int

	// Contents is copied into the array at address 0 (optional)
	Contents []byte
}

func defaultConfig() Config {
	return Config{
		Part:      eeprom.Part25xx320A,
		BusyPolls: 1,
	}
}

// Option is a functional option for configuring the simulator.
type Option func(*Config)

// WithPart sets the simulated geometry.
func WithPart(part eeprom.Part) Option {
	return func(c *Config) {
		c.Part = part
	}
}

// WithLine sets the chip-select line.
func WithLine(cs eeprom.ChipSelect) Option {
	return func(c *Config) {
		c.Line = cs
	}
}

// WithBusyPolls sets how many status reads report WIP after a write.
// Default is 1.
func WithBusyPolls(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.BusyPolls = n
		}
	}
}

// WithContents preloads the array.
func WithContents(data []byte) Option {
	return func(c *Config) {
		c.Contents = data
	}
}
