// internal/config/normalize.go
package config

import (
	"fmt"
	"time"

	"github.com/moffa90/go-eeprom25/eeprom"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	for i := range cfg.Devices {
		d := &cfg.Devices[i]

		if d.Name == "" {
			d.Name = fmt.Sprintf("eeprom%d", d.ChipSelect)
		}

		// Geometry stays on the part; a normalized entry still validates.
		if d.Part == "" && d.Size == 0 {
			d.Part = eeprom.Part25xx320A.Name
		}
		if d.Part != "" {
			if p, ok := eeprom.LookupPart(d.Part); ok {
				d.Part = p.Name
			}
		}

		if d.SpanPolicy == "" {
			d.SpanPolicy = eeprom.SpanReject.String()
		}
	}
}

// Options turns a normalized device entry into driver options.
func (d *DeviceConfig) Options() []eeprom.Option {
	opts := []eeprom.Option{eeprom.WithPart(d.Geometry())}

	if policy, err := ParseSpanPolicy(d.SpanPolicy); err == nil {
		opts = append(opts, eeprom.WithSpanPolicy(policy))
	}
	if d.MaxPolls > 0 {
		opts = append(opts, eeprom.WithMaxPolls(d.MaxPolls))
	}
	if d.SelectSetupNs > 0 {
		opts = append(opts, eeprom.WithSelectSetup(time.Duration(d.SelectSetupNs)*time.Nanosecond))
	}
	return opts
}

// Geometry returns the resolved part of a normalized device entry.
func (d *DeviceConfig) Geometry() eeprom.Part {
	if p, ok := eeprom.LookupPart(d.Part); ok {
		return p
	}
	return eeprom.Part{Size: d.Size, PageSize: d.PageSize}
}
