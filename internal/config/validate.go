// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/moffa90/go-eeprom25/eeprom"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if cfg.Bus.SpeedHz < 0 {
		return fmt.Errorf("bus: speed_hz must not be negative, got %d", cfg.Bus.SpeedHz)
	}

	if len(cfg.Devices) == 0 {
		return fmt.Errorf("at least one device is required")
	}

	names := make(map[string]int)
	lines := make(map[uint8]int)

	for i, d := range cfg.Devices {
		label := d.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}

		// ------------------------------------------------------------
		// IDENTITY
		// ------------------------------------------------------------

		// Unnamed devices are later named eeprom<cs>; that name must be free too.
		name := d.Name
		if name == "" {
			name = fmt.Sprintf("eeprom%d", d.ChipSelect)
		}
		if prev, exists := names[name]; exists {
			return fmt.Errorf("device %q: name already used by device #%d", name, prev)
		}
		names[name] = i

		if prev, exists := lines[d.ChipSelect]; exists {
			return fmt.Errorf("device %s: chip_select %d already used by device #%d",
				label, d.ChipSelect, prev)
		}
		lines[d.ChipSelect] = i

		if !cfg.Bus.Simulate && d.Pin == "" {
			return fmt.Errorf("device %s: pin is required unless the bus is simulated", label)
		}

		// ------------------------------------------------------------
		// GEOMETRY
		// ------------------------------------------------------------

		switch {
		case d.Part != "":
			if _, ok := eeprom.LookupPart(d.Part); !ok {
				return fmt.Errorf("device %s: unknown part %q", label, d.Part)
			}
			if d.Size != 0 || d.PageSize != 0 {
				return fmt.Errorf("device %s: size/page_size conflict with part %q", label, d.Part)
			}
		case d.Size == 0 && d.PageSize == 0:
			// default part
		default:
			if d.PageSize <= 0 || d.PageSize&(d.PageSize-1) != 0 {
				return fmt.Errorf("device %s: page_size must be a power of two, got %d", label, d.PageSize)
			}
			if d.Size <= 0 || d.Size > 1<<16 || d.Size%d.PageSize != 0 {
				return fmt.Errorf("device %s: size %d must be a multiple of page_size up to 65536",
					label, d.Size)
			}
		}

		// ------------------------------------------------------------
		// BEHAVIOUR
		// ------------------------------------------------------------

		if _, err := ParseSpanPolicy(d.SpanPolicy); err != nil {
			return fmt.Errorf("device %s: %w", label, err)
		}
		if d.MaxPolls < 0 {
			return fmt.Errorf("device %s: max_polls must not be negative", label)
		}
		if d.SelectSetupNs < 0 {
			return fmt.Errorf("device %s: select_setup_ns must not be negative", label)
		}
	}

	return nil
}

// ParseSpanPolicy converts a span_policy value. Empty means reject.
func ParseSpanPolicy(s string) (eeprom.SpanPolicy, error) {
	switch s {
	case "", "reject":
		return eeprom.SpanReject, nil
	case "wrap":
		return eeprom.SpanWrap, nil
	case "advance":
		return eeprom.SpanAdvance, nil
	default:
		return 0, fmt.Errorf("unknown span_policy %q (want reject, wrap or advance)", s)
	}
}
