package sim

import (
	"fmt"
	"time"

	"github.com/moffa90/go-eeprom25/eeprom"
)

// Bus puts several simulated devices on one shared bus. Transfers go to the
// device whose line is selected; with nothing selected SO floats high.
type Bus struct {
	devices  map[eeprom.ChipSelect]*Device
	selected *Device
}

// NewBus creates a bus carrying the given devices. Their lines must differ.
func NewBus(devices ...*Device) (*Bus, error) {
	b := &Bus{devices: make(map[eeprom.ChipSelect]*Device, len(devices))}
	for _, d := range devices {
		if _, dup := b.devices[d.Line()]; dup {
			return nil, fmt.Errorf("chip select %d used twice", d.Line())
		}
		b.devices[d.Line()] = d
	}
	return b, nil
}

// Device returns the device on line cs, or nil.
func (b *Bus) Device(cs eeprom.ChipSelect) *Device {
	return b.devices[cs]
}

// Select implements eeprom.Bus. Only one line may be active at a time.
func (b *Bus) Select(cs eeprom.ChipSelect) error {
	d, ok := b.devices[cs]
	if !ok {
		return fmt.Errorf("no device on chip select %d", cs)
	}
	if b.selected != nil {
		return fmt.Errorf("chip select %d asserted while %d is active", cs, b.selected.Line())
	}
	if err := d.Select(cs); err != nil {
		return err
	}
	b.selected = d
	return nil
}

// Deselect implements eeprom.Bus.
func (b *Bus) Deselect(cs eeprom.ChipSelect) error {
	d, ok := b.devices[cs]
	if !ok {
		return fmt.Errorf("no device on chip select %d", cs)
	}
	if b.selected == d {
		b.selected = nil
	}
	return d.Deselect(cs)
}

// Transfer implements eeprom.Bus.
func (b *Bus) Transfer(tx []byte) ([]byte, error) {
	if b.selected == nil {
		rx := make([]byte, len(tx))
		for i := range rx {
			rx[i] = idleOut
		}
		return rx, nil
	}
	return b.selected.Transfer(tx)
}

// Delay implements eeprom.Bus. The delay is counted on every device.
func (b *Bus) Delay(d time.Duration) {
	for _, dev := range b.devices {
		dev.Delay(d)
	}
}
