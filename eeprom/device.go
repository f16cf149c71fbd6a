package eeprom

import (
	"fmt"
	"time"
)

// ChipSelect identifies the chip-select line a device answers to. Devices
// sharing a bus differ only by this line.
type ChipSelect uint8

// Bus is the transport a Device drives. Implementations are provided by the
// host: see package periphspi for real hardware and package sim for an
// in-memory device.
//
// All methods block until complete. Bus implementations do not need to be
// safe for concurrent use; callers must serialize access to a bus and to
// every Device on it.
type Bus interface {
	// Transfer clocks tx out and returns the bytes clocked in at the same
	// time. The result has the same length as tx. Transfer never touches
	// chip select.
	Transfer(tx []byte) ([]byte, error)

	// Select drives the chip-select line active (low).
	Select(cs ChipSelect) error

	// Deselect drives the chip-select line inactive (high).
	Deselect(cs ChipSelect) error

	// Delay pauses for at least d.
	Delay(d time.Duration)
}

// Device is a handle on one 25xx EEPROM. Its geometry is fixed at
// construction.
//
// Device is not safe for concurrent use: a chip-select window is a critical
// section and two interleaved windows corrupt the command stream.
type Device struct {
	bus    Bus
	cs     ChipSelect
	config Config
}

// New creates a Device on the given bus and chip-select line.
// Without options the device is a 25xx320A (4096 bytes, 32-byte pages).
//
// Example:
//
//	dev, err := eeprom.New(bus, 0,
//	    eeprom.WithPart(eeprom.Part25xx640A),
//	    eeprom.WithMaxPolls(10000),
//	)
func New(bus Bus, cs ChipSelect, opts ...Option) (*Device, error) {
	if bus == nil {
		return nil, fmt.Errorf("bus cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Part.validate(); err != nil {
		return nil, err
	}

	return &Device{
		bus:    bus,
		cs:     cs,
		config: cfg,
	}, nil
}

// Part returns the device geometry.
func (d *Device) Part() Part {
	return d.config.Part
}

// Size returns the size of the address space in bytes.
func (d *Device) Size() int {
	return d.config.Part.Size
}

// PageSize returns the write page size in bytes.
func (d *Device) PageSize() int {
	return d.config.Part.PageSize
}

// LastAddress returns the highest valid address.
func (d *Device) LastAddress() uint16 {
	return uint16(d.config.Part.Size - 1)
}

// ChipSelect returns the chip-select line of the device.
func (d *Device) ChipSelect() ChipSelect {
	return d.cs
}

// transaction runs one chip-select window: select, transfer tx, deselect.
// Deselect is attempted even when the transfer fails.
func (d *Device) transaction(op string, tx []byte) ([]byte, error) {
	if err := d.selectChip(); err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	rx, txErr := d.bus.Transfer(tx)
	csErr := d.deselectChip()

	if txErr != nil {
		return nil, &TransportError{Op: op, Err: txErr}
	}
	if csErr != nil {
		return nil, &TransportError{Op: op, Err: csErr}
	}

	return rx, nil
}

func (d *Device) selectChip() error {
	d.settle()
	if err := d.bus.Select(d.cs); err != nil {
		return err
	}
	d.settle()
	return nil
}

func (d *Device) deselectChip() error {
	d.settle()
	if err := d.bus.Deselect(d.cs); err != nil {
		return err
	}
	d.settle()
	return nil
}

// settle holds the chip-select setup/hold time around an edge.
func (d *Device) settle() {
	if d.config.SelectSetup > 0 {
		d.bus.Delay(d.config.SelectSetup)
	}
}

// reportProgress calls the progress callback if configured.
func (d *Device) reportProgress(progress Progress) {
	if d.config.ProgressCallback != nil {
		d.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (d *Device) logDebug(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (d *Device) logInfo(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (d *Device) logError(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Error(msg, keysAndValues...)
	}
}
