// Package eeprom drives Microchip 25xx-series SPI serial EEPROMs.
//
// # Overview
//
// The package turns logical operations into correctly sequenced and timed
// instruction streams:
//   - Waiting for internal write cycles by polling the STATUS register
//   - Setting the write enable latch before every write
//   - Splitting writes at page boundaries
//   - Reading across page and address-space boundaries
//   - Whole-device dump, clear and image programming
//
// # Basic Usage
//
//	// User provides the bus (SPI transfers + chip select + delay)
//	bus := periphspi.New(conn, map[eeprom.ChipSelect]gpio.PinOut{0: csPin})
//
//	dev, err := eeprom.New(bus, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := dev.Write(ctx, 0x0040, []byte("hello")); err != nil {
//	    log.Fatal(err)
//	}
//	data, err := dev.ReadBytes(ctx, 0x0040, 5)
//
// # Pages
//
// A WRITE never leaves its page: bytes past the page end wrap to the start of
// the same page. MaxRun reports how much room is left. What Write does with a
// longer payload is set by WithSpanPolicy:
//
//	SpanReject   the default; fails with ErrInvalidWriteSpan
//	SpanWrap     reproduces the device wrap explicitly
//	SpanAdvance  continues into the following pages (same as WritePages)
//
// Reads have no such limit; the device wraps its address counter from the
// last address back to 0.
//
// # Write cycles
//
// After a WRITE the device is busy for a few milliseconds and ignores
// everything but RDSR. Every operation calls WaitReady first, which polls
// until the busy flag clears. The loop is unbounded unless WithMaxPolls is
// set, in which case it fails with ErrDeviceUnresponsive.
//
// # Error Handling
//
// The package provides structured error types, each matching a sentinel
// through errors.Is:
//   - InvalidAddressError (ErrInvalidAddress): address outside the array
//   - InvalidWriteSpanError (ErrInvalidWriteSpan): write overflows its page
//   - DeviceUnresponsiveError (ErrDeviceUnresponsive): busy flag never cleared
//   - TransportError (ErrTransport): the bus failed; unwraps to the bus error
//   - BulkError: a dump, clear or fill stopped early; carries the count done
//   - VerifyMismatchError: device contents differ from an image
//
// Failed transfers are never retried.
//
// # Concurrency
//
// A Device is not safe for concurrent use, and devices sharing a bus must not
// be used concurrently either: chip select is the only thing telling them
// apart. Wrap access in a mutex if several goroutines need the bus.
//
// # Hardware Independence
//
// This package does NOT configure hardware. The Bus interface is the whole
// contract with the host:
//
//	type Bus interface {
//	    Transfer(tx []byte) ([]byte, error)
//	    Select(cs ChipSelect) error
//	    Deselect(cs ChipSelect) error
//	    Delay(d time.Duration)
//	}
//
// Chip-select setup and deselect times are applied by the Device through
// Delay (see WithSelectSetup and WithDeselectTime); Bus implementations do not
// need to pad edges themselves.
package eeprom
