// Package periphspi connects eeprom devices to real hardware through
// periph.io.
//
// The SPI port carries data only. Every device gets its own chip-select line
// on a GPIO pin, so several EEPROMs can share one port and the driver keeps
// control of the select and deselect timing.
//
// Basic usage:
//
//	bus, err := periphspi.Open(periphspi.Config{
//	    Port:      "/dev/spidev0.0",
//	    Frequency: 1 * physic.MegaHertz,
//	    ChipSelects: map[eeprom.ChipSelect]string{
//	        0: "GPIO8",
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bus.Close()
//
//	dev, err := eeprom.New(bus, 0)
package periphspi
