// Package protocol implements the instruction framing of Microchip 25xx-series
// SPI serial EEPROMs (25AA/25LC 080 through 256).
//
// This package only builds and parses byte frames. It never touches a bus;
// chip select, timing and sequencing live in package eeprom.
//
// # Protocol Overview
//
// Every transaction is framed by chip select (CS low … CS high). Multi-byte
// fields are big-endian:
//
//	Read:         [0x03][ADDR_H][ADDR_L][DUMMY...]   → data on SO
//	Write:        [0x02][ADDR_H][ADDR_L][DATA...]
//	Write enable: [0x06]
//	Write disable:[0x04]
//	Read status:  [0x05][DUMMY]                      → STATUS on SO
//	Write status: [0x01][STATUS]
//
// STATUS register:
//
//	bit 0  WIP  write in progress
//	bit 1  WEL  write enable latch
//	bit 2  BP0  block protection
//	bit 3  BP1  block protection
//
// # Command Builders
//
//	frame := protocol.BuildReadStatusCmd()
//	frame, err := protocol.BuildWriteCmd(0x0040, data)
//	frame, err := protocol.BuildReadCmd(0x0040, 16)
//
// # Response Parsers
//
// The bus is full duplex, so the response to a frame is exactly as long as
// the frame:
//
//	status, err := protocol.ParseStatusResponse(rx)
//	if status.WriteInProgress() {
//	    // poll again
//	}
//
//	data, err := protocol.ParseReadResponse(rx, 16)
//
// # Timing
//
// MinSelectSetup and MinDeselectTime name the chip-select timing the driver
// has to honour between edges and between transactions.
//
// # Reference
//
// Microchip 25AA320A/25LC320A 32K SPI Bus Serial EEPROM, DS21831.
package protocol
