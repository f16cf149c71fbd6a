package protocol

import "time"

// Instruction set shared by the Microchip 25xx series (25LC320A datasheet, Table 2-1).
const (
	// CmdRead reads data starting at the selected address
	CmdRead = 0x03

	// CmdWrite writes data starting at the selected address
	CmdWrite = 0x02

	// CmdWriteDisable resets the write enable latch
	CmdWriteDisable = 0x04

	// CmdWriteEnable sets the write enable latch
	CmdWriteEnable = 0x06

	// CmdReadStatus reads the STATUS register
	CmdReadStatus = 0x05

	// CmdWriteStatus writes the STATUS register
	CmdWriteStatus = 0x01
)

// STATUS register bits.
const (
	// StatusWIP is set while an internal write cycle is in progress (read-only)
	StatusWIP = 0x01

	// StatusWEL is set while the write enable latch is set (read-only)
	StatusWEL = 0x02

	// StatusBP0 is block protection bit 0
	StatusBP0 = 0x04

	// StatusBP1 is block protection bit 1
	StatusBP1 = 0x08

	// StatusWritableMask selects the bits WRSR is allowed to change
	StatusWritableMask = StatusBP0 | StatusBP1
)

// Frame layout.
const (
	// AddressSize is the number of address bytes following a READ or WRITE opcode
	AddressSize = 2

	// HeaderSize is opcode plus address
	HeaderSize = 1 + AddressSize

	// StatusFrameSize is RDSR plus one dummy byte
	StatusFrameSize = 2

	// DummyByte is clocked out while the device drives SO
	DummyByte = 0x00
)

// Chip-select timing. The bus speeds these parts run at leave very little
// margin between back-to-back transactions, so the driver inserts explicit
// delays rather than relying on instruction timing.
const (
	// MinSelectSetup is held before and after every chip-select edge
	// (tCSS/tCSH, 100 ns at 2.5 V).
	MinSelectSetup = 100 * time.Nanosecond

	// MinDeselectTime is held with CS high between transactions so the
	// device sees a clean deassertion (write enable latches on this edge).
	MinDeselectTime = 1 * time.Microsecond
)
