package protocol

import (
	"encoding/binary"
	"fmt"
)

// BuildWriteEnableCmd constructs a WREN frame.
//
// Frame structure:
//
//	[WREN]
//
// CS must be raised after this byte for the latch to set.
func BuildWriteEnableCmd() []byte {
	return []byte{CmdWriteEnable}
}

// BuildWriteDisableCmd constructs a WRDI frame.
//
// Frame structure:
//
//	[WRDI]
func BuildWriteDisableCmd() []byte {
	return []byte{CmdWriteDisable}
}

// BuildReadStatusCmd constructs an RDSR frame. The status register is shifted
// out during the dummy byte.
//
// Frame structure:
//
//	[RDSR][DUMMY]
func BuildReadStatusCmd() []byte {
	return []byte{CmdReadStatus, DummyByte}
}

// BuildWriteStatusCmd constructs a WRSR frame. Only the block protection bits
// are writable; the rest are masked off.
//
// Frame structure:
//
//	[WRSR][STATUS]
func BuildWriteStatusCmd(s Status) []byte {
	return []byte{CmdWriteStatus, byte(s) & StatusWritableMask}
}

// BuildWriteCmd constructs a WRITE frame carrying the whole payload, so the
// caller can clock it out in a single transfer.
//
// Frame structure:
//
//	[WRITE][ADDR_H][ADDR_L][DATA...]
//
// The payload is written into one page; bytes past the page end wrap to the
// start of the same page. Keeping the payload inside the page is the caller's
// job.
func BuildWriteCmd(address uint16, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("data cannot be empty")
	}

	frame := make([]byte, HeaderSize, HeaderSize+len(data))
	frame[0] = CmdWrite
	binary.BigEndian.PutUint16(frame[1:HeaderSize], address)
	frame = append(frame, data...)

	return frame, nil
}

// BuildReadCmd constructs a READ frame followed by count dummy bytes, which
// clock the data out of the device.
//
// Frame structure:
//
//	[READ][ADDR_H][ADDR_L][DUMMY × count]
//
// The device address counter wraps to 0 after the last address, so count is
// not limited by the array size.
func BuildReadCmd(address uint16, count int) ([]byte, error) {
	if count < 0 {
		return nil, fmt.Errorf("count cannot be negative, got %d", count)
	}

	frame := make([]byte, HeaderSize+count)
	frame[0] = CmdRead
	binary.BigEndian.PutUint16(frame[1:HeaderSize], address)

	return frame, nil
}
