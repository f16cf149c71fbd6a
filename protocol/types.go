package protocol

import (
	"fmt"
	"strings"
)

// Status is the contents of the device STATUS register.
type Status byte

// WriteInProgress reports whether the device is busy with an internal write cycle.
func (s Status) WriteInProgress() bool {
	return s&StatusWIP != 0
}

// WriteEnabled reports whether the write enable latch is set.
func (s Status) WriteEnabled() bool {
	return s&StatusWEL != 0
}

// BlockProtect returns the protected array region.
func (s Status) BlockProtect() BlockProtect {
	return BlockProtect(s & StatusWritableMask)
}

func (s Status) String() string {
	var flags []string
	if s.WriteInProgress() {
		flags = append(flags, "WIP")
	}
	if s.WriteEnabled() {
		flags = append(flags, "WEL")
	}
	flags = append(flags, "protect="+s.BlockProtect().String())
	return fmt.Sprintf("0x%02X [%s]", byte(s), strings.Join(flags, " "))
}

// BlockProtect is the BP1:BP0 field of the STATUS register, already shifted
// into place.
type BlockProtect byte

// Array protection levels.
const (
	ProtectNone    BlockProtect = 0
	ProtectQuarter BlockProtect = StatusBP0
	ProtectHalf    BlockProtect = StatusBP1
	ProtectAll     BlockProtect = StatusBP0 | StatusBP1
)

func (b BlockProtect) String() string {
	switch b {
	case ProtectNone:
		return "none"
	case ProtectQuarter:
		return "quarter"
	case ProtectHalf:
		return "half"
	case ProtectAll:
		return "all"
	default:
		return fmt.Sprintf("invalid(0x%02X)", byte(b))
	}
}

// ParseBlockProtect converts a level name as printed by String.
func ParseBlockProtect(name string) (BlockProtect, error) {
	switch strings.ToLower(name) {
	case "none":
		return ProtectNone, nil
	case "quarter":
		return ProtectQuarter, nil
	case "half":
		return ProtectHalf, nil
	case "all":
		return ProtectAll, nil
	default:
		return 0, fmt.Errorf("unknown protection level %q (want none, quarter, half or all)", name)
	}
}

// ProtectedFrom returns the first protected address for an array of size
// bytes. It returns size when nothing is protected.
func (b BlockProtect) ProtectedFrom(size int) int {
	switch b {
	case ProtectQuarter:
		return size - size/4
	case ProtectHalf:
		return size / 2
	case ProtectAll:
		return 0
	default:
		return size
	}
}
