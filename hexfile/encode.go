package hexfile

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// BytesPerRecord is the payload size of data records written by Encode.
const BytesPerRecord = 16

// Encode writes data as an Intel HEX image starting at address, followed by
// an end-of-file record. Extended linear address records are emitted when the
// data crosses a 64 KiB boundary.
func Encode(w io.Writer, address uint32, data []byte) error {
	bw := bufio.NewWriter(w)

	upper := uint32(0)
	for off := 0; off < len(data); {
		addr := address + uint32(off)
		if addr>>16 != upper {
			upper = addr >> 16
			var ext [2]byte
			binary.BigEndian.PutUint16(ext[:], uint16(upper))
			if err := writeRecord(bw, RecordExtendedLinearAddress, 0, ext[:]); err != nil {
				return err
			}
		}

		end := min(off+BytesPerRecord, len(data))
		// A record may not straddle a 64 KiB boundary.
		if room := 0x10000 - int(addr&0xFFFF); end-off > room {
			end = off + room
		}
		if err := writeRecord(bw, RecordData, uint16(addr), data[off:end]); err != nil {
			return err
		}
		off = end
	}

	if err := writeRecord(bw, RecordEndOfFile, 0, nil); err != nil {
		return err
	}
	return bw.Flush()
}

func writeRecord(w io.Writer, kind byte, offset uint16, data []byte) error {
	raw := make([]byte, 0, MinimumRecordBytes+len(data))
	raw = append(raw, byte(len(data)), byte(offset>>8), byte(offset), kind)
	raw = append(raw, data...)
	raw = append(raw, Checksum(raw))

	_, err := fmt.Fprintf(w, "%c%s\n", StartCode, strings.ToUpper(hex.EncodeToString(raw)))
	return err
}
