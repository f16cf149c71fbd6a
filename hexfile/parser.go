package hexfile

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record types.
const (
	RecordData                   = 0x00
	RecordEndOfFile              = 0x01
	RecordExtendedSegmentAddress = 0x02
	RecordStartSegmentAddress    = 0x03
	RecordExtendedLinearAddress  = 0x04
	RecordStartLinearAddress     = 0x05
)

// Record layout.
const (
	// StartCode prefixes every record
	StartCode = ':'

	// RecordHeaderSize is length(1) + address(2) + type(1)
	RecordHeaderSize = 4

	// RecordChecksumSize is the size of the trailing checksum
	RecordChecksumSize = 1

	// MinimumRecordBytes is a record without data
	MinimumRecordBytes = RecordHeaderSize + RecordChecksumSize

	// DefaultSegmentCapacity is the initial capacity for the segments slice
	DefaultSegmentCapacity = 8
)

// Parse parses an Intel HEX file from the given path.
//
// Example:
//
//	img, err := hexfile.Parse("calibration.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d bytes in %d segments\n", img.Size(), len(img.Segments))
func Parse(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f)
}

// ParseReader parses an Intel HEX image from any io.Reader.
//
// Example:
//
//	img, err := hexfile.ParseReader(strings.NewReader(":0100000042BD\n:00000001FF\n"))
func ParseReader(r io.Reader) (*Image, error) {
	scanner := bufio.NewScanner(r)

	img := &Image{Segments: make([]*Segment, 0, DefaultSegmentCapacity)}
	var base uint32
	var current *Segment
	sawEOF := false

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines
		if line == "" {
			continue
		}

		if sawEOF {
			return nil, fmt.Errorf("line %d: data after end-of-file record", lineNum)
		}

		rec, err := parseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		switch rec.kind {
		case RecordData:
			if len(rec.data) == 0 {
				continue
			}
			addr := base + uint32(rec.offset)
			if current != nil && current.Address+uint32(len(current.Data)) == addr {
				current.Data = append(current.Data, rec.data...)
				continue
			}
			current = &Segment{Address: addr, Data: append([]byte(nil), rec.data...)}
			img.Segments = append(img.Segments, current)

		case RecordEndOfFile:
			sawEOF = true

		case RecordExtendedSegmentAddress, RecordExtendedLinearAddress:
			if len(rec.data) != 2 {
				return nil, fmt.Errorf("line %d: address record must carry 2 bytes, got %d", lineNum, len(rec.data))
			}
			upper := uint32(binary.BigEndian.Uint16(rec.data))
			if rec.kind == RecordExtendedSegmentAddress {
				base = upper << 4
			} else {
				base = upper << 16
			}

		case RecordStartSegmentAddress, RecordStartLinearAddress:
			// Execution start address; meaningless for a data image.

		default:
			return nil, fmt.Errorf("line %d: unsupported record type 0x%02X", lineNum, rec.kind)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if lineNum == 0 {
		return nil, fmt.Errorf("empty file")
	}

	if !sawEOF {
		return nil, fmt.Errorf("missing end-of-file record")
	}

	if len(img.Segments) == 0 {
		return nil, fmt.Errorf("no data records found in file")
	}

	return img, nil
}

type record struct {
	kind   byte
	offset uint16
	data   []byte
}

// parseRecord parses a single record line.
//
// Record format:
//
//	:[Length(1)][Address(2)][Type(1)][Data(Length)][Checksum(1)]
//
// All values are hex-encoded; the address is big-endian.
//
// Example: ":0300300002337A1E"
//
//	Length: 0x03
//	Address: 0x0030
//	Type: 0x00 (data)
//	Data: [0x02, 0x33, 0x7A]
//	Checksum: 0x1E
func parseRecord(line string) (*record, error) {
	if line[0] != StartCode {
		return nil, fmt.Errorf("record must start with %q", StartCode)
	}

	raw, err := hex.DecodeString(line[1:])
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}

	if len(raw) < MinimumRecordBytes {
		return nil, fmt.Errorf("record too short: got %d bytes, minimum is %d", len(raw), MinimumRecordBytes)
	}

	dataLen := int(raw[0])
	expectedLen := MinimumRecordBytes + dataLen
	if len(raw) != expectedLen {
		return nil, fmt.Errorf("data length mismatch: got %d bytes, expected %d (header=%d + data=%d + checksum=%d)",
			len(raw), expectedLen, RecordHeaderSize, dataLen, RecordChecksumSize)
	}

	checksum := raw[len(raw)-1]
	calculated := Checksum(raw[:len(raw)-1])
	if checksum != calculated {
		return nil, fmt.Errorf("checksum mismatch: got 0x%02X, expected 0x%02X", checksum, calculated)
	}

	return &record{
		kind:   raw[3],
		offset: binary.BigEndian.Uint16(raw[1:3]),
		data:   raw[RecordHeaderSize : RecordHeaderSize+dataLen],
	}, nil
}
