// Package hexfile reads and writes Intel HEX images.
//
// # Intel HEX Format
//
// An image is a sequence of text records, one per line:
//
//	:[Length(2)][Address(4)][Type(2)][Data(2×Length)][Checksum(2)]
//
// Example record:
//
//	:0300300002337A1E
//	  03 = Data length
//	  0030 = Address (big-endian)
//	  00 = Record type (data)
//	  02337A = Data
//	  1E = Checksum (two's complement of the byte sum)
//
// Supported record types:
//   - 00 data
//   - 01 end of file (required)
//   - 02 extended segment address (base = value << 4)
//   - 04 extended linear address (base = value << 16)
//   - 03, 05 start address (accepted and ignored)
//
// Data records at consecutive addresses are merged into one Segment.
//
// # Usage
//
//	img, err := hexfile.Parse("calibration.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, seg := range img.Segments {
//	    fmt.Printf("0x%04X: %d bytes\n", seg.Address, len(seg.Data))
//	}
//
// Write an image:
//
//	err := hexfile.Encode(os.Stdout, 0, contents)
//
// # Error Handling
//
// Parse errors carry the offending line number:
//   - Missing start code or invalid hex encoding
//   - Length field not matching the record
//   - Checksum mismatches
//   - Unsupported record types
//   - Missing end-of-file record or data after it
package hexfile
