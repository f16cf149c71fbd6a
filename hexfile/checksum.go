package hexfile

// Checksum computes the Intel HEX record checksum: the two's complement of
// the byte sum of the length, address, type and data fields.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return ^sum + 1
}
