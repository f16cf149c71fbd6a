package hexfile

// Image represents a parsed Intel HEX file.
type Image struct {
	// Segments holds the contiguous runs of data in file order
	Segments []*Segment
}

// Segment is a contiguous run of bytes at an absolute address.
type Segment struct {
	// Address is the absolute address of the first byte
	Address uint32

	// Data is the segment payload
	Data []byte
}

// Size returns the total number of data bytes in the image.
func (img *Image) Size() int {
	n := 0
	for _, s := range img.Segments {
		n += len(s.Data)
	}
	return n
}

// End returns one past the highest address covered by the image.
func (img *Image) End() uint32 {
	var end uint32
	for _, s := range img.Segments {
		if e := s.Address + uint32(len(s.Data)); e > end {
			end = e
		}
	}
	return end
}
