package protocol

// ParseStatusResponse extracts the STATUS register from the bytes received
// while an RDSR frame was clocked out.
//
// Response structure:
//
//	[ignored][STATUS]
func ParseStatusResponse(rx []byte) (Status, error) {
	if len(rx) != StatusFrameSize {
		return 0, &ResponseError{Operation: "read status", Got: len(rx), Want: StatusFrameSize}
	}
	return Status(rx[1]), nil
}

// ParseReadResponse extracts count data bytes from the bytes received while a
// READ frame was clocked out. The returned slice aliases rx.
//
// Response structure:
//
//	[ignored × 3][DATA × count]
func ParseReadResponse(rx []byte, count int) ([]byte, error) {
	if len(rx) != HeaderSize+count {
		return nil, &ResponseError{Operation: "read", Got: len(rx), Want: HeaderSize + count}
	}
	return rx[HeaderSize:], nil
}
