package protocol

import "fmt"

// ResponseError reports a response whose length doesn't match the frame that
// was clocked out.
type ResponseError struct {
	// Operation is the command whose response was malformed
	Operation string

	// Got is the number of bytes received
	Got int

	// Want is the number of bytes expected
	Want int
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: got %d bytes, expected %d", e.Operation, e.Got, e.Want)
}

// IsResponseError returns true if the error is a ResponseError.
func IsResponseError(err error) bool {
	_, ok := err.(*ResponseError)
	return ok
}

// OpcodeName returns the datasheet mnemonic of an instruction.
func OpcodeName(op byte) string {
	switch op {
	case CmdRead:
		return "READ"
	case CmdWrite:
		return "WRITE"
	case CmdWriteDisable:
		return "WRDI"
	case CmdWriteEnable:
		return "WREN"
	case CmdReadStatus:
		return "RDSR"
	case CmdWriteStatus:
		return "WRSR"
	default:
		return fmt.Sprintf("unknown instruction 0x%02X", op)
	}
}

