package eeprom

import (
	"errors"
	"fmt"

	"github.com/moffa90/go-eeprom25/protocol"
)

// Sentinel errors for use with errors.Is.
var (
	ErrInvalidAddress     = errors.New("invalid address")
	ErrInvalidWriteSpan   = errors.New("invalid write span")
	ErrDeviceUnresponsive = errors.New("device unresponsive")
	ErrTransport          = errors.New("transport error")
)

// InvalidAddressError indicates an address outside the device's address space.
type InvalidAddressError struct {
	Address int
	Last    int
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("address 0x%04X is out of range: valid range is 0x0000-0x%04X",
		e.Address, e.Last)
}

func (e *InvalidAddressError) Is(target error) bool {
	return target == ErrInvalidAddress
}

// InvalidWriteSpanError indicates a write payload that does not fit in the
// page it starts in, or an empty payload.
type InvalidWriteSpanError struct {
	Address uint16
	Length  int
	MaxRun  int
}

func (e *InvalidWriteSpanError) Error() string {
	if e.Length == 0 {
		return fmt.Sprintf("write at 0x%04X: payload is empty", e.Address)
	}
	return fmt.Sprintf("write of %d bytes at 0x%04X crosses a page boundary: %d bytes fit before the page wraps",
		e.Length, e.Address, e.MaxRun)
}

func (e *InvalidWriteSpanError) Is(target error) bool {
	return target == ErrInvalidWriteSpan
}

// DeviceUnresponsiveError indicates that the write-in-progress flag stayed
// set for more status polls than allowed by WithMaxPolls.
type DeviceUnresponsiveError struct {
	Polls  int
	Status protocol.Status
}

func (e *DeviceUnresponsiveError) Error() string {
	return fmt.Sprintf("device still busy after %d status polls (status %s)", e.Polls, e.Status)
}

func (e *DeviceUnresponsiveError) Is(target error) bool {
	return target == ErrDeviceUnresponsive
}

// TransportError wraps a failure reported by the Bus.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// BulkError reports a bulk operation that stopped early.
// Processed addresses [0, Processed) completed before the failure.
type BulkError struct {
	Op        string
	Processed int
	Total     int
	Err       error
}

func (e *BulkError) Error() string {
	return fmt.Sprintf("%s aborted after %d of %d bytes: %v", e.Op, e.Processed, e.Total, e.Err)
}

func (e *BulkError) Unwrap() error {
	return e.Err
}

// VerifyMismatchError indicates that device contents differ from an image.
type VerifyMismatchError struct {
	Address  uint16
	Expected byte
	Actual   byte
}

func (e *VerifyMismatchError) Error() string {
	return fmt.Sprintf("verify mismatch at 0x%04X: expected 0x%02X, got 0x%02X",
		e.Address, e.Expected, e.Actual)
}
