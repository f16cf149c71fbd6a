package eeprom

import (
	"context"
	"fmt"

	"github.com/moffa90/go-eeprom25/protocol"
)

// WaitReady blocks until the device reports that no internal write cycle is
// in progress. The device ignores every instruction but RDSR while busy, so
// every read and write calls this first.
//
// Each poll is its own transaction, preceded by the deselect time. The loop
// only exits on a poll whose own response has WIP clear. It is unbounded
// unless WithMaxPolls is set; ctx is checked between polls.
func (d *Device) WaitReady(ctx context.Context) error {
	polls := 0
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("wait ready cancelled: %w", err)
		}

		d.bus.Delay(d.config.DeselectTime)

		status, err := d.readStatus()
		if err != nil {
			return err
		}
		polls++

		if !status.WriteInProgress() {
			if polls > 1 {
				d.logDebug("write cycle finished", "polls", polls)
			}
			return nil
		}

		if d.config.MaxPolls > 0 && polls >= d.config.MaxPolls {
			d.logError("device stuck in write cycle", "polls", polls, "status", status.String())
			return &DeviceUnresponsiveError{Polls: polls, Status: status}
		}
	}
}

// ReadStatus reads the STATUS register once, without waiting for a write
// cycle to finish.
func (d *Device) ReadStatus(ctx context.Context) (protocol.Status, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("read status cancelled: %w", err)
	}
	return d.readStatus()
}

func (d *Device) readStatus() (protocol.Status, error) {
	rx, err := d.transaction("read status", protocol.BuildReadStatusCmd())
	if err != nil {
		return 0, err
	}

	status, err := protocol.ParseStatusResponse(rx)
	if err != nil {
		return 0, &TransportError{Op: "read status", Err: err}
	}
	return status, nil
}
