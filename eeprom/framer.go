package eeprom

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/moffa90/go-eeprom25/protocol"
)

// WriteEnable sets the write enable latch. The latch clears itself after
// every completed write, so each write needs its own WriteEnable.
func (d *Device) WriteEnable(ctx context.Context) error {
	if err := d.WaitReady(ctx); err != nil {
		return err
	}

	if _, err := d.transaction("write enable", protocol.BuildWriteEnableCmd()); err != nil {
		return err
	}

	// The latch sets on the rising CS edge; keep CS high long enough
	// before the next select.
	d.bus.Delay(d.config.DeselectTime)
	return nil
}

// WriteDisable clears the write enable latch.
func (d *Device) WriteDisable(ctx context.Context) error {
	if err := d.WaitReady(ctx); err != nil {
		return err
	}

	_, err := d.transaction("write disable", protocol.BuildWriteDisableCmd())
	return err
}

// WriteStatus sets the block protection bits of the STATUS register.
func (d *Device) WriteStatus(ctx context.Context, bp protocol.BlockProtect) error {
	if err := d.WriteEnable(ctx); err != nil {
		return err
	}

	if _, err := d.transaction("write status", protocol.BuildWriteStatusCmd(protocol.Status(bp))); err != nil {
		return err
	}

	d.logInfo("block protection set", "level", bp.String())
	return nil
}

// writePage issues one WRITE with the whole payload in a single select
// window. The payload must fit in the page; Plan guarantees that.
func (d *Device) writePage(ctx context.Context, address uint16, data []byte) error {
	if err := d.WriteEnable(ctx); err != nil {
		return err
	}

	frame, err := protocol.BuildWriteCmd(address, data)
	if err != nil {
		return err
	}

	if _, err := d.transaction("write", frame); err != nil {
		return err
	}

	d.logDebug("page write", "address", fmt.Sprintf("0x%04X", address), "length", len(data))
	return nil
}

// ReadBytes reads count bytes starting at address in one READ. Reads may run
// across page boundaries and past the last address; the device wraps its
// address counter to 0.
//
// A count of 0 returns an empty slice without touching the bus.
func (d *Device) ReadBytes(ctx context.Context, address uint16, count int) ([]byte, error) {
	if err := d.checkAddress(int(address)); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("count cannot be negative, got %d", count)
	}
	if count == 0 {
		return []byte{}, nil
	}

	if err := d.WaitReady(ctx); err != nil {
		return nil, err
	}

	frame, err := protocol.BuildReadCmd(address, count)
	if err != nil {
		return nil, err
	}

	rx, err := d.transaction("read", frame)
	if err != nil {
		return nil, err
	}

	payload, err := protocol.ParseReadResponse(rx, count)
	if err != nil {
		return nil, &TransportError{Op: "read", Err: err}
	}

	out := make([]byte, count)
	copy(out, payload)
	return out, nil
}

// ReadUint8 reads the byte at address.
func (d *Device) ReadUint8(ctx context.Context, address uint16) (byte, error) {
	data, err := d.ReadBytes(ctx, address, 1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

// WriteUint8 writes one byte at address.
func (d *Device) WriteUint8(ctx context.Context, address uint16, value byte) error {
	return d.Write(ctx, address, []byte{value})
}

// ReadUint32 reads a big-endian 32-bit value starting at address.
func (d *Device) ReadUint32(ctx context.Context, address uint16) (uint32, error) {
	data, err := d.ReadBytes(ctx, address, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(data), nil
}

// WriteUint32 writes a big-endian 32-bit value starting at address. The four
// bytes are subject to the configured SpanPolicy like any other write.
func (d *Device) WriteUint32(ctx context.Context, address uint16, value uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], value)
	return d.Write(ctx, address, buf[:])
}

func (d *Device) checkAddress(address int) error {
	if address < 0 || address > int(d.LastAddress()) {
		return &InvalidAddressError{Address: address, Last: int(d.LastAddress())}
	}
	return nil
}
