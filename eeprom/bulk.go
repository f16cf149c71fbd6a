package eeprom

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Dump table layout.
const (
	dumpBytesPerRow   = 16
	dumpRowsPerHeader = 8
)

// Dump reads the whole address space one byte at a time.
func (d *Device) Dump(ctx context.Context) ([]byte, error) {
	out := make([]byte, 0, d.Size())
	_, err := d.readEach(ctx, "dump", func(_ uint16, v byte) error {
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DumpAll reads the whole address space one byte at a time and writes it to w
// as a hex table: 16 bytes per row, labelled by the address with its low
// nibble replaced by '_', and a column header every 8 rows.
//
// It returns the number of addresses read. On failure the error is a
// *BulkError.
func (d *Device) DumpAll(ctx context.Context, w io.Writer) (int, error) {
	if _, err := io.WriteString(w, "contents of eeprom:"); err != nil {
		return 0, &BulkError{Op: "dump", Total: d.Size(), Err: err}
	}

	var row strings.Builder
	return d.readEach(ctx, "dump", func(address uint16, v byte) error {
		col := int(address) % dumpBytesPerRow
		line := int(address) / dumpBytesPerRow

		if col == 0 {
			if line%dumpRowsPerHeader == 0 {
				if _, err := io.WriteString(w, dumpHeader()); err != nil {
					return err
				}
			}
			row.Reset()
			fmt.Fprintf(&row, "\t%03X_\t", line)
		}

		fmt.Fprintf(&row, "%02x ", v)

		if col == dumpBytesPerRow-1 {
			row.WriteString("\n")
			if _, err := io.WriteString(w, row.String()); err != nil {
				return err
			}
		}
		return nil
	})
}

func dumpHeader() string {
	var b strings.Builder
	b.WriteString("\n\t\t")
	for j := 0; j < dumpBytesPerRow; j++ {
		fmt.Fprintf(&b, "%2X ", j)
	}
	b.WriteString("\n\t\t")
	for j := 0; j < dumpBytesPerRow; j++ {
		b.WriteString("-- ")
	}
	b.WriteString("\n")
	return b.String()
}

// readEach reads every address in order, one READ per byte, and hands each
// value to fn. The first error stops the loop.
func (d *Device) readEach(ctx context.Context, op string, fn func(address uint16, v byte) error) (int, error) {
	total := d.Size()
	start := time.Now()

	for addr := 0; addr < total; addr++ {
		if err := ctx.Err(); err != nil {
			return addr, &BulkError{Op: op, Processed: addr, Total: total, Err: err}
		}

		v, err := d.ReadUint8(ctx, uint16(addr))
		if err != nil {
			d.logError(op+" failed", "address", fmt.Sprintf("0x%04X", addr), "error", err)
			return addr, &BulkError{Op: op, Processed: addr, Total: total, Err: err}
		}

		if err := fn(uint16(addr), v); err != nil {
			return addr, &BulkError{Op: op, Processed: addr, Total: total, Err: err}
		}

		if (addr+1)%d.PageSize() == 0 {
			d.reportProgress(newProgress(PhaseDumping, addr+1, total, start))
		}
	}

	d.reportProgress(newProgress(PhaseComplete, total, total, start))
	return total, nil
}

// ClearAll writes 0x00 to every address, one byte per WRITE. Single-byte
// writes can never wrap within a page, at the cost of one write cycle per
// byte.
//
// It returns the number of addresses written. On failure the error is a
// *BulkError.
func (d *Device) ClearAll(ctx context.Context) (int, error) {
	return d.fill(ctx, "clear", PhaseClearing, 0x00)
}

// Fill writes value to every address, one byte per WRITE.
func (d *Device) Fill(ctx context.Context, value byte) (int, error) {
	return d.fill(ctx, "fill", PhaseFilling, value)
}

func (d *Device) fill(ctx context.Context, op, phase string, value byte) (int, error) {
	total := d.Size()
	start := time.Now()

	for addr := 0; addr < total; addr++ {
		if err := ctx.Err(); err != nil {
			return addr, &BulkError{Op: op, Processed: addr, Total: total, Err: err}
		}

		if err := d.WriteUint8(ctx, uint16(addr), value); err != nil {
			d.logError(op+" failed", "address", fmt.Sprintf("0x%04X", addr), "error", err)
			return addr, &BulkError{Op: op, Processed: addr, Total: total, Err: err}
		}

		if (addr+1)%d.PageSize() == 0 {
			d.reportProgress(newProgress(phase, addr+1, total, start))
		}
	}

	d.reportProgress(newProgress(PhaseComplete, total, total, start))
	d.logInfo(op+" complete",
		"bytes", total,
		"value", fmt.Sprintf("0x%02X", value),
		"elapsed", time.Since(start).String(),
	)
	return total, nil
}
