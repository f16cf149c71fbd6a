package eeprom

import (
	"context"
	"fmt"
	"time"

	"github.com/moffa90/go-eeprom25/hexfile"
)

// Program writes an image to the device:
//  1. Check every segment lies inside the address space
//  2. Write each segment page by page
//  3. Read back and compare (unless disabled with WithVerifyAfterWrite)
//
// The operation can be cancelled via context between page writes.
//
// Example:
//
//	img, _ := hexfile.Parse("calibration.hex")
//	err := dev.Program(context.Background(), img)
func (d *Device) Program(ctx context.Context, img *hexfile.Image) error {
	if img == nil {
		return fmt.Errorf("image cannot be nil")
	}

	if err := d.checkImage(img); err != nil {
		return err
	}

	total := img.Size()
	start := time.Now()
	written := 0

	d.reportProgress(newProgress(PhaseProgramming, 0, total, start))

	for i, seg := range img.Segments {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("cancelled: %w", err)
		}

		if err := d.WritePages(ctx, uint16(seg.Address), seg.Data); err != nil {
			return fmt.Errorf("program segment %d (address=0x%04X, length=%d): %w",
				i, seg.Address, len(seg.Data), err)
		}

		written += len(seg.Data)
		d.reportProgress(newProgress(PhaseProgramming, written, total, start))
	}

	if d.config.VerifyAfterWrite {
		if err := d.Verify(ctx, img); err != nil {
			return fmt.Errorf("verify image: %w", err)
		}
	}

	d.reportProgress(newProgress(PhaseComplete, total, total, start))
	d.logInfo("programming complete",
		"segments", len(img.Segments),
		"bytes", written,
		"elapsed", time.Since(start).String(),
	)

	return nil
}

// Verify compares the device contents with an image. The first differing
// byte is reported as a *VerifyMismatchError.
func (d *Device) Verify(ctx context.Context, img *hexfile.Image) error {
	if img == nil {
		return fmt.Errorf("image cannot be nil")
	}

	if err := d.checkImage(img); err != nil {
		return err
	}

	total := img.Size()
	start := time.Now()
	checked := 0

	for i, seg := range img.Segments {
		got, err := d.ReadBytes(ctx, uint16(seg.Address), len(seg.Data))
		if err != nil {
			return fmt.Errorf("read segment %d (address=0x%04X): %w", i, seg.Address, err)
		}

		for j := range seg.Data {
			if got[j] != seg.Data[j] {
				return &VerifyMismatchError{
					Address:  uint16(seg.Address) + uint16(j),
					Expected: seg.Data[j],
					Actual:   got[j],
				}
			}
		}

		checked += len(seg.Data)
		d.reportProgress(newProgress(PhaseVerifying, checked, total, start))
	}

	return nil
}

// checkImage validates that all segments fit in the address space.
func (d *Device) checkImage(img *hexfile.Image) error {
	for _, seg := range img.Segments {
		end := int(seg.Address) + len(seg.Data) - 1
		if seg.Address > uint32(d.LastAddress()) {
			return &InvalidAddressError{Address: int(seg.Address), Last: int(d.LastAddress())}
		}
		if end > int(d.LastAddress()) {
			return &InvalidAddressError{Address: end, Last: int(d.LastAddress())}
		}
	}
	return nil
}
