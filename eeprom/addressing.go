package eeprom

import (
	"context"
	"fmt"
)

// Span is one page write of a plan: Length bytes of the payload starting at
// Offset, written at Address.
type Span struct {
	Address uint16
	Offset  int
	Length  int
}

// MaxRun returns how many bytes can be written starting at address before
// the page wraps.
func (d *Device) MaxRun(address uint16) int {
	ps := d.PageSize()
	return ps - int(address)%ps
}

// PageBase returns the first address of the page holding address.
func (d *Device) PageBase(address uint16) uint16 {
	return address &^ uint16(d.PageSize()-1)
}

// Plan splits a write of length bytes at address into page writes according
// to policy.
//
// A payload that fits in its page is always a single span. Otherwise:
//   - SpanReject fails with an InvalidWriteSpanError.
//   - SpanWrap writes MaxRun bytes at address, then the rest in page-sized
//     chunks at the start of the same page. Later chunks overwrite earlier
//     ones exactly as the device would for one oversized WRITE.
//   - SpanAdvance writes MaxRun bytes at address, then continues at the start
//     of each following page. The whole run must end at or before the last
//     address.
func (d *Device) Plan(address uint16, length int, policy SpanPolicy) ([]Span, error) {
	if err := d.checkAddress(int(address)); err != nil {
		return nil, err
	}

	maxRun := d.MaxRun(address)
	if length <= 0 {
		return nil, &InvalidWriteSpanError{Address: address, Length: 0, MaxRun: maxRun}
	}
	if length <= maxRun {
		return []Span{{Address: address, Offset: 0, Length: length}}, nil
	}

	ps := d.PageSize()
	switch policy {
	case SpanReject:
		return nil, &InvalidWriteSpanError{Address: address, Length: length, MaxRun: maxRun}

	case SpanWrap:
		base := d.PageBase(address)
		spans := []Span{{Address: address, Offset: 0, Length: maxRun}}
		for off := maxRun; off < length; off += ps {
			spans = append(spans, Span{Address: base, Offset: off, Length: min(ps, length-off)})
		}
		return spans, nil

	case SpanAdvance:
		end := int(address) + length - 1
		if err := d.checkAddress(end); err != nil {
			return nil, err
		}
		spans := []Span{{Address: address, Offset: 0, Length: maxRun}}
		for off := maxRun; off < length; off += ps {
			spans = append(spans, Span{
				Address: uint16(int(address) + off),
				Offset:  off,
				Length:  min(ps, length-off),
			})
		}
		return spans, nil

	default:
		return nil, fmt.Errorf("unknown span policy %d", policy)
	}
}

// Write writes data starting at address, using the configured SpanPolicy for
// payloads that do not fit in their page. Each page write waits for the
// device, sets the write enable latch and sends one WRITE.
//
// With SpanWrap the bytes past the end of the page land at the start of the
// same page, not in the next page. Use WritePages to fill consecutive pages.
func (d *Device) Write(ctx context.Context, address uint16, data []byte) error {
	return d.write(ctx, address, data, d.config.SpanPolicy)
}

// WritePages writes data starting at address, continuing into the following
// pages as needed. It fails if the data runs past the last address.
func (d *Device) WritePages(ctx context.Context, address uint16, data []byte) error {
	return d.write(ctx, address, data, SpanAdvance)
}

func (d *Device) write(ctx context.Context, address uint16, data []byte, policy SpanPolicy) error {
	spans, err := d.Plan(address, len(data), policy)
	if err != nil {
		return err
	}

	for _, s := range spans {
		if err := d.writePage(ctx, s.Address, data[s.Offset:s.Offset+s.Length]); err != nil {
			return fmt.Errorf("write %d bytes at 0x%04X: %w", s.Length, s.Address, err)
		}
	}
	return nil
}
