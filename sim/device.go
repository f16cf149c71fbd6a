package sim

import (
	"fmt"
	"time"

	"github.com/moffa90/go-eeprom25/eeprom"
	"github.com/moffa90/go-eeprom25/protocol"
)

// ErasedByte is the contents of a blank array.
const ErasedByte = 0xFF

// idleOut is what the host sees on SO while the device is not driving it.
const idleOut = 0xFF

// Transaction is one chip-select window as seen by the device.
type Transaction struct {
	// Line is the chip-select line that framed the window
	Line eeprom.ChipSelect

	// TX is every byte clocked in
	TX []byte

	// RX is every byte clocked out
	RX []byte

	// Ignored is set when the device was busy and dropped the instruction
	Ignored bool
}

// Opcode returns the instruction byte, or 0 for an empty window.
func (t Transaction) Opcode() byte {
	if len(t.TX) == 0 {
		return 0
	}
	return t.TX[0]
}

// Device is an in-memory 25xx EEPROM. It implements eeprom.Bus for a single
// chip-select line and follows the datasheet behaviour the driver depends on:
//   - WREN/WRDI take effect when CS goes high
//   - WRITE commits on CS high only if the write enable latch was set; data
//     wraps within the page; the latch clears afterwards
//   - after a WRITE or WRSR the device reports WIP for a number of status
//     reads and ignores every other instruction meanwhile
//   - READ auto-increments and wraps from the last address to 0
//   - block-protected addresses are never written
//
// Device is not safe for concurrent use.
type Device struct {
	line      eeprom.ChipSelect
	size      int
	pageSize  int
	busyPolls int

	mem    []byte
	status protocol.Status
	busy   int

	selected bool
	cur      *Transaction
	ptr      int

	log      []Transaction
	writes   int
	stray    int
	delays   int
	delayed  time.Duration
	failNext error
}

// New creates a simulated 25xx320A with an erased array.
//
// Example:
//
//	dev := sim.New(sim.WithPart(eeprom.Part25xx640A), sim.WithBusyPolls(3))
//	handle, _ := eeprom.New(dev, dev.Line(), eeprom.WithPart(eeprom.Part25xx640A))
func New(opts ...Option) *Device {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Device{
		line:      cfg.Line,
		size:      cfg.Part.Size,
		pageSize:  cfg.Part.PageSize,
		busyPolls: cfg.BusyPolls,
		mem:       make([]byte, cfg.Part.Size),
	}
	for i := range d.mem {
		d.mem[i] = ErasedByte
	}
	copy(d.mem, cfg.Contents)
	return d
}

// Line returns the chip-select line the device answers to.
func (d *Device) Line() eeprom.ChipSelect {
	return d.line
}

// Select implements eeprom.Bus.
func (d *Device) Select(cs eeprom.ChipSelect) error {
	if cs != d.line {
		return nil
	}
	if d.selected {
		return fmt.Errorf("chip select %d already asserted", cs)
	}
	d.selected = true
	d.cur = &Transaction{Line: cs}
	return nil
}

// Deselect implements eeprom.Bus. Instructions that act on the rising CS edge
// are committed here.
func (d *Device) Deselect(cs eeprom.ChipSelect) error {
	if cs != d.line || !d.selected {
		return nil
	}
	d.selected = false

	t := d.cur
	d.cur = nil
	if !t.Ignored {
		d.commit(t)
	}
	d.log = append(d.log, *t)
	return nil
}

// Transfer implements eeprom.Bus.
func (d *Device) Transfer(tx []byte) ([]byte, error) {
	if err := d.failNext; err != nil {
		d.failNext = nil
		return nil, err
	}

	rx := make([]byte, len(tx))
	if !d.selected {
		d.stray++
		for i := range rx {
			rx[i] = idleOut
		}
		return rx, nil
	}

	for i, b := range tx {
		rx[i] = d.clock(b)
		d.cur.TX = append(d.cur.TX, b)
		d.cur.RX = append(d.cur.RX, rx[i])
	}
	return rx, nil
}

// Delay implements eeprom.Bus. Nothing sleeps; delays are only counted.
func (d *Device) Delay(dur time.Duration) {
	d.delays++
	d.delayed += dur
}

// clock handles one byte of the current window and returns the byte driven
// on SO at the same time.
func (d *Device) clock(b byte) byte {
	n := len(d.cur.TX)

	if n == 0 {
		if d.busy > 0 && b != protocol.CmdReadStatus {
			d.cur.Ignored = true
		}
		return idleOut
	}
	if d.cur.Ignored {
		return idleOut
	}

	switch d.cur.Opcode() {
	case protocol.CmdReadStatus:
		st := d.Status()
		if n == 1 && d.busy > 0 {
			d.busy--
		}
		return byte(st)

	case protocol.CmdRead:
		switch {
		case n == 1:
			d.ptr = int(b) << 8
		case n == 2:
			d.ptr = (d.ptr | int(b)) % d.size
		default:
			v := d.mem[d.ptr]
			d.ptr = (d.ptr + 1) % d.size
			return v
		}
	}
	return idleOut
}

// commit applies instructions that act when CS rises.
func (d *Device) commit(t *Transaction) {
	switch t.Opcode() {
	case protocol.CmdWriteEnable:
		d.status |= protocol.StatusWEL

	case protocol.CmdWriteDisable:
		d.status &^= protocol.StatusWEL

	case protocol.CmdWrite:
		if !d.status.WriteEnabled() || len(t.TX) <= protocol.HeaderSize {
			return
		}
		addr := (int(t.TX[1])<<8 | int(t.TX[2])) % d.size
		base := addr - addr%d.pageSize
		protectedFrom := d.status.BlockProtect().ProtectedFrom(d.size)
		for i, v := range t.TX[protocol.HeaderSize:] {
			a := base + (addr-base+i)%d.pageSize
			if a < protectedFrom {
				d.mem[a] = v
			}
		}
		d.startWriteCycle()

	case protocol.CmdWriteStatus:
		if !d.status.WriteEnabled() || len(t.TX) < 2 {
			return
		}
		d.status = d.status&^protocol.StatusWritableMask | protocol.Status(t.TX[1])&protocol.StatusWritableMask
		d.startWriteCycle()
	}
}

func (d *Device) startWriteCycle() {
	d.status &^= protocol.StatusWEL
	d.busy = d.busyPolls
	d.writes++
}

// Status returns the STATUS register as the device would report it now.
func (d *Device) Status() protocol.Status {
	st := d.status
	if d.busy > 0 {
		st |= protocol.StatusWIP
	}
	return st
}

// Memory returns a copy of the array.
func (d *Device) Memory() []byte {
	out := make([]byte, len(d.mem))
	copy(out, d.mem)
	return out
}

// Load writes data straight into the array at address, bypassing the
// protocol. It wraps at the end of the array.
func (d *Device) Load(address int, data []byte) {
	for i, v := range data {
		d.mem[(address+i)%d.size] = v
	}
}

// SetBusy makes the next n status reads report a write in progress.
func (d *Device) SetBusy(n int) {
	d.busy = n
}

// FailNext makes the next Transfer return err without clocking anything.
func (d *Device) FailNext(err error) {
	d.failNext = err
}

// Transactions returns every completed chip-select window in order.
func (d *Device) Transactions() []Transaction {
	out := make([]Transaction, len(d.log))
	copy(out, d.log)
	return out
}

// ResetLog forgets recorded transactions and counters.
func (d *Device) ResetLog() {
	d.log = nil
	d.writes = 0
	d.stray = 0
	d.delays = 0
	d.delayed = 0
}

// Writes returns the number of internal write cycles started.
func (d *Device) Writes() int {
	return d.writes
}

// StrayTransfers returns the number of transfers made with CS inactive.
func (d *Device) StrayTransfers() int {
	return d.stray
}

// Delays returns the number of Delay calls and their total duration.
func (d *Device) Delays() (int, time.Duration) {
	return d.delays, d.delayed
}

// Selected reports whether CS is currently asserted.
func (d *Device) Selected() bool {
	return d.selected
}
