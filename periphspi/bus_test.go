package periphspi

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi"

	"github.com/moffa90/go-eeprom25/eeprom"
	"github.com/moffa90/go-eeprom25/sim"
)

// fakeConn is an spi.Conn that records writes and answers from a script,
// or from a simulated chip when one is attached.
type fakeConn struct {
	chip   *sim.Device
	maxTx  int
	writes [][]byte
	err    error
}

func (f *fakeConn) String() string      { return "fake-spi" }
func (f *fakeConn) Duplex() conn.Duplex { return conn.Full }
func (f *fakeConn) MaxTxSize() int      { return f.maxTx }

func (f *fakeConn) TxPackets(p []spi.Packet) error {
	for _, pkt := range p {
		if err := f.Tx(pkt.W, pkt.R); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeConn) Tx(w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, append([]byte(nil), w...))
	if f.chip == nil {
		for i := range r {
			r[i] = byte(i)
		}
		return nil
	}
	rx, err := f.chip.Transfer(w)
	if err != nil {
		return err
	}
	copy(r, rx)
	return nil
}

// chipPin forwards chip-select edges to a simulated chip.
type chipPin struct {
	*gpiotest.Pin
	chip *sim.Device
}

func (p *chipPin) Out(l gpio.Level) error {
	var err error
	if l == gpio.Low {
		err = p.chip.Select(p.chip.Line())
	} else {
		err = p.chip.Deselect(p.chip.Line())
	}
	if err != nil {
		return err
	}
	return p.Pin.Out(l)
}

func TestNewDrivesPinsHigh(t *testing.T) {
	p0 := &gpiotest.Pin{N: "CS0", L: gpio.Low}
	p1 := &gpiotest.Pin{N: "CS1", L: gpio.Low}

	b, err := New(&fakeConn{}, map[eeprom.ChipSelect]gpio.PinOut{0: p0, 1: p1})
	require.NoError(t, err)
	assert.Equal(t, gpio.High, p0.Read())
	assert.Equal(t, gpio.High, p1.Read())
	assert.Equal(t, "fake-spi (2 chip selects)", b.String())
	assert.NoError(t, b.Close())
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil, map[eeprom.ChipSelect]gpio.PinOut{0: &gpiotest.Pin{N: "CS0"}})
	assert.Error(t, err)

	_, err = New(&fakeConn{}, nil)
	assert.Error(t, err)

	_, err = New(&fakeConn{}, map[eeprom.ChipSelect]gpio.PinOut{0: nil})
	assert.Error(t, err)
}

func TestSelectDeselect(t *testing.T) {
	pin := &gpiotest.Pin{N: "CS0"}
	b, err := New(&fakeConn{}, map[eeprom.ChipSelect]gpio.PinOut{0: pin})
	require.NoError(t, err)

	require.NoError(t, b.Select(0))
	assert.Equal(t, gpio.Low, pin.Read())
	require.NoError(t, b.Deselect(0))
	assert.Equal(t, gpio.High, pin.Read())

	assert.Error(t, b.Select(3))
}

func TestTransfer(t *testing.T) {
	fc := &fakeConn{}
	b, err := New(fc, map[eeprom.ChipSelect]gpio.PinOut{0: &gpiotest.Pin{N: "CS0"}})
	require.NoError(t, err)

	rx, err := b.Transfer([]byte{0x05, 0x00})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1}, rx)
	assert.Equal(t, [][]byte{{0x05, 0x00}}, fc.writes)

	fc.err = errors.New("ioctl failed")
	_, err = b.Transfer([]byte{0x05, 0x00})
	assert.ErrorIs(t, err, fc.err)
}

func TestTransferSplitsLongFrames(t *testing.T) {
	fc := &fakeConn{maxTx: 4}
	b, err := New(fc, map[eeprom.ChipSelect]gpio.PinOut{0: &gpiotest.Pin{N: "CS0"}})
	require.NoError(t, err)

	tx := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	rx, err := b.Transfer(tx)
	require.NoError(t, err)
	assert.Len(t, rx, len(tx))
	assert.Equal(t, [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10}}, fc.writes)
}

func TestDelay(t *testing.T) {
	b := &Bus{}

	start := time.Now()
	b.Delay(20 * time.Microsecond)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Microsecond)

	start = time.Now()
	b.Delay(time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), time.Millisecond)

	b.Delay(0)
	b.Delay(-time.Second)
}

func TestDriverOverPeriph(t *testing.T) {
	ctx := context.Background()
	chip := sim.New()
	fc := &fakeConn{chip: chip, maxTx: 64}
	pin := &chipPin{Pin: &gpiotest.Pin{N: "CS0"}, chip: chip}

	b, err := New(fc, map[eeprom.ChipSelect]gpio.PinOut{0: pin})
	require.NoError(t, err)

	dev, err := eeprom.New(b, 0, eeprom.WithSelectSetup(0))
	require.NoError(t, err)

	data := make([]byte, 200)
	for i := range data {
		data[i] = byte(i * 3)
	}
	require.NoError(t, dev.WritePages(ctx, 0x0100, data))

	got, err := dev.ReadBytes(ctx, 0x0100, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, gpio.High, pin.Read())
	assert.Zero(t, chip.StrayTransfers())
}
