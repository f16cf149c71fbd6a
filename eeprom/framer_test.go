package eeprom_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-eeprom25/eeprom"
	"github.com/moffa90/go-eeprom25/protocol"
)

func TestByteRoundTripEveryAddress(t *testing.T) {
	ctx := context.Background()
	dev, chip := newDevice(t, noDelay)

	value := func(addr int) byte { return byte(addr*7 + 3) }

	for addr := 0; addr < dev.Size(); addr++ {
		require.NoError(t, dev.WriteUint8(ctx, uint16(addr), value(addr)))
	}
	for addr := 0; addr < dev.Size(); addr++ {
		got, err := dev.ReadUint8(ctx, uint16(addr))
		require.NoError(t, err)
		require.Equal(t, value(addr), got, "address 0x%04X", addr)
	}
	assert.Equal(t, dev.Size(), chip.Writes())
}

func TestReadWrapsPastLastAddress(t *testing.T) {
	dev, chip := newDevice(t)
	chip.Load(4094, []byte{0xE0, 0xE1})
	chip.Load(0, []byte{0x00, 0x01, 0x02, 0x03})

	got, err := dev.ReadBytes(context.Background(), 4094, 6)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xE0, 0xE1, 0x00, 0x01, 0x02, 0x03}, got)
}

func TestReadAcrossPages(t *testing.T) {
	dev, chip := newDevice(t)
	data := pattern(200, 9)
	chip.Load(0x10, data)

	got, err := dev.ReadBytes(context.Background(), 0x10, 200)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Len(t, chip.Transactions(), 2, "one poll and one READ")
}

func TestInvalidAddress(t *testing.T) {
	ctx := context.Background()
	dev, chip := newDevice(t)

	_, err := dev.ReadUint8(ctx, 0x1000)
	assert.ErrorIs(t, err, eeprom.ErrInvalidAddress)

	err = dev.WriteUint8(ctx, 0xFFFF, 0x00)
	assert.ErrorIs(t, err, eeprom.ErrInvalidAddress)

	var bad *eeprom.InvalidAddressError
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, 0xFFFF, bad.Address)
	assert.Equal(t, 0x0FFF, bad.Last)

	assert.Empty(t, chip.Transactions())
}

func TestReadCount(t *testing.T) {
	ctx := context.Background()
	dev, chip := newDevice(t)

	got, err := dev.ReadBytes(ctx, 0x10, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, chip.Transactions())

	_, err = dev.ReadBytes(ctx, 0x10, -1)
	assert.Error(t, err)
}

func TestUint32(t *testing.T) {
	ctx := context.Background()
	dev, chip := newDevice(t)

	require.NoError(t, dev.WriteUint32(ctx, 0x0040, 0xDEADBEEF))
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, chip.Memory()[0x40:0x44])

	got, err := dev.ReadUint32(ctx, 0x0040)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), got)

	err = dev.WriteUint32(ctx, 0x001E, 1)
	assert.ErrorIs(t, err, eeprom.ErrInvalidWriteSpan)
}

func TestWriteStatusBlockProtect(t *testing.T) {
	ctx := context.Background()
	dev, chip := newDevice(t)

	require.NoError(t, dev.WriteStatus(ctx, protocol.ProtectAll))

	st, err := dev.ReadStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, protocol.ProtectAll, st.BlockProtect())

	// The device ignores writes to protected blocks without reporting it.
	require.NoError(t, dev.WriteUint8(ctx, 0x0000, 0x12))
	v, err := dev.ReadUint8(ctx, 0x0000)
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), v)

	require.NoError(t, dev.WriteStatus(ctx, protocol.ProtectQuarter))
	require.NoError(t, dev.WriteUint8(ctx, 0x0BFF, 0x34))
	require.NoError(t, dev.WriteUint8(ctx, 0x0C00, 0x56))
	mem := chip.Memory()
	assert.Equal(t, byte(0x34), mem[0x0BFF])
	assert.Equal(t, byte(0xFF), mem[0x0C00])
}
