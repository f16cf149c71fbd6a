package eeprom_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-eeprom25/eeprom"
	"github.com/moffa90/go-eeprom25/hexfile"
)

func testImage() *hexfile.Image {
	return &hexfile.Image{Segments: []*hexfile.Segment{
		{Address: 0x0010, Data: pattern(50, 0x30)},
		{Address: 0x0400, Data: []byte{0xCA, 0xFE, 0x01}},
	}}
}

func TestProgram(t *testing.T) {
	ctx := context.Background()
	var phases []string
	logger := &MockLogger{}
	dev, chip := newDevice(t, noDelay,
		eeprom.WithLogger(logger),
		eeprom.WithProgressCallback(func(p eeprom.Progress) {
			phases = append(phases, p.Phase)
		}),
	)

	img := testImage()
	require.NoError(t, dev.Program(ctx, img))

	mem := chip.Memory()
	assert.Equal(t, img.Segments[0].Data, mem[0x10:0x10+50])
	assert.Equal(t, img.Segments[1].Data, mem[0x400:0x403])

	assert.Equal(t, eeprom.PhaseProgramming, phases[0])
	assert.Contains(t, phases, eeprom.PhaseVerifying)
	assert.Equal(t, eeprom.PhaseComplete, phases[len(phases)-1])
	assert.Contains(t, logger.infoMsgs, "programming complete")
}

func TestProgramWithoutVerify(t *testing.T) {
	var phases []string
	dev, _ := newDevice(t, noDelay,
		eeprom.WithVerifyAfterWrite(false),
		eeprom.WithProgressCallback(func(p eeprom.Progress) {
			phases = append(phases, p.Phase)
		}),
	)

	require.NoError(t, dev.Program(context.Background(), testImage()))
	assert.NotContains(t, phases, eeprom.PhaseVerifying)
}

func TestProgramRejectsOutOfRange(t *testing.T) {
	dev, chip := newDevice(t)

	img := &hexfile.Image{Segments: []*hexfile.Segment{
		{Address: 0x0FF0, Data: pattern(32, 0)},
	}}
	err := dev.Program(context.Background(), img)
	assert.ErrorIs(t, err, eeprom.ErrInvalidAddress)

	img = &hexfile.Image{Segments: []*hexfile.Segment{
		{Address: 0x10000, Data: []byte{1}},
	}}
	err = dev.Program(context.Background(), img)
	assert.ErrorIs(t, err, eeprom.ErrInvalidAddress)

	assert.Empty(t, chip.Transactions())

	assert.Error(t, dev.Program(context.Background(), nil))
}

func TestVerifyMismatch(t *testing.T) {
	ctx := context.Background()
	dev, chip := newDevice(t, noDelay)
	img := testImage()

	require.NoError(t, dev.Program(ctx, img))
	require.NoError(t, dev.Verify(ctx, img))

	chip.Load(0x0401, []byte{0x00})

	err := dev.Verify(ctx, img)
	var mismatch *eeprom.VerifyMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, uint16(0x0401), mismatch.Address)
	assert.Equal(t, byte(0xFE), mismatch.Expected)
	assert.Equal(t, byte(0x00), mismatch.Actual)
	assert.Equal(t, "verify mismatch at 0x0401: expected 0xFE, got 0x00", err.Error())
}

func TestProgramCancelled(t *testing.T) {
	dev, chip := newDevice(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := dev.Program(ctx, testImage())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, chip.Writes())
}
