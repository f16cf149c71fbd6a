package eeprom_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-eeprom25/eeprom"
	"github.com/moffa90/go-eeprom25/protocol"
	"github.com/moffa90/go-eeprom25/sim"
)

// newDevice returns a driver bound to a fresh simulated 25xx320A.
func newDevice(t *testing.T, opts ...eeprom.Option) (*eeprom.Device, *sim.Device) {
	t.Helper()
	chip := sim.New()
	dev, err := eeprom.New(chip, chip.Line(), opts...)
	require.NoError(t, err)
	return dev, chip
}

// opcodes lists the instruction byte of every recorded window.
func opcodes(log []sim.Transaction) []byte {
	out := make([]byte, 0, len(log))
	for _, tr := range log {
		out = append(out, tr.Opcode())
	}
	return out
}

// flakyBus fails the Nth transfer and forwards everything else.
type flakyBus struct {
	*sim.Device
	failAt int
	count  int
	err    error
}

func (b *flakyBus) Transfer(tx []byte) ([]byte, error) {
	b.count++
	if b.count == b.failAt {
		return nil, b.err
	}
	return b.Device.Transfer(tx)
}

// Mock logger for testing
type MockLogger struct {
	mu        sync.Mutex
	debugMsgs []string
	infoMsgs  []string
	errorMsgs []string
}

func (l *MockLogger) Debug(msg string, kv ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debugMsgs = append(l.debugMsgs, msg)
}

func (l *MockLogger) Info(msg string, kv ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infoMsgs = append(l.infoMsgs, msg)
}

func (l *MockLogger) Error(msg string, kv ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorMsgs = append(l.errorMsgs, msg)
}

var errBusFault = errors.New("bus fault")

// statusPoll reports whether a window is a status read and the WIP bit it
// returned.
func statusPoll(tr sim.Transaction) (isPoll bool, busy bool) {
	if tr.Opcode() != protocol.CmdReadStatus || len(tr.RX) < protocol.StatusFrameSize {
		return false, false
	}
	return true, protocol.Status(tr.RX[1]).WriteInProgress()
}

var noDelay = eeprom.WithSelectSetup(0)

