package periphspi

import (
	"fmt"
	"sort"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/moffa90/go-eeprom25/eeprom"
)

// DefaultFrequency is used when Config.Frequency is zero. All supported parts
// run at 5 MHz at 2.5 V.
const DefaultFrequency = 5 * physic.MegaHertz

// spinBelow is the delay under which Delay busy-waits instead of sleeping.
// The scheduler cannot sleep for a microsecond.
const spinBelow = 50 * time.Microsecond

// Config describes how to open a bus.
type Config struct {
	// Port is the SPI port name as known to spireg, e.g. "/dev/spidev0.0" or
	// "SPI0.0". Empty selects the first port found.
	Port string

	// Frequency is the SCK rate
	Frequency physic.Frequency

	// ChipSelects maps each line to a GPIO pin name as known to gpioreg
	ChipSelects map[eeprom.ChipSelect]string
}

// Bus is an eeprom.Bus backed by a periph.io SPI connection and GPIO
// chip-select pins.
type Bus struct {
	conn  spi.Conn
	pins  map[eeprom.ChipSelect]gpio.PinOut
	port  spi.PortCloser
	maxTx int
}

// txLimiter is implemented by connections that cap the size of a single
// transfer.
type txLimiter interface {
	MaxTxSize() int
}

// New creates a bus on an already connected SPI port. Every chip-select pin is
// driven high (inactive) before New returns.
func New(conn spi.Conn, pins map[eeprom.ChipSelect]gpio.PinOut) (*Bus, error) {
	if conn == nil {
		return nil, fmt.Errorf("spi connection cannot be nil")
	}
	if len(pins) == 0 {
		return nil, fmt.Errorf("at least one chip-select pin is required")
	}

	b := &Bus{
		conn: conn,
		pins: make(map[eeprom.ChipSelect]gpio.PinOut, len(pins)),
	}
	if l, ok := conn.(txLimiter); ok {
		b.maxTx = l.MaxTxSize()
	}

	for _, cs := range sortedLines(pins) {
		pin := pins[cs]
		if pin == nil {
			return nil, fmt.Errorf("chip select %d: pin cannot be nil", cs)
		}
		if err := pin.Out(gpio.High); err != nil {
			return nil, fmt.Errorf("chip select %d (%s): %w", cs, pin, err)
		}
		b.pins[cs] = pin
	}
	return b, nil
}

// Open initializes the host drivers, opens the SPI port in mode 0 with the
// native chip select disabled and claims the chip-select pins.
func Open(cfg Config) (*Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host initialization failed: %w", err)
	}

	freq := cfg.Frequency
	if freq == 0 {
		freq = DefaultFrequency
	}

	pins := make(map[eeprom.ChipSelect]gpio.PinOut, len(cfg.ChipSelects))
	for cs, name := range cfg.ChipSelects {
		pin := gpioreg.ByName(name)
		if pin == nil {
			return nil, fmt.Errorf("chip select %d: gpio pin %q not found", cs, name)
		}
		pins[cs] = pin
	}

	port, err := spireg.Open(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", cfg.Port, err)
	}

	conn, err := port.Connect(freq, spi.Mode0|spi.NoCS, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("connect spi port %q: %w", cfg.Port, err)
	}

	b, err := New(conn, pins)
	if err != nil {
		port.Close()
		return nil, err
	}
	b.port = port
	return b, nil
}

// Close releases the SPI port if the bus opened it. Chip-select pins are left
// high.
func (b *Bus) Close() error {
	if b.port == nil {
		return nil
	}
	err := b.port.Close()
	b.port = nil
	return err
}

// String describes the bus.
func (b *Bus) String() string {
	return fmt.Sprintf("%s (%d chip selects)", b.conn, len(b.pins))
}

// Transfer implements eeprom.Bus. Transfers longer than the port allows are
// split; chip select stays asserted across the pieces.
func (b *Bus) Transfer(tx []byte) ([]byte, error) {
	rx := make([]byte, len(tx))
	for off := 0; off < len(tx); {
		end := len(tx)
		if b.maxTx > 0 && end-off > b.maxTx {
			end = off + b.maxTx
		}
		if err := b.conn.Tx(tx[off:end], rx[off:end]); err != nil {
			return nil, fmt.Errorf("spi transfer of %d bytes: %w", end-off, err)
		}
		off = end
	}
	return rx, nil
}

// Select implements eeprom.Bus.
func (b *Bus) Select(cs eeprom.ChipSelect) error {
	return b.drive(cs, gpio.Low)
}

// Deselect implements eeprom.Bus.
func (b *Bus) Deselect(cs eeprom.ChipSelect) error {
	return b.drive(cs, gpio.High)
}

func (b *Bus) drive(cs eeprom.ChipSelect, level gpio.Level) error {
	pin, ok := b.pins[cs]
	if !ok {
		return fmt.Errorf("no pin for chip select %d", cs)
	}
	if err := pin.Out(level); err != nil {
		return fmt.Errorf("chip select %d (%s): %w", cs, pin, err)
	}
	return nil
}

// Delay implements eeprom.Bus.
func (b *Bus) Delay(d time.Duration) {
	if d <= 0 {
		return
	}
	if d >= spinBelow {
		time.Sleep(d)
		return
	}
	for deadline := time.Now().Add(d); time.Now().Before(deadline); {
	}
}

func sortedLines(pins map[eeprom.ChipSelect]gpio.PinOut) []eeprom.ChipSelect {
	lines := make([]eeprom.ChipSelect, 0, len(pins))
	for cs := range pins {
		lines = append(lines, cs)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i] < lines[j] })
	return lines
}
