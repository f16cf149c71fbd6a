package eeprom

import (
	"time"

	"github.com/moffa90/go-eeprom25/protocol"
)

// SpanPolicy selects what Write does with a payload longer than the room left
// in the page it starts in.
type SpanPolicy int

const (
	// SpanReject refuses the write with an InvalidWriteSpanError.
	SpanReject SpanPolicy = iota

	// SpanWrap reproduces the device's own page wrap: the bytes past the end
	// of the page are written from the start of the same page, overwriting
	// what is there. The result equals a single oversized WRITE.
	SpanWrap

	// SpanAdvance continues into the following pages, one WRITE per page.
	SpanAdvance
)

func (p SpanPolicy) String() string {
	switch p {
	case SpanReject:
		return "reject"
	case SpanWrap:
		return "wrap"
	case SpanAdvance:
		return "advance"
	default:
		return "unknown"
	}
}

// Config holds the device configuration.
type Config struct {
	// Part is the device geometry
	Part Part

	// SpanPolicy governs writes that do not fit in their page
	SpanPolicy SpanPolicy

	// MaxPolls bounds the status poll loop; 0 polls until the device is ready
	MaxPolls int

	// SelectSetup is held before and after every chip-select edge
	SelectSetup time.Duration

	// DeselectTime is held before every status poll and after write enable
	DeselectTime time.Duration

	// VerifyAfterWrite reads back programmed images
	VerifyAfterWrite bool

	// ProgressCallback is called during bulk operations (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Part:             Part25xx320A,
		SpanPolicy:       SpanReject,
		SelectSetup:      protocol.MinSelectSetup,
		DeselectTime:     protocol.MinDeselectTime,
		VerifyAfterWrite: true,
	}
}

// Option is a functional option for configuring the Device.
type Option func(*Config)

// WithPart sets the device geometry from a known part.
//
// Example:
//
//	dev, err := eeprom.New(bus, 0, eeprom.WithPart(eeprom.Part25xx256))
func WithPart(part Part) Option {
	return func(c *Config) {
		c.Part = part
	}
}

// WithGeometry sets a custom geometry. New rejects a page size that is not a
// power of two or a size that is not a whole number of pages.
//
// Example:
//
//	dev, err := eeprom.New(bus, 0, eeprom.WithGeometry(4096, 32))
func WithGeometry(size, pageSize int) Option {
	return func(c *Config) {
		c.Part = Part{Size: size, PageSize: pageSize}
	}
}

// WithSpanPolicy sets the policy for writes that overflow their page.
// Default is SpanReject.
//
// Example:
//
//	dev, err := eeprom.New(bus, 0, eeprom.WithSpanPolicy(eeprom.SpanWrap))
func WithSpanPolicy(policy SpanPolicy) Option {
	return func(c *Config) {
		c.SpanPolicy = policy
	}
}

// WithMaxPolls bounds the number of status reads spent waiting for an
// internal write cycle. When exceeded the operation fails with a
// DeviceUnresponsiveError. Zero (the default) waits indefinitely.
//
// Example:
//
//	dev, err := eeprom.New(bus, 0, eeprom.WithMaxPolls(5000))
func WithMaxPolls(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.MaxPolls = n
		}
	}
}

// WithSelectSetup sets the delay held before and after each chip-select edge.
// Default is protocol.MinSelectSetup.
func WithSelectSetup(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.SelectSetup = d
		}
	}
}

// WithDeselectTime sets the idle time held between transactions. Values below
// protocol.MinDeselectTime are raised to it.
func WithDeselectTime(d time.Duration) Option {
	return func(c *Config) {
		if d < protocol.MinDeselectTime {
			d = protocol.MinDeselectTime
		}
		c.DeselectTime = d
	}
}

// WithVerifyAfterWrite enables or disables read-back after Program.
// Default is true.
func WithVerifyAfterWrite(verify bool) Option {
	return func(c *Config) {
		c.VerifyAfterWrite = verify
	}
}

// WithProgressCallback sets a callback to track bulk operations.
//
// Example:
//
//	dev, err := eeprom.New(bus, 0,
//	    eeprom.WithProgressCallback(func(p eeprom.Progress) {
//	        fmt.Printf("%s %.1f%%\n", p.Phase, p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for device operations.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
