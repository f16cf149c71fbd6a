package eeprom

import "time"

// Progress phases.
const (
	PhaseDumping     = "dumping"
	PhaseClearing    = "clearing"
	PhaseFilling     = "filling"
	PhaseProgramming = "programming"
	PhaseVerifying   = "verifying"
	PhaseComplete    = "complete"
)

// Progress contains information about a running bulk operation.
// Passed to ProgressCallback.
type Progress struct {
	// Phase is one of the Phase* constants
	Phase string

	// Done is the number of bytes processed so far
	Done int

	// Total is the number of bytes the operation covers
	Total int

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// ElapsedTime is the time since the operation started
	ElapsedTime time.Duration
}

// ProgressCallback is called periodically during bulk operations.
// Implementations should return quickly; the bus is held idle meanwhile.
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the device.
// This allows integration with any logging framework.
//
// Example with log/slog:
//
//	type slogLogger struct{ l *slog.Logger }
//	func (s slogLogger) Debug(msg string, kv ...interface{}) { s.l.Debug(msg, kv...) }
//	func (s slogLogger) Info(msg string, kv ...interface{})  { s.l.Info(msg, kv...) }
//	func (s slogLogger) Error(msg string, kv ...interface{}) { s.l.Error(msg, kv...) }
//
//	dev, err := eeprom.New(bus, 0, eeprom.WithLogger(slogLogger{slog.Default()}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}

func newProgress(phase string, done, total int, start time.Time) Progress {
	pct := 100.0
	if total > 0 {
		pct = float64(done) / float64(total) * 100
	}
	return Progress{
		Phase:       phase,
		Done:        done,
		Total:       total,
		Percentage:  pct,
		ElapsedTime: time.Since(start),
	}
}
