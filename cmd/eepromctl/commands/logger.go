package commands

import (
	"log/slog"

	"github.com/moffa90/go-eeprom25/eeprom"
)

// SlogLogger writes driver log messages to an slog.Logger.
type SlogLogger struct {
	logger *slog.Logger
}

var _ eeprom.Logger = (*SlogLogger)(nil)

// NewSlogLogger creates a new SlogLogger that writes to the given slog.Logger.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

func (s *SlogLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

func (s *SlogLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

func (s *SlogLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}
