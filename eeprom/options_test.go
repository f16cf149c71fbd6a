package eeprom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/moffa90/go-eeprom25/protocol"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, Part25xx320A, cfg.Part)
	assert.Equal(t, SpanReject, cfg.SpanPolicy)
	assert.Zero(t, cfg.MaxPolls)
	assert.Equal(t, protocol.MinSelectSetup, cfg.SelectSetup)
	assert.Equal(t, protocol.MinDeselectTime, cfg.DeselectTime)
	assert.True(t, cfg.VerifyAfterWrite)
	assert.Nil(t, cfg.Logger)
	assert.Nil(t, cfg.ProgressCallback)
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name  string
		opt   Option
		check func(t *testing.T, c Config)
	}{
		{"part", WithPart(Part25xx256), func(t *testing.T, c Config) {
			assert.Equal(t, 32768, c.Part.Size)
			assert.Equal(t, 64, c.Part.PageSize)
		}},
		{"geometry", WithGeometry(2048, 16), func(t *testing.T, c Config) {
			assert.Equal(t, Part{Size: 2048, PageSize: 16}, c.Part)
		}},
		{"span policy", WithSpanPolicy(SpanWrap), func(t *testing.T, c Config) {
			assert.Equal(t, SpanWrap, c.SpanPolicy)
		}},
		{"max polls", WithMaxPolls(100), func(t *testing.T, c Config) {
			assert.Equal(t, 100, c.MaxPolls)
		}},
		{"negative max polls ignored", WithMaxPolls(-1), func(t *testing.T, c Config) {
			assert.Zero(t, c.MaxPolls)
		}},
		{"negative select setup ignored", WithSelectSetup(-time.Second), func(t *testing.T, c Config) {
			assert.Equal(t, protocol.MinSelectSetup, c.SelectSetup)
		}},
		{"deselect time raised to minimum", WithDeselectTime(10 * time.Nanosecond), func(t *testing.T, c Config) {
			assert.Equal(t, protocol.MinDeselectTime, c.DeselectTime)
		}},
		{"deselect time kept above minimum", WithDeselectTime(5 * time.Microsecond), func(t *testing.T, c Config) {
			assert.Equal(t, 5*time.Microsecond, c.DeselectTime)
		}},
		{"verify off", WithVerifyAfterWrite(false), func(t *testing.T, c Config) {
			assert.False(t, c.VerifyAfterWrite)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.opt(&cfg)
			tt.check(t, cfg)
		})
	}
}

func TestSpanPolicyString(t *testing.T) {
	assert.Equal(t, "reject", SpanReject.String())
	assert.Equal(t, "wrap", SpanWrap.String())
	assert.Equal(t, "advance", SpanAdvance.String())
	assert.Equal(t, "unknown", SpanPolicy(9).String())
}

func TestPartString(t *testing.T) {
	assert.Equal(t, "25xx320A (4096 bytes, 32-byte pages)", Part25xx320A.String())
	assert.Equal(t, "custom (64 bytes, 16-byte pages)", Part{Size: 64, PageSize: 16}.String())
}
