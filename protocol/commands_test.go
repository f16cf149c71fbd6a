package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleByteCommands(t *testing.T) {
	tests := []struct {
		name  string
		build func() []byte
		want  []byte
	}{
		{name: "write enable", build: BuildWriteEnableCmd, want: []byte{0x06}},
		{name: "write disable", build: BuildWriteDisableCmd, want: []byte{0x04}},
		{name: "read status", build: BuildReadStatusCmd, want: []byte{0x05, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.build())
		})
	}
}

func TestBuildWriteStatusCmd(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   []byte
	}{
		{name: "no protection", status: 0x00, want: []byte{0x01, 0x00}},
		{name: "protect all", status: Status(ProtectAll), want: []byte{0x01, 0x0C}},
		{name: "read-only bits masked", status: 0xFF, want: []byte{0x01, 0x0C}},
		{name: "WEL and WIP masked", status: StatusWIP | StatusWEL | StatusBP0, want: []byte{0x01, 0x04}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildWriteStatusCmd(tt.status))
		})
	}
}

func TestBuildWriteCmd(t *testing.T) {
	tests := []struct {
		name    string
		address uint16
		data    []byte
		want    []byte
		wantErr bool
		errMsg  string
	}{
		{
			name:    "single byte at zero",
			address: 0x0000,
			data:    []byte{0xAB},
			want:    []byte{0x02, 0x00, 0x00, 0xAB},
		},
		{
			name:    "address is big-endian",
			address: 0x0ABC,
			data:    []byte{0x01, 0x02, 0x03},
			want:    []byte{0x02, 0x0A, 0xBC, 0x01, 0x02, 0x03},
		},
		{
			name:    "last address",
			address: 0x0FFF,
			data:    []byte{0x55},
			want:    []byte{0x02, 0x0F, 0xFF, 0x55},
		},
		{
			name:    "empty data",
			address: 0x0010,
			data:    []byte{},
			wantErr: true,
			errMsg:  "data cannot be empty",
		},
		{
			name:    "nil data",
			address: 0x0010,
			wantErr: true,
			errMsg:  "data cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := BuildWriteCmd(tt.address, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, frame)
		})
	}
}

func TestBuildWriteCmdCopiesPayload(t *testing.T) {
	data := []byte{0x01, 0x02}
	frame, err := BuildWriteCmd(0x0020, data)
	require.NoError(t, err)

	data[0] = 0xFF
	assert.Equal(t, byte(0x01), frame[HeaderSize])
}

func TestBuildReadCmd(t *testing.T) {
	tests := []struct {
		name    string
		address uint16
		count   int
		want    []byte
		wantErr bool
	}{
		{
			name:    "header only",
			address: 0x0123,
			count:   0,
			want:    []byte{0x03, 0x01, 0x23},
		},
		{
			name:    "one byte",
			address: 0x0000,
			count:   1,
			want:    []byte{0x03, 0x00, 0x00, 0x00},
		},
		{
			name:    "four bytes near the end",
			address: 0x0FFE,
			count:   4,
			want:    []byte{0x03, 0x0F, 0xFE, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:    "negative count",
			address: 0x0000,
			count:   -1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := BuildReadCmd(tt.address, tt.count)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, frame)
		})
	}
}
