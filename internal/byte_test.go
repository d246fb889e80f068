package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 Bytes", FormatBytes(0))
	assert.Equal(t, "1023 Bytes", FormatBytes(1023))
	assert.Equal(t, "1.0 KiB (1024 Bytes)", FormatBytes(1024))
	assert.Equal(t, "1.5 KiB (1536 Bytes)", FormatBytes(1536))
	assert.Equal(t, "1.0 MiB (1048576 Bytes)", FormatBytes(1024*1024))
}

func TestParseSize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{"Plain number", "4096", 4096, false},
		{"KiB", "64KiB", 64 * 1024, false},
		{"MiB with space", "1 MiB", 1024 * 1024, false},
		{"SI kilo", "1k", 1000, false},
		{"Zero", "0", 0, true},
		{"Garbage", "lots", 0, true},
		{"Too large", "8GiB", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := ParseSize(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, n)
		})
	}
}

func TestThroughput(t *testing.T) {
	assert.Equal(t, float64(0), Throughput(1024, 0))
	assert.InDelta(t, 2.0, Throughput(4*1024*1024, 2), 1e-9)
}
