package internal

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatBytes renders n as "1.5 KiB (1536 Bytes)", or "N Bytes" below 1 KiB.
func FormatBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d Bytes", n)
	}
	return fmt.Sprintf("%s (%d Bytes)", humanize.IBytes(uint64(n)), n)
}

// ParseSize accepts plain numbers and humanized sizes such as "64KiB" or "1M".
func ParseSize(s string) (int, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid size %q: %v", ErrInvalidConfig, s, err)
	}
	if n == 0 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: size %q out of range", ErrInvalidConfig, s)
	}
	return int(n), nil
}

// Throughput returns MiB/s, or 0 when no time elapsed.
func Throughput(n int64, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return float64(n) / (1024 * 1024) / seconds
}
