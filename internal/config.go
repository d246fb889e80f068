package internal

import (
	"fmt"
	"time"
)

// Config holds the options of one counting run.
type Config struct {
	ChunkMethod    string
	ChunkSize      int
	Decode         string
	Timeout        time.Duration
	Retain         bool
	Digest         bool
	Checksum       bool
	AllowAnyStatus bool
	Verbose        bool
	Progress       bool
	RedisAddr      string
	HistoryLimit   int
}

func NewConfig() *Config {
	return &Config{
		ChunkMethod:  "read",
		ChunkSize:    DefaultChunkSize,
		Decode:       "none",
		Timeout:      GlobalFetchTimeout,
		HistoryLimit: DefaultHistoryLimit,
	}
}

func (c *Config) Validate() error {
	switch c.ChunkMethod {
	case "read", "fixed":
	default:
		return fmt.Errorf("%w: unknown chunk method %q", ErrInvalidConfig, c.ChunkMethod)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfig, c.ChunkSize)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout %s", ErrInvalidConfig, c.Timeout)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("%w: history limit must be positive, got %d", ErrInvalidConfig, c.HistoryLimit)
	}
	return nil
}
