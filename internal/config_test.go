package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDefaultsAreValid(t *testing.T) {
	conf := NewConfig()
	assert.NoError(t, conf.Validate())
	assert.Equal(t, "read", conf.ChunkMethod)
	assert.Equal(t, DefaultChunkSize, conf.ChunkSize)
	assert.False(t, conf.Retain)
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(c *Config)
	}{
		{"Unknown chunk method", func(c *Config) { c.ChunkMethod = "fastcdc" }},
		{"Zero chunk size", func(c *Config) { c.ChunkSize = 0 }},
		{"Negative timeout", func(c *Config) { c.Timeout = -1 }},
		{"Zero history limit", func(c *Config) { c.HistoryLimit = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conf := NewConfig()
			tc.modify(conf)
			assert.ErrorIs(t, conf.Validate(), ErrInvalidConfig)
		})
	}
}
