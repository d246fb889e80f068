// Package stream drains a byte stream chunk by chunk and accounts for what it saw.
package stream

import (
	"fmt"
	"io"

	"github.com/zhengshuai-xiao/streamcount/internal"
)

var logger = internal.GetLogger("stream")

// Chunk is one unit of bytes delivered by a pull. Len is always len(Data).
type Chunk struct {
	Data []byte
	Len  uint64
}

// Chunker returns the next chunk from a stream, or io.EOF once the stream is exhausted.
// The returned chunk's data is only valid until the next call to Next().
type Chunker interface {
	Next() (Chunk, error)
}

// Splitter creates chunkers from a reader.
type Splitter interface {
	NewChunker(r io.Reader) (Chunker, error)
}

// NewSplitter selects a splitter by name: "read" or "fixed".
func NewSplitter(method string, size int) (Splitter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", internal.ErrInvalidConfig, size)
	}
	switch method {
	case "read", "":
		return &ReadSplitter{BufSize: size}, nil
	case "fixed":
		return &FixedSplitter{ChunkSize: size}, nil
	default:
		return nil, fmt.Errorf("%w: unknown chunk method %q", internal.ErrInvalidConfig, method)
	}
}
