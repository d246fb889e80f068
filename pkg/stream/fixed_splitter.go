package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/zhengshuai-xiao/streamcount/internal"
)

// FixedSplitter produces ChunkSize chunks; only the last one may be shorter.
type FixedSplitter struct {
	ChunkSize int
}

func (f *FixedSplitter) NewChunker(r io.Reader) (Chunker, error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	if f.ChunkSize <= 0 {
		return nil, fmt.Errorf("%w: ChunkSize must be positive, got %d", internal.ErrInvalidConfig, f.ChunkSize)
	}
	return &fixedChunker{
		r:   r,
		buf: make([]byte, f.ChunkSize),
	}, nil
}

type fixedChunker struct {
	r    io.Reader
	buf  []byte
	done bool
}

// Next returns the next fixed-size chunk from the reader.
func (c *fixedChunker) Next() (Chunk, error) {
	if c.done {
		return Chunk{}, io.EOF
	}
	n, err := io.ReadFull(c.r, c.buf)

	if err == io.EOF { // Clean end of stream, no bytes read.
		c.done = true
		return Chunk{}, io.EOF
	}
	if err == io.ErrUnexpectedEOF { // Last partial chunk.
		c.done = true
		return Chunk{Data: c.buf[:n], Len: uint64(n)}, nil
	}
	if err != nil {
		return Chunk{}, err
	}

	return Chunk{Data: c.buf, Len: uint64(n)}, nil
}
