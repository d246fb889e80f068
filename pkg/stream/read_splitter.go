package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/zhengshuai-xiao/streamcount/internal"
)

// ReadSplitter yields whatever a single Read returns, so chunk boundaries follow
// the transport.
type ReadSplitter struct {
	BufSize int
}

func (s *ReadSplitter) NewChunker(r io.Reader) (Chunker, error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	if s.BufSize <= 0 {
		return nil, fmt.Errorf("%w: BufSize must be positive, got %d", internal.ErrInvalidConfig, s.BufSize)
	}
	return &readChunker{r: r, buf: make([]byte, s.BufSize)}, nil
}

type readChunker struct {
	r   io.Reader
	buf []byte
	// err is held back when a Read returns data and an error together.
	err error
}

func (c *readChunker) Next() (Chunk, error) {
	if c.err != nil {
		return Chunk{}, c.err
	}
	n, err := c.r.Read(c.buf)
	if n > 0 {
		c.err = err
		return Chunk{Data: c.buf[:n], Len: uint64(n)}, nil
	}
	if err != nil {
		c.err = err
		return Chunk{}, err
	}
	// A zero-length read is still a chunk.
	return Chunk{Data: c.buf[:0]}, nil
}
