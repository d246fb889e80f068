package stream

import (
	"io"

	"github.com/stretchr/testify/mock"
)

// MockChunker is a mock implementation of the Chunker interface for testing.
type MockChunker struct {
	mock.Mock
}

func (m *MockChunker) Next() (Chunk, error) {
	args := m.Called()
	return args.Get(0).(Chunk), args.Error(1)
}

// scriptedChunker yields chunks of the given lengths, then err (io.EOF if nil).
type scriptedChunker struct {
	lens  []int
	err   error
	pos   int
	calls int
}

func (s *scriptedChunker) Next() (Chunk, error) {
	s.calls++
	if s.pos < len(s.lens) {
		n := s.lens[s.pos]
		s.pos++
		return Chunk{Data: make([]byte, n), Len: uint64(n)}, nil
	}
	if s.err != nil {
		return Chunk{}, s.err
	}
	return Chunk{}, io.EOF
}
