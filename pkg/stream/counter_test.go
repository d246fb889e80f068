package stream

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"hash/crc32"
	"io"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zhengshuai-xiao/streamcount/internal"
)

func TestDrainAndCount(t *testing.T) {
	testCases := []struct {
		name     string
		lens     []int
		expected int64
	}{
		{"Empty stream", nil, 0},
		{"Single chunk", []int{10}, 10},
		{"Mixed chunks with empty one", []int{100, 250, 0, 4096}, 4446},
		{"Only empty chunks", []int{0, 0, 0}, 0},
		{"Many small chunks", []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, 45},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ch := &scriptedChunker{lens: tc.lens}
			n, err := DrainAndCount(context.Background(), ch)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, n)
			// every chunk plus the final io.EOF, nothing more
			assert.Equal(t, len(tc.lens)+1, ch.calls)
		})
	}
}

func TestDrainAndCountFailsMidStream(t *testing.T) {
	boom := errors.New("connection reset by peer")
	ch := &scriptedChunker{lens: []int{10}, err: boom}

	n, err := DrainAndCount(context.Background(), ch)
	assert.Equal(t, int64(0), n)
	assert.ErrorIs(t, err, internal.ErrStreamRead)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, ch.calls)
}

func TestDrainStopsAtEOF(t *testing.T) {
	ch := new(MockChunker)
	ch.On("Next").Return(Chunk{Data: []byte("abc"), Len: 3}, nil).Once()
	ch.On("Next").Return(Chunk{}, io.EOF).Once()

	n, err := DrainAndCount(context.Background(), ch)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	ch.AssertExpectations(t)
	ch.AssertNumberOfCalls(t, "Next", 2)
}

func TestDrainCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := new(MockChunker)
	_, err := DrainAndCount(ctx, ch)
	assert.ErrorIs(t, err, internal.ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
	ch.AssertNotCalled(t, "Next")
}

func TestDrainCanceledBetweenChunks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := &Counter{OnChunk: func(total int64) {
		if total >= 20 {
			cancel()
		}
	}}
	ch := &scriptedChunker{lens: []int{10, 10, 10, 10}}
	res, err := c.Drain(ctx, ch)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, internal.ErrCanceled)
	assert.Equal(t, 2, ch.calls)
}

func TestDrainCanceledDuringPull(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// the transport only notices the deadline through its own read error
	pr, pw := io.Pipe()
	stop := context.AfterFunc(ctx, func() {
		pw.CloseWithError(errors.New("read tcp: use of closed network connection"))
	})
	defer stop()
	go pw.Write(make([]byte, 512))

	n, err := Count(ctx, pr)
	assert.Equal(t, int64(0), n)
	assert.ErrorIs(t, err, internal.ErrCanceled)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, internal.ErrStreamRead)
}

func TestDrainPullFailsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := new(MockChunker)
	ch.On("Next").Return(Chunk{}, errors.New("connection closed")).Run(func(mock.Arguments) { cancel() }).Once()

	_, err := DrainAndCount(ctx, ch)
	assert.ErrorIs(t, err, internal.ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
	ch.AssertExpectations(t)
}

func TestCounterAccounting(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789abcdef"), 1000)
	splitter := &FixedSplitter{ChunkSize: 1000}
	ch, err := splitter.NewChunker(bytes.NewReader(data))
	require.NoError(t, err)

	var progress []int64
	c := &Counter{
		Retain:   true,
		Digest:   true,
		Checksum: true,
		OnChunk:  func(total int64) { progress = append(progress, total) },
	}
	res, err := c.Drain(context.Background(), ch)
	require.NoError(t, err)

	sum := sha256.Sum256(data)
	assert.Equal(t, int64(len(data)), res.Bytes)
	assert.Equal(t, 16, res.Chunks)
	assert.Equal(t, hex.EncodeToString(sum[:]), res.SHA256)
	assert.Equal(t, crc32.ChecksumIEEE(data), res.CRC32)
	assert.Equal(t, data, res.Data)
	assert.Len(t, progress, 16)
	assert.Equal(t, int64(len(data)), progress[len(progress)-1])
}

func TestCounterZeroValueOnlyCounts(t *testing.T) {
	res, err := (&Counter{}).Drain(context.Background(), &scriptedChunker{lens: []int{5, 7}})
	require.NoError(t, err)
	assert.Equal(t, int64(12), res.Bytes)
	assert.Equal(t, 2, res.Chunks)
	assert.Empty(t, res.SHA256)
	assert.Zero(t, res.CRC32)
	assert.Nil(t, res.Data)
}

func TestCount(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 100000)

	n, err := Count(context.Background(), iotest.OneByteReader(bytes.NewReader(data)))
	assert.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)

	n, err = Count(context.Background(), iotest.DataErrReader(bytes.NewReader(data)))
	assert.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)

	n, err = Count(context.Background(), bytes.NewReader(nil))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCountReaderError(t *testing.T) {
	boom := errors.New("unexpected EOF from upstream")
	r := io.MultiReader(bytes.NewReader(make([]byte, 10)), iotest.ErrReader(boom))

	n, err := Count(context.Background(), r)
	assert.Equal(t, int64(0), n)
	assert.ErrorIs(t, err, internal.ErrStreamRead)
	assert.ErrorIs(t, err, boom)
}
