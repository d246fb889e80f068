package stream

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/crc32"
	"io"

	"github.com/zhengshuai-xiao/streamcount/internal"
)

// Counter drains a Chunker until io.EOF. The zero value only counts bytes.
type Counter struct {
	// Retain keeps every chunk and returns them concatenated in Result.Data.
	Retain bool
	// Digest computes a sha256 over all bytes.
	Digest bool
	// Checksum computes a CRC-32 (IEEE) over all bytes.
	Checksum bool
	// OnChunk is called after each chunk with the running total.
	OnChunk func(total int64)
}

// Result describes a fully drained stream.
type Result struct {
	Bytes  int64
	Chunks int
	SHA256 string
	CRC32  uint32
	Data   []byte
}

// Drain pulls chunks from ch in order until io.EOF and returns the totals.
// Any other error from ch fails the whole drain; partial totals are discarded.
// ctx is checked before every pull, and a pull that fails after ctx ended is
// reported as canceled.
func (c *Counter) Drain(ctx context.Context, ch Chunker) (*Result, error) {
	var (
		total  int64
		chunks int
		sum    hash.Hash
		crc    hash.Hash32
		kept   bytes.Buffer
	)
	if c.Digest {
		sum = sha256.New()
	}
	if c.Checksum {
		crc = crc32.NewIEEE()
	}

	for {
		if err := ctx.Err(); err != nil {
			logger.Debugf("drain canceled after %d chunks", chunks)
			return nil, fmt.Errorf("%w: %w", internal.ErrCanceled, err)
		}

		chunk, err := ch.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A read blocked when ctx ended surfaces the transport's own error.
			if ctxErr := ctx.Err(); ctxErr != nil {
				logger.Debugf("drain canceled during pull %d: %v", chunks+1, err)
				return nil, fmt.Errorf("%w: %w", internal.ErrCanceled, ctxErr)
			}
			logger.Debugf("drain failed after %d chunks: %v", chunks, err)
			return nil, fmt.Errorf("%w: after %d chunks: %w", internal.ErrStreamRead, chunks, err)
		}

		data := chunk.Data
		total += int64(chunk.Len)
		chunks++
		if sum != nil {
			sum.Write(data)
		}
		if crc != nil {
			crc.Write(data)
		}
		if c.Retain {
			kept.Write(data)
		}
		if c.OnChunk != nil {
			c.OnChunk(total)
		}
		logger.Tracef("chunk %d: len=%d total=%d", chunks, chunk.Len, total)
	}

	res := &Result{Bytes: total, Chunks: chunks}
	if sum != nil {
		res.SHA256 = hex.EncodeToString(sum.Sum(nil))
	}
	if crc != nil {
		res.CRC32 = crc.Sum32()
	}
	if c.Retain {
		res.Data = kept.Bytes()
	}
	return res, nil
}

// DrainAndCount returns the sum of the lengths of all chunks ch yields before io.EOF.
func DrainAndCount(ctx context.Context, ch Chunker) (int64, error) {
	res, err := (&Counter{}).Drain(ctx, ch)
	if err != nil {
		return 0, err
	}
	return res.Bytes, nil
}

// Count drains r with a ReadSplitter of the default buffer size.
func Count(ctx context.Context, r io.Reader) (int64, error) {
	ch, err := (&ReadSplitter{BufSize: internal.DefaultChunkSize}).NewChunker(r)
	if err != nil {
		return 0, err
	}
	return DrainAndCount(ctx, ch)
}
