package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/zhengshuai-xiao/streamcount/internal"
	"github.com/zhengshuai-xiao/streamcount/internal/compression"
	"github.com/zhengshuai-xiao/streamcount/pkg/stream"
)

// Job opens a source and drains it through a counter.
type Job struct {
	Source   Source
	Decode   string
	Splitter stream.Splitter
	Counter  *stream.Counter
}

// Report is the outcome of a successful Job.
type Report struct {
	stream.Result
	Source     string
	Advertised int64
	Started    time.Time
	Elapsed    time.Duration
}

// NewJob builds a job from conf; the body is decoded with conf.Decode before counting.
func NewJob(src Source, conf *internal.Config) (*Job, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if _, err := compression.GetDecompressorViaString(conf.Decode); err != nil {
		return nil, fmt.Errorf("%w: decode %q: %w", internal.ErrInvalidConfig, conf.Decode, err)
	}
	splitter, err := stream.NewSplitter(conf.ChunkMethod, conf.ChunkSize)
	if err != nil {
		return nil, err
	}
	return &Job{
		Source:   src,
		Decode:   conf.Decode,
		Splitter: splitter,
		Counter: &stream.Counter{
			Retain:   conf.Retain,
			Digest:   conf.Digest,
			Checksum: conf.Checksum,
		},
	}, nil
}

func (j *Job) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	body, err := j.Source.Open(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: opening %s: %w", internal.ErrCanceled, j.Source, ctxErr)
		}
		return nil, err
	}
	defer body.Close()

	decoded, err := compression.NewReader(j.Decode, body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", internal.ErrStreamRead, j.Decode, err)
	}
	defer decoded.Close()

	ch, err := j.Splitter.NewChunker(decoded)
	if err != nil {
		return nil, err
	}
	counter := j.Counter
	if counter == nil {
		counter = &stream.Counter{}
	}
	res, err := counter.Drain(ctx, ch)
	if err != nil {
		logger.Warnf("counting %s failed: %v", j.Source, err)
		return nil, err
	}

	rep := &Report{
		Result:     *res,
		Source:     j.Source.String(),
		Advertised: body.Size,
		Started:    start,
		Elapsed:    time.Since(start),
	}
	if j.Decode == "none" && body.Size >= 0 && body.Size != res.Bytes {
		logger.Warnf("%s advertised %d bytes but delivered %d", j.Source, body.Size, res.Bytes)
	}
	logger.Infof("%s: %d bytes in %d chunks, %s", j.Source, res.Bytes, res.Chunks, rep.Elapsed)
	return rep, nil
}
