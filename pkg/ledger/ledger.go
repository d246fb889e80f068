// Package ledger keeps a history of counting results in Redis.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/zhengshuai-xiao/streamcount/internal"
	"github.com/zhengshuai-xiao/streamcount/pkg/fetch"
)

var logger = internal.GetLogger("ledger")

const DefaultPrefix = "streamcount:"

/*
	History:  <prefix>history:<source> -> [Record json, newest first, trimmed to limit]
	Last:     <prefix>last -> { <source> -> Record json }
	Channel:  <prefix>results  (every saved Record is published here)
*/

// Record is one successful count.
type Record struct {
	ID      string        `json:"id"`
	Source  string        `json:"source"`
	Bytes   int64         `json:"bytes"`
	Chunks  int           `json:"chunks"`
	SHA256  string        `json:"sha256,omitempty"`
	CRC32   uint32        `json:"crc32,omitempty"`
	Started time.Time     `json:"started"`
	Elapsed time.Duration `json:"elapsed"`
}

// NewRecord converts a job report into a Record with a fresh id.
func NewRecord(rep *fetch.Report) Record {
	return Record{
		ID:      uuid.New().String(),
		Source:  rep.Source,
		Bytes:   rep.Bytes,
		Chunks:  rep.Chunks,
		SHA256:  rep.SHA256,
		CRC32:   rep.CRC32,
		Started: rep.Started,
		Elapsed: rep.Elapsed,
	}
}

type Ledger struct {
	rdb    redis.UniversalClient
	prefix string
	limit  int
}

// Open connects to the redis at addr. limit bounds the history kept per source.
func Open(ctx context.Context, addr string, limit int) (*Ledger, error) {
	rdb, err := newUniversalRedisClient(ctx, addr)
	if err != nil {
		return nil, err
	}
	return New(rdb, DefaultPrefix, limit), nil
}

func New(rdb redis.UniversalClient, prefix string, limit int) *Ledger {
	if limit <= 0 {
		limit = internal.DefaultHistoryLimit
	}
	return &Ledger{rdb: rdb, prefix: prefix, limit: limit}
}

func (l *Ledger) historyKey(source string) string {
	return l.prefix + "history:" + source
}

func (l *Ledger) lastKey() string {
	return l.prefix + "last"
}

func (l *Ledger) Channel() string {
	return l.prefix + "results"
}

func (l *Ledger) Save(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	val, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	key := l.historyKey(rec.Source)
	_, err = l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, val)
		pipe.LTrim(ctx, key, 0, int64(l.limit-1))
		pipe.HSet(ctx, l.lastKey(), rec.Source, val)
		return nil
	})
	if err != nil {
		logger.Errorf("Save: transaction failed for %s: %v", rec.Source, err)
		return err
	}

	if err := l.rdb.Publish(ctx, l.Channel(), val).Err(); err != nil {
		logger.Warnf("Save: failed to publish record %s on %s: %v", rec.ID, l.Channel(), err)
	}
	logger.Debugf("saved record %s for %s", rec.ID, rec.Source)
	return nil
}

// History returns up to n records for source, newest first.
func (l *Ledger) History(ctx context.Context, source string, n int) ([]Record, error) {
	if n <= 0 || n > l.limit {
		n = l.limit
	}
	vals, err := l.rdb.LRange(ctx, l.historyKey(source), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to LRange history of %s: %w", source, err)
	}
	recs := make([]Record, 0, len(vals))
	for _, v := range vals {
		rec, err := decodeRecord(v)
		if err != nil {
			logger.Warnf("History: skipping bad record for %s: %v", source, err)
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Last returns the newest record for source, or nil if there is none.
func (l *Ledger) Last(ctx context.Context, source string) (*Record, error) {
	v, err := l.rdb.HGet(ctx, l.lastKey(), source).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to HGet last record of %s: %w", source, err)
	}
	rec, err := decodeRecord(v)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Watch calls fn for every record published until ctx is done.
func (l *Ledger) Watch(ctx context.Context, fn func(Record)) error {
	pubsub := l.rdb.Subscribe(ctx, l.Channel())
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", l.Channel(), err)
	}
	logger.Infof("watching results on redis channel '%s'", l.Channel())

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				logger.Warn("results channel closed, stop watching")
				return nil
			}
			rec, err := decodeRecord(msg.Payload)
			if err != nil {
				logger.Warnf("Watch: skipping bad message: %v", err)
				continue
			}
			fn(rec)
		case <-ctx.Done():
			return nil
		}
	}
}

func (l *Ledger) Close() error {
	return l.rdb.Close()
}

func decodeRecord(v string) (Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(v), &rec); err != nil {
		return Record{}, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}
