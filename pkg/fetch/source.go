// Package fetch opens remote objects as byte streams for counting.
package fetch

import (
	"context"
	"io"

	"github.com/zhengshuai-xiao/streamcount/internal"
)

var logger = internal.GetLogger("fetch")

// Body is an open response body. Size is the advertised length, or -1 when unknown.
type Body struct {
	io.ReadCloser
	Size int64
}

// Source provides a data stream. Every Open failure wraps internal.ErrTransport.
type Source interface {
	Open(ctx context.Context) (*Body, error)
	// String names the source in logs and in the result history.
	String() string
}
