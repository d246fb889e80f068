package compression

import (
	"io"

	"github.com/golang/snappy"
)

// SnappyDecompressor implements the Decompressor interface for the snappy
// framing format.
type SnappyDecompressor struct{}

// NewSnappy returns a new SnappyDecompressor.
func NewSnappy() *SnappyDecompressor {
	return &SnappyDecompressor{}
}

// Type returns the compression type.
func (d *SnappyDecompressor) Type() CompressionType {
	return Compress_snappy
}

// TypeString returns the compression type string.
func (d *SnappyDecompressor) TypeString() string {
	return "snappy"
}

func (d *SnappyDecompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(snappy.NewReader(r)), nil
}
