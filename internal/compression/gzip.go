package compression

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// GzipDecompressor implements the Decompressor interface using gzip.
type GzipDecompressor struct{}

func NewGzip() *GzipDecompressor {
	return &GzipDecompressor{}
}

func (d *GzipDecompressor) Type() CompressionType {
	return Compress_gzip
}

func (d *GzipDecompressor) TypeString() string {
	return "gzip"
}

// NewReader reads the gzip header from r before returning. Concatenated members
// are decoded as one stream.
func (d *GzipDecompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}
