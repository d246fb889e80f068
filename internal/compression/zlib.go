package compression

import (
	"io"

	"github.com/klauspost/compress/zlib"
)

// ZlibDecompressor implements the Decompressor interface using Zlib.
type ZlibDecompressor struct{}

// NewZlib returns a new ZlibDecompressor.
func NewZlib() *ZlibDecompressor {
	return &ZlibDecompressor{}
}

func (d *ZlibDecompressor) Type() CompressionType {
	return Compress_zlib
}

// TypeString returns the compression type.
func (d *ZlibDecompressor) TypeString() string {
	return "zlib"
}

// NewReader reads the zlib header from r before returning.
func (d *ZlibDecompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return zlib.NewReader(r)
}
