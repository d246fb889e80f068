package compression

import (
	"errors"
	"io"
)

type CompressionType byte

const (
	Compress_none   CompressionType = iota //0
	Compress_gzip                          //1
	Compress_zlib                          //2
	Compress_snappy                        //3
)

var (
	ErrInvalidCompressionType = errors.New("invalid compression type")

	CompressionMethods = map[string]CompressionType{
		"none":   Compress_none,
		"gzip":   Compress_gzip,
		"zlib":   Compress_zlib,
		"snappy": Compress_snappy,
	}
)

// Decompressor turns a compressed byte stream into a stream of the decoded bytes.
type Decompressor interface {
	// NewReader wraps r. Closing the result does not close r.
	NewReader(r io.Reader) (io.ReadCloser, error)

	// TypeString returns the method name, e.g. "zlib", "snappy".
	TypeString() string
	Type() CompressionType
}

func GetDecompressorViaString(method string) (Decompressor, error) {
	compressionType, ok := CompressionMethods[method]
	if !ok {
		return nil, ErrInvalidCompressionType
	}
	return GetDecompressorViaType(compressionType)
}

func GetDecompressorViaType(compressionType CompressionType) (Decompressor, error) {
	switch compressionType {
	case Compress_none:
		return NewNone(), nil
	case Compress_gzip:
		return NewGzip(), nil
	case Compress_zlib:
		return NewZlib(), nil
	case Compress_snappy:
		return NewSnappy(), nil
	default:
		return nil, ErrInvalidCompressionType
	}
}

// NewReader is shorthand for GetDecompressorViaString(method) followed by NewReader(r).
func NewReader(method string, r io.Reader) (io.ReadCloser, error) {
	d, err := GetDecompressorViaString(method)
	if err != nil {
		return nil, err
	}
	return d.NewReader(r)
}

// NoneDecompressor passes bytes through unchanged.
type NoneDecompressor struct{}

func NewNone() *NoneDecompressor {
	return &NoneDecompressor{}
}

func (d *NoneDecompressor) Type() CompressionType {
	return Compress_none
}

func (d *NoneDecompressor) TypeString() string {
	return "none"
}

func (d *NoneDecompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}
