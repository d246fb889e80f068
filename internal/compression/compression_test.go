package compression

import (
	"bytes"
	"io"
	"testing"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var payload = bytes.Repeat([]byte("sfav2_CONUS_24h grid184 "), 512)

func encode(t *testing.T, method string, data []byte) []byte {
	var b bytes.Buffer
	var w io.WriteCloser
	switch method {
	case "gzip":
		w = gzip.NewWriter(&b)
	case "zlib":
		w = zlib.NewWriter(&b)
	case "snappy":
		w = snappy.NewBufferedWriter(&b)
	default:
		return data
	}
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return b.Bytes()
}

func TestGetDecompressor(t *testing.T) {
	t.Run("GetDecompressorViaString", func(t *testing.T) {
		d, err := GetDecompressorViaString("zlib")
		assert.NoError(t, err)
		assert.IsType(t, &ZlibDecompressor{}, d)

		d, err = GetDecompressorViaString("snappy")
		assert.NoError(t, err)
		assert.IsType(t, &SnappyDecompressor{}, d)

		d, err = GetDecompressorViaString("none")
		assert.NoError(t, err)
		assert.IsType(t, &NoneDecompressor{}, d)

		d, err = GetDecompressorViaString("invalid")
		assert.Equal(t, ErrInvalidCompressionType, err)
		assert.Nil(t, d)
	})

	t.Run("GetDecompressorViaType", func(t *testing.T) {
		d, err := GetDecompressorViaType(Compress_gzip)
		assert.NoError(t, err)
		assert.Equal(t, "gzip", d.TypeString())
		assert.Equal(t, Compress_gzip, d.Type())

		d, err = GetDecompressorViaType(99)
		assert.Equal(t, ErrInvalidCompressionType, err)
		assert.Nil(t, d)
	})
}

func TestNewReaderRoundTrip(t *testing.T) {
	for _, method := range []string{"none", "gzip", "zlib", "snappy"} {
		t.Run(method, func(t *testing.T) {
			encoded := encode(t, method, payload)
			if method != "none" {
				assert.Less(t, len(encoded), len(payload))
			}

			r, err := NewReader(method, bytes.NewReader(encoded))
			require.NoError(t, err)
			defer r.Close()

			decoded, err := io.ReadAll(r)
			assert.NoError(t, err)
			assert.Equal(t, payload, decoded)
		})
	}
}

func TestNewReaderInvalidData(t *testing.T) {
	_, err := NewReader("gzip", bytes.NewReader([]byte("this is not gzip data")))
	assert.Error(t, err)

	// snappy only notices on the first read
	r, err := NewReader("snappy", bytes.NewReader([]byte("this is not snappy data")))
	require.NoError(t, err)
	_, err = io.ReadAll(r)
	assert.Error(t, err)
}
