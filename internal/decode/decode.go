// Package decode turns compressed or archived byte streams back into the
// contained dump stream. Every codec wraps an io.Reader, so decompression of
// later bytes overlaps with the consumer draining earlier ones.
package decode

import (
	"compress/bzip2"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/pierrec/lz4/v4"
	"github.com/restoredb/restoredb/internal/models"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// Decoder wraps a compressed stream into its decompressed content.
type Decoder interface {
	Kind() models.CompressionKind
	Wrap(r io.Reader) (io.ReadCloser, error)
}

var decoders = map[models.CompressionKind]Decoder{
	models.CompressionGzip:  gzipDecoder{},
	models.CompressionBzip2: bzip2Decoder{},
	models.CompressionXZ:    xzDecoder{},
	models.CompressionLzma:  lzmaDecoder{},
	models.CompressionZstd:  zstdDecoder{},
	models.CompressionLz4:   lz4Decoder{},
	models.CompressionTar:   tarDecoder{},
	models.CompressionZip:   zipDecoder{},
	models.Compression7z:    sevenZipDecoder{},
}

// For returns the decoder for a codec.
func For(kind models.CompressionKind) (Decoder, error) {
	dec, ok := decoders[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedCompression, kind)
	}
	return dec, nil
}

// Chain composes the decoders for a layer sequence, outermost first. Closing
// the returned reader unwinds the whole stack.
func Chain(r io.Reader, layers []models.CompressionKind) (io.ReadCloser, error) {
	cur := r
	var closers []io.Closer
	for _, kind := range layers {
		dec, err := For(kind)
		if err != nil {
			closeAll(closers)
			return nil, err
		}
		rc, err := dec.Wrap(cur)
		if err != nil {
			closeAll(closers)
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		closers = append(closers, rc)
		cur = rc
	}
	return &chainReader{Reader: cur, closers: closers}, nil
}

type chainReader struct {
	io.Reader
	closers []io.Closer
}

func (c *chainReader) Close() error {
	closeAll(c.closers)
	return nil
}

func closeAll(closers []io.Closer) {
	for i := len(closers) - 1; i >= 0; i-- {
		_ = closers[i].Close()
	}
}

type gzipDecoder struct{}

func (gzipDecoder) Kind() models.CompressionKind { return models.CompressionGzip }

func (gzipDecoder) Wrap(r io.Reader) (io.ReadCloser, error) {
	return pgzip.NewReader(r)
}

type bzip2Decoder struct{}

func (bzip2Decoder) Kind() models.CompressionKind { return models.CompressionBzip2 }

func (bzip2Decoder) Wrap(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(bzip2.NewReader(r)), nil
}

type xzDecoder struct{}

func (xzDecoder) Kind() models.CompressionKind { return models.CompressionXZ }

func (xzDecoder) Wrap(r io.Reader) (io.ReadCloser, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(xr), nil
}

type lzmaDecoder struct{}

func (lzmaDecoder) Kind() models.CompressionKind { return models.CompressionLzma }

func (lzmaDecoder) Wrap(r io.Reader) (io.ReadCloser, error) {
	lr, err := lzma.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(lr), nil
}

type zstdDecoder struct{}

func (zstdDecoder) Kind() models.CompressionKind { return models.CompressionZstd }

func (zstdDecoder) Wrap(r io.Reader) (io.ReadCloser, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return zr.IOReadCloser(), nil
}

type lz4Decoder struct{}

func (lz4Decoder) Kind() models.CompressionKind { return models.CompressionLz4 }

func (lz4Decoder) Wrap(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
