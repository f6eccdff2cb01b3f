package sniff

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/restoredb/restoredb/internal/decode"
	"github.com/restoredb/restoredb/internal/models"
)

// Resolution is the outcome of sniffing one dump source: the compression
// layers that were stripped (outermost first), the innermost dump format, and
// a reader positioned at the start of the fully decompressed content.
type Resolution struct {
	Layers []models.CompressionKind
	Format models.DumpFormat
	Reader io.ReadCloser
}

// Resolve sniffs a dump stream. When name carries a recognized suffix chain,
// the chain is authoritative for the compression layers; otherwise the layers
// are detected from magic bytes, stripping until no compression signature
// matches. The dump format is always decided from decompressed bytes, never
// from the filename.
//
// On error the stream state is undefined; the caller closes the underlying
// source. On success the caller must close Resolution.Reader, which unwinds
// the whole decoder stack (but not the underlying source).
func Resolve(r io.Reader, name string) (*Resolution, error) {
	st := &stream{br: bufio.NewReaderSize(r, peekSize)}
	res := &Resolution{}

	peek, err := st.peek()
	if err != nil {
		st.closeAll()
		return nil, models.ErrMissingInput
	}

	layers, authoritative := LayersFromName(name)
	if authoritative {
		// A tar suffix may name a pg tar dump rather than a container;
		// defer it (and anything beneath it) to format detection.
		if i := slices.Index(layers, models.CompressionTar); i >= 0 {
			layers = layers[:i]
		}
		if err := st.strip(layers...); err != nil {
			st.closeAll()
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		res.Layers = append(res.Layers, layers...)
	} else {
		if err := stripByMagic(st, res); err != nil {
			st.closeAll()
			return nil, err
		}
	}

	for {
		peek, err = st.peek()
		if err != nil {
			st.closeAll()
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: empty stream after decompression", models.ErrUnsupportedDumpFormat)
			}
			return nil, err
		}

		if member, ok := tarFirstMember(peek); ok && member != pgTarTOC {
			// Generic tar container: unwrap its single member and
			// keep sniffing inside, the member may be compressed.
			if err := st.strip(models.CompressionTar); err != nil {
				st.closeAll()
				return nil, err
			}
			res.Layers = append(res.Layers, models.CompressionTar)
			if err := stripByMagic(st, res); err != nil {
				st.closeAll()
				return nil, err
			}
			continue
		}

		format := DetectFormat(peek)
		if format == models.FormatUnknown {
			st.closeAll()
			return nil, fmt.Errorf("%w: content matches no known dump signature", models.ErrUnsupportedDumpFormat)
		}
		res.Format = format
		res.Reader = st.readCloser()
		return res, nil
	}
}

// stripByMagic strips compression layers as long as the leading bytes match a
// compression signature. Containers (zip, 7z) are unwrapped to their single
// member along the way.
func stripByMagic(st *stream, res *Resolution) error {
	for {
		peek, err := st.peek()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		kind, ok := MatchMagic(peek)
		if !ok {
			return nil
		}
		if err := st.strip(kind); err != nil {
			return err
		}
		res.Layers = append(res.Layers, kind)
	}
}

// stream tracks the current position in the decoder stack and the decoders
// opened to get there.
type stream struct {
	br      *bufio.Reader
	closers []io.Closer
}

func (s *stream) peek() ([]byte, error) {
	b, err := s.br.Peek(peekSize)
	if len(b) > 0 {
		return b, nil
	}
	if err == nil {
		err = io.EOF
	}
	return nil, err
}

func (s *stream) strip(kinds ...models.CompressionKind) error {
	if len(kinds) == 0 {
		return nil
	}
	rc, err := decode.Chain(s.br, kinds)
	if err != nil {
		return err
	}
	s.closers = append(s.closers, rc)
	s.br = bufio.NewReaderSize(rc, peekSize)
	return nil
}

func (s *stream) closeAll() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i].Close()
	}
}

func (s *stream) readCloser() io.ReadCloser {
	return &stackReader{br: s.br, stack: s}
}

type stackReader struct {
	br    *bufio.Reader
	stack *stream
}

func (r *stackReader) Read(p []byte) (int, error) { return r.br.Read(p) }

func (r *stackReader) Close() error {
	r.stack.closeAll()
	return nil
}
