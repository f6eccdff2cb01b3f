package decode

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"

	"github.com/bodgit/sevenzip"
	"github.com/restoredb/restoredb/internal/models"
)

// Archive containers must hold exactly one file; anything else is rejected
// before a restore tool is invoked. zip and 7z need random access, so the
// container bytes are spooled to a temp file first. The dump itself, the
// extracted member content, is never materialized.

// spool copies r to a temp file and returns it positioned at the start.
func spool(r io.Reader) (*os.File, int64, error) {
	f, err := os.CreateTemp("", "restoredb-archive-*")
	if err != nil {
		return nil, 0, fmt.Errorf("spooling archive: %w", err)
	}
	size, err := io.Copy(f, r)
	if err == nil {
		_, err = f.Seek(0, io.SeekStart)
	}
	if err != nil {
		discard(f)
		return nil, 0, fmt.Errorf("spooling archive: %w", err)
	}
	return f, size, nil
}

func discard(f *os.File) {
	_ = f.Close()
	_ = os.Remove(f.Name())
}

// memberReader streams one archive member and releases the spool file on
// Close.
type memberReader struct {
	io.Reader
	member io.Closer // nil when the member needs no close of its own
	f      *os.File
}

func (m *memberReader) Close() error {
	if m.member != nil {
		_ = m.member.Close()
	}
	discard(m.f)
	return nil
}

type tarDecoder struct{}

func (tarDecoder) Kind() models.CompressionKind { return models.CompressionTar }

func (tarDecoder) Wrap(r io.Reader) (io.ReadCloser, error) {
	f, _, err := spool(r)
	if err != nil {
		return nil, err
	}

	tr := tar.NewReader(f)
	var members int
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			discard(f)
			return nil, fmt.Errorf("reading tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg {
			members++
		}
	}
	if members != 1 {
		discard(f)
		return nil, fmt.Errorf("%w: tar holds %d files, need exactly one", models.ErrAmbiguousArchive, members)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		discard(f)
		return nil, err
	}
	tr = tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if err != nil {
			discard(f)
			return nil, fmt.Errorf("reading tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg {
			return &memberReader{Reader: tr, f: f}, nil
		}
	}
}

type zipDecoder struct{}

func (zipDecoder) Kind() models.CompressionKind { return models.CompressionZip }

func (zipDecoder) Wrap(r io.Reader) (io.ReadCloser, error) {
	f, size, err := spool(r)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(f, size)
	if err != nil {
		discard(f)
		return nil, fmt.Errorf("reading zip: %w", err)
	}

	var member *zip.File
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		if member != nil {
			discard(f)
			return nil, fmt.Errorf("%w: zip holds more than one file", models.ErrAmbiguousArchive)
		}
		member = zf
	}
	if member == nil {
		discard(f)
		return nil, fmt.Errorf("%w: zip holds no files", models.ErrAmbiguousArchive)
	}

	rc, err := member.Open()
	if err != nil {
		discard(f)
		return nil, fmt.Errorf("opening zip member %s: %w", member.Name, err)
	}
	return &memberReader{Reader: rc, member: rc, f: f}, nil
}

type sevenZipDecoder struct{}

func (sevenZipDecoder) Kind() models.CompressionKind { return models.Compression7z }

func (sevenZipDecoder) Wrap(r io.Reader) (io.ReadCloser, error) {
	f, size, err := spool(r)
	if err != nil {
		return nil, err
	}
	sz, err := sevenzip.NewReader(f, size)
	if err != nil {
		discard(f)
		return nil, fmt.Errorf("reading 7z: %w", err)
	}

	var member *sevenzip.File
	for _, sf := range sz.File {
		if sf.FileInfo().IsDir() {
			continue
		}
		if member != nil {
			discard(f)
			return nil, fmt.Errorf("%w: 7z holds more than one file", models.ErrAmbiguousArchive)
		}
		member = sf
	}
	if member == nil {
		discard(f)
		return nil, fmt.Errorf("%w: 7z holds no files", models.ErrAmbiguousArchive)
	}

	rc, err := member.Open()
	if err != nil {
		discard(f)
		return nil, fmt.Errorf("opening 7z member %s: %w", member.Name, err)
	}
	return &memberReader{Reader: rc, member: rc, f: f}, nil
}
