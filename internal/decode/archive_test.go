package decode

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/restoredb/restoredb/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tarArchive(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, name := range names {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: name,
			Mode: 0o600,
			Size: int64(len(sampleContent)),
		}))
		_, err := tw.Write(sampleContent)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func zipArchive(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(sampleContent)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestTarDecoder_SingleMember(t *testing.T) {
	rc, err := tarDecoder{}.Wrap(bytes.NewReader(tarArchive(t, "dump.sql")))
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, sampleContent, got)
}

func TestTarDecoder_DirectoriesIgnored(t *testing.T) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     "backups/",
		Mode:     0o755,
		Typeflag: tar.TypeDir,
	}))
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: "backups/dump.sql",
		Mode: 0o600,
		Size: int64(len(sampleContent)),
	}))
	_, err := tw.Write(sampleContent)
	require.NoError(t, err)
	require.NoError(t, tw.Close())

	rc, err := tarDecoder{}.Wrap(&buf)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, sampleContent, got)
}

func TestTarDecoder_MultipleMembers(t *testing.T) {
	_, err := tarDecoder{}.Wrap(bytes.NewReader(tarArchive(t, "a.sql", "b.sql")))
	assert.ErrorIs(t, err, models.ErrAmbiguousArchive)
}

func TestTarDecoder_Empty(t *testing.T) {
	_, err := tarDecoder{}.Wrap(bytes.NewReader(tarArchive(t)))
	assert.ErrorIs(t, err, models.ErrAmbiguousArchive)
}

func TestZipDecoder_SingleMember(t *testing.T) {
	rc, err := zipDecoder{}.Wrap(bytes.NewReader(zipArchive(t, "dump.sql")))
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, sampleContent, got)
}

func TestZipDecoder_MultipleMembers(t *testing.T) {
	_, err := zipDecoder{}.Wrap(bytes.NewReader(zipArchive(t, "a.sql", "b.sql")))
	assert.ErrorIs(t, err, models.ErrAmbiguousArchive)
}

func TestZipDecoder_Empty(t *testing.T) {
	_, err := zipDecoder{}.Wrap(bytes.NewReader(zipArchive(t)))
	assert.ErrorIs(t, err, models.ErrAmbiguousArchive)
}

func TestZipDecoder_Corrupt(t *testing.T) {
	_, err := zipDecoder{}.Wrap(bytes.NewReader([]byte("PK\x03\x04 not a zip")))
	assert.Error(t, err)
}

func TestSevenZipDecoder_SingleMember(t *testing.T) {
	rc, err := sevenZipDecoder{}.Wrap(bytes.NewReader(sevenZipContent))
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, sampleContent, got)
}

func TestSevenZipDecoder_Corrupt(t *testing.T) {
	_, err := sevenZipDecoder{}.Wrap(bytes.NewReader([]byte{0x37, 0x7a, 0xbc, 0xaf, 0x27, 0x1c, 0x00}))
	assert.Error(t, err)
}
