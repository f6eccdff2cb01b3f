// Package sniff detects the compression layering and dump format of a
// database dump from its filename and/or leading bytes.
package sniff

import (
	"archive/tar"
	"bytes"
	"path/filepath"
	"strings"

	"github.com/restoredb/restoredb/internal/models"
)

// peekSize is the detection window: large enough for a full tar header block
// plus a meaningful slice of text for the plain-SQL heuristic.
const peekSize = 8192

// pgTarTOC is the first member of a PostgreSQL tar-format dump.
const pgTarTOC = "toc.dat"

// pgCustomMagic is the signature of a PostgreSQL custom-format dump.
var pgCustomMagic = []byte("PGDMP")

// suffixKinds maps filename extensions to codecs. Applied right-to-left over
// a compound suffix chain, so decoders resolve outermost first.
var suffixKinds = map[string]models.CompressionKind{
	".gz":   models.CompressionGzip,
	".bz2":  models.CompressionBzip2,
	".xz":   models.CompressionXZ,
	".lzma": models.CompressionLzma,
	".zst":  models.CompressionZstd,
	".lz4":  models.CompressionLz4,
	".zip":  models.CompressionZip,
	".7z":   models.Compression7z,
	".tar":  models.CompressionTar,
}

// dumpSuffixes terminate a suffix chain: they name dump content, not a
// compression layer.
var dumpSuffixes = map[string]bool{
	".sql":    true,
	".dump":   true,
	".pgdump": true,
}

// signatures are the compression magic bytes, checked in order. The raw lzma
// container has no strong signature, so its weak prefix is matched last.
var signatures = []struct {
	kind  models.CompressionKind
	magic []byte
}{
	{models.CompressionGzip, []byte{0x1f, 0x8b}},
	{models.CompressionBzip2, []byte("BZh")},
	{models.CompressionXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{models.CompressionZstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{models.CompressionLz4, []byte{0x04, 0x22, 0x4d, 0x18}},
	{models.Compression7z, []byte{0x37, 0x7a, 0xbc, 0xaf, 0x27, 0x1c}},
	{models.CompressionZip, []byte("PK\x03\x04")},
	{models.CompressionLzma, []byte{0x5d, 0x00, 0x00}},
}

// LayersFromName resolves a filename's compound suffix chain into compression
// layers, outermost first. The second return reports whether the name is
// authoritative: it recognized at least one compression suffix, or ends in a
// known dump suffix. A non-authoritative name falls back to magic-byte
// detection.
func LayersFromName(name string) ([]models.CompressionKind, bool) {
	base := filepath.Base(name)
	var layers []models.CompressionKind
	for {
		raw := filepath.Ext(base)
		ext := strings.ToLower(raw)
		if ext == "" {
			return layers, len(layers) > 0
		}
		if kind, ok := suffixKinds[ext]; ok {
			layers = append(layers, kind)
			base = base[:len(base)-len(raw)]
			continue
		}
		if dumpSuffixes[ext] {
			return layers, true
		}
		return layers, len(layers) > 0
	}
}

// MatchMagic matches the leading bytes of a stream against the compression
// signature table.
func MatchMagic(peek []byte) (models.CompressionKind, bool) {
	for _, sig := range signatures {
		if bytes.HasPrefix(peek, sig.magic) {
			return sig.kind, true
		}
	}
	return "", false
}

// tarFirstMember reports the name of the first member when peek opens a tar
// stream.
func tarFirstMember(peek []byte) (string, bool) {
	if len(peek) < 512 || !bytes.HasPrefix(peek[257:], []byte("ustar")) {
		return "", false
	}
	hdr, err := tar.NewReader(bytes.NewReader(peek)).Next()
	if err != nil {
		return "", false
	}
	return hdr.Name, true
}

// looksLikeText reports whether peek is plausibly textual SQL: no NUL bytes
// and almost no control characters outside the usual whitespace.
func looksLikeText(peek []byte) bool {
	if len(peek) == 0 {
		return false
	}
	var weird int
	for _, b := range peek {
		if b == 0 {
			return false
		}
		if b < 0x20 && b != '\n' && b != '\r' && b != '\t' && b != '\f' {
			weird++
		}
	}
	return weird*20 < len(peek)
}

// DetectFormat decides the dump format of fully decompressed leading bytes.
// A generic (non-dump) tar stream returns FormatUnknown here; Resolve unwraps
// those as containers instead.
func DetectFormat(peek []byte) models.DumpFormat {
	if bytes.HasPrefix(peek, pgCustomMagic) {
		return models.FormatPgCustom
	}
	if member, ok := tarFirstMember(peek); ok && member == pgTarTOC {
		return models.FormatPgTar
	}
	if looksLikeText(peek) {
		return models.FormatPlainSQL
	}
	return models.FormatUnknown
}
