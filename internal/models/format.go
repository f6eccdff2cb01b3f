// Package models contains the data structures used throughout restoredb.
package models

// CompressionKind identifies one compression or archive codec. The set is
// closed: unmatched input is rejected, never passed through.
type CompressionKind string

// Supported compression and archive codecs.
const (
	CompressionGzip  CompressionKind = "gzip"
	CompressionBzip2 CompressionKind = "bzip2"
	CompressionXZ    CompressionKind = "xz"
	CompressionLzma  CompressionKind = "lzma"
	CompressionZstd  CompressionKind = "zstd"
	CompressionLz4   CompressionKind = "lz4"
	CompressionZip   CompressionKind = "zip"
	Compression7z    CompressionKind = "7z"
	CompressionTar   CompressionKind = "tar"
)

// DumpFormat is the innermost content type after all compression layers are
// stripped. It determines which restore tool is invoked.
type DumpFormat string

// Recognized dump formats.
const (
	FormatPlainSQL DumpFormat = "plain-sql"
	FormatPgCustom DumpFormat = "pg-custom"
	FormatPgTar    DumpFormat = "pg-tar"
	FormatUnknown  DumpFormat = "unknown"
)
