package models

import "errors"

// Sentinel errors for the failure conditions a restore run can report.
// Sniffing errors and restore-tool failures are scoped to the single source
// that produced them; the run continues with the next source.
var (
	// ErrUnsupportedCompression is returned for an unrecognized outer
	// compression suffix or magic signature.
	ErrUnsupportedCompression = errors.New("unsupported compression")

	// ErrUnsupportedDumpFormat is returned when the fully decompressed
	// content matches no known dump format. Detection never defaults to
	// plain SQL.
	ErrUnsupportedDumpFormat = errors.New("unsupported dump format")

	// ErrAmbiguousArchive is returned when an archive container holds more
	// than one member, or none.
	ErrAmbiguousArchive = errors.New("ambiguous archive contents")

	// ErrMissingInput is returned when no file arguments are given and
	// standard input is a terminal.
	ErrMissingInput = errors.New("no dump file and no data on standard input")
)
