package models

import "fmt"

// SourceKind distinguishes where a dump's bytes come from.
type SourceKind string

// Dump source kinds.
const (
	SourceFile   SourceKind = "file"
	SourceStdin  SourceKind = "stdin"
	SourceRemote SourceKind = "remote"
)

// DumpSource is one input reference: a filesystem path, the standard input
// stream, or a remote file reached over SSH. Position preserves the
// caller-supplied order for multi-part restores.
type DumpSource struct {
	Kind     SourceKind
	Path     string // file path, or remote path for SourceRemote
	Host     string // user@host for SourceRemote
	Position int
}

// Name returns the display name used in logs and error reports.
func (s DumpSource) Name() string {
	switch s.Kind {
	case SourceStdin:
		return "stdin"
	case SourceRemote:
		return fmt.Sprintf("%s:%s", s.Host, s.Path)
	default:
		return s.Path
	}
}

// SniffName returns the filename used for suffix sniffing, empty when no
// filename is available (stdin).
func (s DumpSource) SniffName() string {
	if s.Kind == SourceStdin {
		return ""
	}
	return s.Path
}
