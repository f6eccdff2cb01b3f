package models

import "time"

// RestoreJob binds one DumpSource to its resolved compression layers, dump
// format, and the concrete restore tool invocation. A job is constructed per
// source at invocation time and discarded after the restore process exits.
type RestoreJob struct {
	Source DumpSource
	Layers []CompressionKind // outermost first
	Format DumpFormat
	Tool   string   // canonical tool name, e.g. "psql"
	Path   string   // binary actually invoked; defaults to Tool
	Args   []string // full argument list, overrides already merged
	Env    []string // extra environment, e.g. PGPASSWORD
}

// JobResult holds the outcome of one restore job.
type JobResult struct {
	Source   DumpSource
	Layers   []CompressionKind
	Format   DumpFormat
	Duration time.Duration
	Error    error
}

// RunResult aggregates the results of a sequential restore run.
type RunResult struct {
	Jobs   []JobResult
	Failed int
}
