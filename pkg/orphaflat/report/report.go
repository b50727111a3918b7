// Package report describes the outcome of one conversion run.
package report

import (
	"crypto/rand"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
)

var entropy = ulid.Monotonic(rand.Reader, 0)

// Report summarizes a single conversion: what ran, over which files,
// and how many records survived flattening. Record-local skips are
// counted here and never fail the run.
type Report struct {
	RunID   string
	Dataset string
	Input   string
	Output  string

	// Records is the number of source records inspected; Rows the
	// number of output rows written. They differ for association
	// dumps (one record expands to N rows) and for skipped records.
	Records int
	Rows    int

	// Skipped counts record-local failures: malformed annotation
	// lines, associations without a parseable sub-entity.
	Skipped int

	// Unmatched counts synonym strings that failed decomposition and
	// were carried through verbatim.
	Unmatched int

	// UnknownSources counts external-reference source keys that fall
	// outside the fixed column allow-list.
	UnknownSources int

	Elapsed time.Duration
}

// New starts a report with a fresh run id.
func New(dataset, input, output string) Report {
	return Report{
		RunID:   ulid.MustNew(ulid.Now(), entropy).String(),
		Dataset: dataset,
		Input:   input,
		Output:  output,
	}
}

// LogValue renders the report as structured log attributes.
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", r.RunID),
		slog.String("dataset", r.Dataset),
		slog.String("input", r.Input),
		slog.String("output", r.Output),
		slog.Int("records", r.Records),
		slog.Int("rows", r.Rows),
		slog.Int("skipped", r.Skipped),
		slog.Duration("elapsed", r.Elapsed),
	)
}
