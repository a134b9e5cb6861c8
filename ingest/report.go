package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Report accumulates everything an import run chose not to insert.
// Errors are structural problems (missing required column), Skipped are rows
// dropped with a reason, Duplicates are rows already present in storage.
type Report struct {
	BatchID    string   `json:"batch_id"`
	Errors     []string `json:"errors"`
	Skipped    []string `json:"skipped"`
	Duplicates []string `json:"duplicates"`
}

func newReport() Report {
	return Report{BatchID: NewBatchID()}
}

func (r *Report) addError(msg string) {
	r.Errors = append(r.Errors, msg)
}

func (r *Report) skip(rowNum int, reason string) {
	r.Skipped = append(r.Skipped, fmt.Sprintf("Row %d: %s", rowNum, reason))
}

func (r *Report) duplicate(rowNum int, detail string) {
	r.Duplicates = append(r.Duplicates, fmt.Sprintf("Row %d: %s", rowNum, detail))
}

// summary renders the trailing "(N errors, N skipped, N duplicates)" part of
// an import result message. Empty when there is nothing to report.
func (r *Report) summary() string {
	var parts []string
	if n := len(r.Errors); n > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", n))
	}
	if n := len(r.Skipped); n > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", n))
	}
	if n := len(r.Duplicates); n > 0 {
		parts = append(parts, fmt.Sprintf("%d duplicates", n))
	}
	return strings.Join(parts, ", ")
}

// NewBatchID returns the batch tag stamped on every record of one import run.
// Wall-clock prefix keeps batches sortable; the uuid suffix keeps two runs in
// the same second distinct.
func NewBatchID() string {
	return fmt.Sprintf("batch_%s_%s",
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8])
}

// Completed reports whether the run got past structural validation and
// examined rows, even when nothing new was inserted. A duplicate-only
// re-import completes; a run aborted on a missing column does not.
func (r *Report) Completed() bool {
	return len(r.Errors) == 0 && (len(r.Skipped) > 0 || len(r.Duplicates) > 0)
}

// truncate shortens a description for duplicate-report lines, cutting on a
// rune boundary so multi-byte text stays valid UTF-8.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
