package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
)

// ErrEmptySource is returned when the CSV has no header row.
var ErrEmptySource = errors.New("source contains no header row")

// Table is a fully-read tabular source: a header row plus data rows.
// Row numbers reported to the user are 1-based with the header as row 1,
// so the first data row is row 2 (matches what they see in a spreadsheet).
type Table struct {
	Headers []string
	rows    [][]string
	index   map[string]int
}

// ReadTable reads an entire CSV source into memory. It strips a UTF-8 BOM,
// trims header cells, and tolerates rows with a variable field count.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptySource
	}

	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[h] = i
	}

	return &Table{Headers: headers, rows: records[1:], index: index}, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Cell returns the raw cell at data row i for the given header, or "" when
// the column is unknown or the row is short.
func (t *Table) Cell(i int, header string) string {
	col, ok := t.index[header]
	if !ok || i < 0 || i >= len(t.rows) {
		return ""
	}
	row := t.rows[i]
	if col >= len(row) {
		return ""
	}
	return row[col]
}

// RowNumber converts a data row index to the user-facing row number.
func (t *Table) RowNumber(i int) int { return i + 2 }

// ResolveColumn finds the header matching one of the candidate names.
// Pass 1 is an exact case-insensitive match; pass 2 accepts a substring
// containment, but only for candidates longer than two characters so that
// e.g. "in" never matches inside "Description". Deterministic for a given
// header order; returns "" when nothing matches.
func ResolveColumn(headers []string, candidates []string) string {
	for _, h := range headers {
		hl := strings.ToLower(strings.TrimSpace(h))
		for _, name := range candidates {
			if hl == strings.ToLower(name) {
				return h
			}
		}
	}
	for _, h := range headers {
		hl := strings.ToLower(strings.TrimSpace(h))
		for _, name := range candidates {
			if len(name) > 2 && strings.Contains(hl, strings.ToLower(name)) {
				return h
			}
		}
	}
	return ""
}

// Field pairs a logical field name with its candidate header names, in
// resolution priority order.
type Field struct {
	Name       string
	Candidates []string
}

// ResolveColumns resolves a whole field set in two phases: every field tries
// an exact match first, and only fields still unresolved fall back to
// substring matching. The phase split stops a short candidate on one field
// from greedily claiming a header that another field matches exactly.
// A header already claimed by one field is not reused by another in phase 2.
func ResolveColumns(headers []string, fields []Field) map[string]string {
	out := make(map[string]string, len(fields))
	claimed := make(map[string]bool)

	for _, f := range fields {
		for _, h := range headers {
			hl := strings.ToLower(strings.TrimSpace(h))
			for _, name := range f.Candidates {
				if hl == strings.ToLower(name) {
					out[f.Name] = h
					claimed[h] = true
					break
				}
			}
			if _, ok := out[f.Name]; ok {
				break
			}
		}
	}

	for _, f := range fields {
		if _, ok := out[f.Name]; ok {
			continue
		}
		for _, h := range headers {
			if claimed[h] {
				continue
			}
			hl := strings.ToLower(strings.TrimSpace(h))
			for _, name := range f.Candidates {
				if len(name) > 2 && strings.Contains(hl, strings.ToLower(name)) {
					out[f.Name] = h
					claimed[h] = true
					break
				}
			}
			if _, ok := out[f.Name]; ok {
				break
			}
		}
	}

	return out
}

// missing-cell sentinels produced by various exporters
var textSentinels = map[string]bool{
	"": true, "nan": true, "none": true, "n/a": true, "null": true,
}

var zeroSentinels = map[string]bool{
	"": true, "nan": true, "none": true, "n/a": true, "-": true,
	"zero": true, "nil": true, "null": true,
}

// CoerceText normalizes missing-cell sentinels to "" and trims everything else.
func CoerceText(raw string) string {
	v := strings.TrimSpace(raw)
	if textSentinels[strings.ToLower(v)] {
		return ""
	}
	return v
}

var amountReplacer = strings.NewReplacer(",", "", "£", "", "$", "", "€", "")

// CoerceAmount parses a monetary cell, stripping thousands separators and
// currency symbols. Empty cells and textual zero sentinels come back as 0.
// Never fails: unparseable input is 0.
func CoerceAmount(raw string) float64 {
	v := strings.TrimSpace(raw)
	if zeroSentinels[strings.ToLower(v)] {
		return 0.0
	}
	cleaned := strings.TrimSpace(amountReplacer.Replace(v))
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0.0
	}
	return f
}

// CoerceInt parses an integer identifier cell, tolerating float-formatted
// values ("910516.0") the way spreadsheet exports write them. Returns def on
// any failure.
func CoerceInt(raw string, def int) int {
	v := CoerceText(raw)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return def
}
