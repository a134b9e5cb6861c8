package ingest

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 30))
	assert.Equal(t, "abcde...", truncate("abcdefgh", 5))

	// cut must land on a rune boundary, not mid-sequence
	got := truncate("Künstlergage für die Tournée im Frühjahr", 30)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "Künstlergage für die Tournée i...", got)
}

func TestReportCompleted(t *testing.T) {
	r := newReport()
	assert.False(t, r.Completed(), "nothing examined yet")

	r.duplicate(2, "Show fee")
	assert.True(t, r.Completed(), "duplicate-only run completed")

	r.addError("Missing required column: Date")
	assert.False(t, r.Completed(), "structural error aborts the run")
}
