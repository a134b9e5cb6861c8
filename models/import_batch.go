package models

import (
	"time"

	"gorm.io/datatypes"
)

// Import source kinds.
const (
	ImportKindBank     = "bank"
	ImportKindContract = "contract"
	ImportKindInvoice  = "invoice"
)

// ImportBatch records one import run. Every row inserted by that run carries
// the same BatchID, so "transactions imported together" stays queryable.
// Report holds the full skip/duplicate/error detail as JSON.
type ImportBatch struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	BatchID  string `json:"batch_id" gorm:"size:64;uniqueIndex"`
	Kind     string `json:"kind" gorm:"size:16;not null"`
	Filename string `json:"filename"`

	ImportedCount  int `json:"imported_count"`
	SkippedCount   int `json:"skipped_count"`
	DuplicateCount int `json:"duplicate_count"`
	ErrorCount     int `json:"error_count"`

	Report datatypes.JSON `json:"report" gorm:"type:jsonb"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
