package models

import "time"

// BankTransaction is one ledger line from an imported bank statement.
// Amount is signed: positive = paid in, negative = paid out.
// Matched is the only field the matching engine mutates.
type BankTransaction struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Date        string  `json:"date" gorm:"index"`
	Type        string  `json:"type" gorm:"size:20"`
	Description string  `json:"description"`
	PaidOut     float64 `json:"paid_out" gorm:"type:numeric(12,2)"`
	PaidIn      float64 `json:"paid_in" gorm:"type:numeric(12,2)"`
	Amount      float64 `json:"amount" gorm:"type:numeric(12,2)"`
	Currency    string  `json:"currency" gorm:"size:3"`
	Matched     bool    `json:"matched" gorm:"index"`

	// Duplicate fingerprint over date|amount|description.
	TransactionHash string `json:"-" gorm:"size:32;uniqueIndex"`

	ImportBatch string    `json:"import_batch" gorm:"index"`
	ImportedAt  time.Time `json:"imported_at"`
}
