package models

import "time"

// Handshake links exactly one bank transaction to one invoice. AppliedAmount
// is the slice of the bank amount put against the invoice; ProxyAmount is a
// manual adjustment absorbing FX differences or fees. Creating one increments
// the invoice's PaidAmount by applied+proxy and marks the bank transaction
// matched; deleting one reverses both.
type Handshake struct {
	ID                uint             `json:"id" gorm:"primaryKey"`
	BankTransactionID uint             `json:"bank_transaction_id" gorm:"index;not null"`
	BankTransaction   *BankTransaction `json:"-" gorm:"foreignKey:BankTransactionID"`
	InvoiceID         uint             `json:"invoice_id" gorm:"index;not null"`
	Invoice           *Invoice         `json:"-" gorm:"foreignKey:InvoiceID"`

	AppliedAmount float64 `json:"applied_amount" gorm:"type:numeric(12,2)"`
	ProxyAmount   float64 `json:"proxy_amount" gorm:"type:numeric(12,2)"`
	Note          string  `json:"note"`
	CreatedBy     string  `json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
}
