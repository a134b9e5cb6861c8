package models

import "time"

// Invoice is a bill issued to a promoter, unique by invoice number.
// PaidAmount/BalanceRemaining/IsPaid are rollups maintained incrementally by
// the matching engine: PaidAmount always equals the sum of applied+proxy over
// the invoice's handshakes, BalanceRemaining = TotalGross - PaidAmount.
type Invoice struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	InvoiceNumber  string `json:"invoice_number" gorm:"unique;not null"`
	ContractNumber string `json:"contract_number" gorm:"index"`
	ShowID         *uint  `json:"show_id" gorm:"index"`
	Show           *Show  `json:"-" gorm:"foreignKey:ShowID"`

	FromEntity         string `json:"from_entity"`
	PromoterName       string `json:"promoter_name"`
	PaymentBankDetails string `json:"payment_bank_details"`
	Reference          string `json:"reference"`
	Currency           string `json:"currency" gorm:"size:3"`
	InvoiceDate        string `json:"invoice_date"`
	ShowDate           string `json:"show_date"`

	Items []InvoiceLineItem `json:"items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`

	// Header totals, always derived from line items at import time.
	TotalNet   float64 `json:"total_net" gorm:"type:numeric(12,2)"`
	TotalVAT   float64 `json:"total_vat" gorm:"type:numeric(12,2)"`
	TotalGross float64 `json:"total_gross" gorm:"type:numeric(12,2)"`

	PaidAmount       float64 `json:"paid_amount" gorm:"type:numeric(12,2)"`
	BalanceRemaining float64 `json:"balance_remaining" gorm:"type:numeric(12,2)"`
	IsPaid           bool    `json:"is_paid" gorm:"index"`

	ImportBatch string    `json:"import_batch" gorm:"index"`
	ImportedAt  time.Time `json:"imported_at"`
}

// InvoiceLineItem is one charge line on an invoice. Simple-format imports get
// a single synthetic line with account code "Invoice Total".
type InvoiceLineItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	InvoiceID   uint    `json:"-" gorm:"index;not null"`
	AccountCode string  `json:"account_code" gorm:"not null"`
	Description string  `json:"description"`
	Net         float64 `json:"net" gorm:"type:numeric(12,2)"`
	VAT         float64 `json:"vat" gorm:"type:numeric(12,2)"`
	Gross       float64 `json:"gross" gorm:"type:numeric(12,2)"`
}
