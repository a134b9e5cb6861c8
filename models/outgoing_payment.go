package models

import "time"

// Outgoing payment types the agency recognises.
const (
	PaymentArtistAdvance  = "Artist Advance"
	PaymentArtistFinal    = "Artist Final Settlement"
	PaymentHotel          = "Hotel"
	PaymentFlights        = "Flights"
	PaymentGround         = "Ground Transport"
	PaymentProduction     = "Production"
	PaymentOtherExpense   = "Other Expense"
)

// OutgoingPayment is a payment made by the agency (artist, hotel, flight and
// so on), optionally linked to a show and/or the bank transaction that paid
// it. Immutable once created except for the bank link.
type OutgoingPayment struct {
	ID                uint             `json:"id" gorm:"primaryKey"`
	ShowID            *uint            `json:"show_id" gorm:"index"`
	Show              *Show            `json:"-" gorm:"foreignKey:ShowID"`
	BankTransactionID *uint            `json:"bank_transaction_id" gorm:"index"`
	BankTransaction   *BankTransaction `json:"-" gorm:"foreignKey:BankTransactionID"`

	PaymentType string  `json:"payment_type" gorm:"not null"`
	Amount      float64 `json:"amount" gorm:"type:numeric(12,2)"`
	Currency    string  `json:"currency" gorm:"size:3"`
	PaymentDate string  `json:"payment_date"`
	Destination string  `json:"destination"`
	Reference   string  `json:"reference"`
	Notes       string  `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}
