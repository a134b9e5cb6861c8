package models

import "time"

// Settlement statuses. Confirmed is terminal and set only by an explicit
// confirm action; the others are recomputed from the amounts.
const (
	SettlementPending   = "Pending"
	SettlementPartial   = "Partial"
	SettlementPaid      = "Paid"
	SettlementConfirmed = "Confirmed"
)

// Settlement tracks the agency's payout to an artist for one show.
// Balance = AmountDue - AmountPaid. Never deleted.
type Settlement struct {
	ID     uint  `json:"id" gorm:"primaryKey"`
	ShowID uint  `json:"show_id" gorm:"index;not null"`
	Show   *Show `json:"-" gorm:"foreignKey:ShowID"`

	AmountDue  float64 `json:"amount_due" gorm:"type:numeric(12,2)"`
	AmountPaid float64 `json:"amount_paid" gorm:"type:numeric(12,2)"`
	Balance    float64 `json:"balance" gorm:"type:numeric(12,2)"`
	Currency   string  `json:"currency" gorm:"size:3"`
	Status     string  `json:"status" gorm:"size:20"`
	Notes      string  `json:"notes"`

	ConfirmedBy string     `json:"confirmed_by"`
	ConfirmedAt *time.Time `json:"confirmed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
