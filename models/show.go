package models

import "time"

// Show statuses.
const (
	ShowContracted = "Contracted"
	ShowPerformed  = "Performed"
	ShowSettled    = "Settled"
	ShowCancelled  = "Cancelled"
	ShowDisputed   = "Disputed"
)

// Show is the booking anchor. Every invoice, bank payment, outgoing payment,
// handshake and settlement hangs off a show.
type Show struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	ContractNumber string `json:"contract_number" gorm:"index"`

	Artist          string `json:"artist"`
	EventName       string `json:"event_name"`
	Venue           string `json:"venue"`
	City            string `json:"city"`
	Country         string `json:"country"`
	Agent           string `json:"agent"`
	PromoterName    string `json:"promoter_name"`
	BookingDate     string `json:"booking_date"`
	PerformanceDate string `json:"performance_date" gorm:"index"`
	PerformanceDay  string `json:"performance_day"`

	// Deal terms, carried over from the contract of record.
	DealDescription       string  `json:"deal_description"`
	TotalDealValue        float64 `json:"total_deal_value" gorm:"type:numeric(12,2)"`
	Currency              string  `json:"currency" gorm:"size:3"`
	ArtistFee             float64 `json:"artist_fee" gorm:"type:numeric(12,2)"`
	BookingFee            float64 `json:"booking_fee" gorm:"type:numeric(12,2)"`
	HotelBuyout           float64 `json:"hotel_buyout" gorm:"type:numeric(12,2)"`
	FlightBuyout          float64 `json:"flight_buyout" gorm:"type:numeric(12,2)"`
	GroundTransportBuyout float64 `json:"ground_transport_buyout" gorm:"type:numeric(12,2)"`
	WithholdingTax        float64 `json:"withholding_tax" gorm:"type:numeric(12,2)"`
	NetArtistSettlement   float64 `json:"net_artist_settlement" gorm:"type:numeric(12,2)"`

	Status           string `json:"status" gorm:"size:20"`
	SettlementStatus string `json:"settlement_status" gorm:"size:20"`
	Notes            string `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
