package models

import "time"

// Contract holds the deal terms of record. One contract creates exactly one
// show at import time; ShowID is the only field mutated after creation.
type Contract struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	ContractNumber string `json:"contract_number" gorm:"unique;not null"`
	ShowID         *uint  `json:"show_id" gorm:"index"`
	Show           *Show  `json:"-" gorm:"foreignKey:ShowID"`

	BookingDate     string `json:"booking_date"`
	Artist          string `json:"artist"`
	EventName       string `json:"event_name"`
	Venue           string `json:"venue"`
	City            string `json:"city"`
	Country         string `json:"country"`
	PerformanceDate string `json:"performance_date"`
	PerformanceDay  string `json:"performance_day"`

	DealDescription       string  `json:"deal_description"`
	TotalDealValue        float64 `json:"total_deal_value" gorm:"type:numeric(12,2)"`
	Currency              string  `json:"currency" gorm:"size:3"`
	ArtistFee             float64 `json:"artist_fee" gorm:"type:numeric(12,2)"`
	BookingFee            float64 `json:"booking_fee" gorm:"type:numeric(12,2)"`
	BookingFeeVAT         float64 `json:"booking_fee_vat" gorm:"type:numeric(12,2)"`
	HotelBuyout           float64 `json:"hotel_buyout" gorm:"type:numeric(12,2)"`
	FlightBuyout          float64 `json:"flight_buyout" gorm:"type:numeric(12,2)"`
	GroundTransportBuyout float64 `json:"ground_transport_buyout" gorm:"type:numeric(12,2)"`
	WithholdingTax        float64 `json:"withholding_tax" gorm:"type:numeric(12,2)"`
	TotalArtistSettlement float64 `json:"total_artist_settlement" gorm:"type:numeric(12,2)"`

	ImportBatch string    `json:"import_batch" gorm:"index"`
	ImportedAt  time.Time `json:"imported_at"`
}
