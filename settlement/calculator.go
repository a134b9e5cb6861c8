// Package settlement derives payment statuses and per-show settlement
// figures from snapshots of the reconciliation tables. The calculator is
// pure: it never touches the database.
package settlement

import (
	"math"
	"strings"

	"pinball-backend/config"
	"pinball-backend/models"
	"pinball-backend/utils"
)

type PaymentStatus string

const (
	StatusUnpaid   PaymentStatus = "UNPAID"
	StatusPartPaid PaymentStatus = "PART_PAID"
	StatusPaid     PaymentStatus = "PAID"
	StatusOverpaid PaymentStatus = "OVERPAID"
)

type ArtistStatus string

const (
	ArtistSettled ArtistStatus = "SETTLED"
	ArtistPartial ArtistStatus = "PARTIAL"
	ArtistPending ArtistStatus = "PENDING"
)

type OverallStatus string

const (
	OverallComplete                OverallStatus = "COMPLETE"
	OverallAwaitingArtistPayment   OverallStatus = "AWAITING_ARTIST_PAYMENT"
	OverallAwaitingPromoterPayment OverallStatus = "AWAITING_PROMOTER_PAYMENT"
	OverallInProgress              OverallStatus = "IN_PROGRESS"
)

// Classify maps an applied amount against a total. UNPAID is checked before
// PART_PAID so a near-zero applied amount is never reported part-paid.
func Classify(applied, total, tolerance float64) PaymentStatus {
	switch {
	case math.Abs(applied) < tolerance:
		return StatusUnpaid
	case applied+tolerance < total:
		return StatusPartPaid
	case math.Abs(applied-total) <= tolerance:
		return StatusPaid
	default:
		return StatusOverpaid
	}
}

// ShowSettlement is the read-only aggregate view for one show.
type ShowSettlement struct {
	ShowID uint `json:"show_id"`

	TotalInvoiced           float64 `json:"total_invoiced"`
	TotalReceived           float64 `json:"total_received"`
	OutstandingFromPromoter float64 `json:"outstanding_from_promoter"`

	ArtistPayments float64 `json:"artist_payments"`
	HotelPayments  float64 `json:"hotel_payments"`
	FlightPayments float64 `json:"flight_payments"`
	OtherPayments  float64 `json:"other_payments"`
	TotalPaidOut   float64 `json:"total_paid_out"`

	NetArtistDue   float64 `json:"net_artist_due"`
	ArtistBalance  float64 `json:"artist_balance"`
	AgencyPosition float64 `json:"agency_position"`

	PromoterStatus PaymentStatus `json:"promoter_status"`
	ArtistStatus   ArtistStatus  `json:"artist_status"`
	OverallStatus  OverallStatus `json:"overall_status"`

	Invoices         []models.Invoice         `json:"invoices"`
	OutgoingPayments []models.OutgoingPayment `json:"outgoing_payments"`
}

// ComputeShowSettlement derives the full settlement snapshot for one show
// from table snapshots. Deterministic and side-effect free; safe to call on
// every page load.
func ComputeShowSettlement(showID uint, show models.Show, invoices []models.Invoice, handshakes []models.Handshake, outgoing []models.OutgoingPayment, cfg config.Settings) ShowSettlement {
	s := ShowSettlement{ShowID: showID}

	invoiceIDs := make(map[uint]bool)
	for _, inv := range invoices {
		if inv.ShowID == nil || *inv.ShowID != showID {
			continue
		}
		s.Invoices = append(s.Invoices, inv)
		invoiceIDs[inv.ID] = true
		s.TotalInvoiced = utils.Sum2(s.TotalInvoiced, inv.TotalGross)
	}

	for _, hs := range handshakes {
		if !invoiceIDs[hs.InvoiceID] {
			continue
		}
		s.TotalReceived = utils.Sum2(s.TotalReceived, hs.AppliedAmount, hs.ProxyAmount)
	}
	s.OutstandingFromPromoter = utils.Sum2(s.TotalInvoiced, -s.TotalReceived)

	for _, op := range outgoing {
		if op.ShowID == nil || *op.ShowID != showID {
			continue
		}
		s.OutgoingPayments = append(s.OutgoingPayments, op)
		t := strings.ToLower(op.PaymentType)
		switch {
		case strings.Contains(t, cfg.ArtistBucket):
			s.ArtistPayments = utils.Sum2(s.ArtistPayments, op.Amount)
		case strings.Contains(t, cfg.HotelBucket):
			s.HotelPayments = utils.Sum2(s.HotelPayments, op.Amount)
		case strings.Contains(t, cfg.FlightBucket):
			s.FlightPayments = utils.Sum2(s.FlightPayments, op.Amount)
		default:
			s.OtherPayments = utils.Sum2(s.OtherPayments, op.Amount)
		}
	}
	s.TotalPaidOut = utils.Sum2(s.ArtistPayments, s.HotelPayments, s.FlightPayments, s.OtherPayments)

	s.NetArtistDue = utils.Sum2(show.ArtistFee, -show.HotelBuyout, -show.FlightBuyout, -show.WithholdingTax)
	s.ArtistBalance = utils.Sum2(s.NetArtistDue, -s.ArtistPayments)
	s.AgencyPosition = utils.Sum2(s.TotalReceived, -s.TotalPaidOut)

	tol := cfg.AmountTolerance
	switch {
	case s.OutstandingFromPromoter <= tol:
		s.PromoterStatus = StatusPaid
	case s.TotalReceived > tol:
		s.PromoterStatus = StatusPartPaid
	default:
		s.PromoterStatus = StatusUnpaid
	}

	switch {
	case s.ArtistBalance <= tol:
		s.ArtistStatus = ArtistSettled
	case s.ArtistPayments > tol:
		s.ArtistStatus = ArtistPartial
	default:
		s.ArtistStatus = ArtistPending
	}

	switch {
	case s.PromoterStatus == StatusPaid && s.ArtistStatus == ArtistSettled:
		s.OverallStatus = OverallComplete
	case s.PromoterStatus == StatusPaid:
		s.OverallStatus = OverallAwaitingArtistPayment
	case s.PromoterStatus != StatusPaid:
		s.OverallStatus = OverallAwaitingPromoterPayment
	default:
		s.OverallStatus = OverallInProgress
	}

	return s
}

// InvoiceStatus is the per-invoice line of the reconciliation summary.
type InvoiceStatus struct {
	InvoiceID      uint          `json:"invoice_id"`
	InvoiceNumber  string        `json:"invoice_number"`
	ContractNumber string        `json:"contract_number"`
	TotalGross     float64       `json:"total_gross"`
	Applied        float64       `json:"applied"`
	Balance        float64       `json:"balance"`
	Status         PaymentStatus `json:"status"`
}

// InvoiceStatuses computes the tolerance-based display status for every
// invoice from the handshake snapshot. Unlike the matching engine's strict
// paid flag, PAID here absorbs differences within the tolerance.
func InvoiceStatuses(invoices []models.Invoice, handshakes []models.Handshake, tolerance float64) []InvoiceStatus {
	applied := make(map[uint]float64, len(invoices))
	for _, hs := range handshakes {
		applied[hs.InvoiceID] = utils.Sum2(applied[hs.InvoiceID], hs.AppliedAmount, hs.ProxyAmount)
	}

	out := make([]InvoiceStatus, 0, len(invoices))
	for _, inv := range invoices {
		a := applied[inv.ID]
		out = append(out, InvoiceStatus{
			InvoiceID:      inv.ID,
			InvoiceNumber:  inv.InvoiceNumber,
			ContractNumber: inv.ContractNumber,
			TotalGross:     inv.TotalGross,
			Applied:        a,
			Balance:        utils.Sum2(inv.TotalGross, -a),
			Status:         Classify(a, inv.TotalGross, tolerance),
		})
	}
	return out
}
