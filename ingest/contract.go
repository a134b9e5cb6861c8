package ingest

import (
	"fmt"
	"io"
	"strings"
	"time"

	"pinball-backend/config"
	"pinball-backend/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Field synonyms for agency booking-system exports. Order matters: the whole
// set resolves exact matches first, then substrings, so "artist fee" cannot
// be stolen by the bare "fee" candidate before "af" has had its exact pass.
var contractFields = []Field{
	{"contract_number", []string{"contract number", "contract", "booking id", "contract_number"}},
	{"booking_date", []string{"booking date", "booked", "date booked"}},
	{"artist", []string{"artist", "act", "performer"}},
	{"event_name", []string{"event", "event name", "show", "festival"}},
	{"venue", []string{"venue", "location", "club"}},
	{"city", []string{"city", "town"}},
	{"country", []string{"country", "nation"}},
	{"performance_date", []string{"performance date", "show date", "date", "gig date"}},
	{"performance_day", []string{"performance day", "day", "day of week"}},
	{"deal_description", []string{"contracted deal", "deal", "deal description", "deal terms"}},
	{"total_deal_value", []string{"total deal value", "deal value", "total value", "total"}},
	{"currency", []string{"currency", "ccy", "curr"}},
	{"artist_fee", []string{"af", "artist fee", "fee"}},
	{"booking_fee", []string{"bf", "booking fee", "agency fee"}},
	{"booking_fee_vat", []string{"bf vat", "booking fee vat", "vat"}},
	{"hotel_buyout", []string{"hotel buyout", "hotel", "accommodation"}},
	{"flight_buyout", []string{"flight", "flights", "air"}},
	{"ground_transport_buyout", []string{"ground buyout", "ground transport", "transport", "ground"}},
	{"withholding_tax", []string{"wht", "withholding tax", "withholding", "tax"}},
	{"total_artist_settlement", []string{"total settlement", "artist settlement", "settlement", "net to artist"}},
}

// ContractImporter ingests a contract/booking export. Every imported contract
// derives a companion show, so a show never exists without either a manual
// entry or exactly one contract behind it.
type ContractImporter struct {
	db     *gorm.DB
	cfg    config.Settings
	report Report

	showsCreated int
}

func NewContractImporter(db *gorm.DB, cfg config.Settings) *ContractImporter {
	return &ContractImporter{db: db, cfg: cfg, report: newReport()}
}

func (imp *ContractImporter) Summary() Report { return imp.report }

// ShowsCreated reports how many companion shows the last run derived.
func (imp *ContractImporter) ShowsCreated() int { return imp.showsCreated }

func (imp *ContractImporter) Import(r io.Reader) (bool, string, int) {
	table, err := ReadTable(r)
	if err != nil {
		return false, fmt.Sprintf("Import error: %v", err), 0
	}

	cols := ResolveColumns(table.Headers, contractFields)
	if cols["contract_number"] == "" {
		imp.report.addError("Missing required column: Contract Number")
		return false, "Missing required column: Contract Number", 0
	}
	log.Debug().Interface("columns", cols).Msg("contract column mapping")

	created := 0
	for i := 0; i < table.Len(); i++ {
		rowNum := table.RowNumber(i)

		contractNum := CoerceText(table.Cell(i, cols["contract_number"]))
		if contractNum == "" {
			imp.report.skip(rowNum, "No contract number")
			continue
		}

		if imp.contractExists(contractNum) {
			imp.report.duplicate(rowNum, "Contract "+contractNum)
			continue
		}

		contract := imp.parseContract(table, i, cols)
		contract.ContractNumber = contractNum

		// Contract and its derived show commit or roll back together.
		err := imp.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&contract).Error; err != nil {
				return err
			}
			show := contractToShow(&contract)
			if err := tx.Create(&show).Error; err != nil {
				return err
			}
			imp.showsCreated++
			return tx.Model(&contract).Update("show_id", show.ID).Error
		})
		if err != nil {
			imp.report.skip(rowNum, fmt.Sprintf("Insert failed: %v", err))
			continue
		}
		created++
	}

	msgParts := []string{fmt.Sprintf("Imported %d contracts", created)}
	if imp.showsCreated > 0 {
		msgParts = append(msgParts, fmt.Sprintf("Created %d shows", imp.showsCreated))
	}
	if n := len(imp.report.Duplicates); n > 0 {
		msgParts = append(msgParts, fmt.Sprintf("%d duplicates", n))
	}
	if n := len(imp.report.Skipped); n > 0 {
		msgParts = append(msgParts, fmt.Sprintf("%d skipped", n))
	}

	return true, strings.Join(msgParts, " | "), created
}

func (imp *ContractImporter) parseContract(t *Table, i int, cols map[string]string) models.Contract {
	text := func(field string) string { return CoerceText(t.Cell(i, cols[field])) }
	amount := func(field string) float64 { return CoerceAmount(t.Cell(i, cols[field])) }

	currency := strings.ToUpper(text("currency"))
	if !imp.cfg.CurrencyAllowed(currency) {
		currency = imp.cfg.DefaultCurrency
	}

	return models.Contract{
		BookingDate:           text("booking_date"),
		Artist:                text("artist"),
		EventName:             text("event_name"),
		Venue:                 text("venue"),
		City:                  text("city"),
		Country:               text("country"),
		PerformanceDate:       text("performance_date"),
		PerformanceDay:        text("performance_day"),
		DealDescription:       text("deal_description"),
		TotalDealValue:        amount("total_deal_value"),
		Currency:              currency,
		ArtistFee:             amount("artist_fee"),
		BookingFee:            amount("booking_fee"),
		BookingFeeVAT:         amount("booking_fee_vat"),
		HotelBuyout:           amount("hotel_buyout"),
		FlightBuyout:          amount("flight_buyout"),
		GroundTransportBuyout: amount("ground_transport_buyout"),
		WithholdingTax:        amount("withholding_tax"),
		TotalArtistSettlement: amount("total_artist_settlement"),
		ImportBatch:           imp.report.BatchID,
		ImportedAt:            time.Now(),
	}
}

// contractToShow derives the performance record we reconcile against from the
// deal terms of record.
func contractToShow(c *models.Contract) models.Show {
	return models.Show{
		ContractNumber:        c.ContractNumber,
		Artist:                c.Artist,
		EventName:             c.EventName,
		Venue:                 c.Venue,
		City:                  c.City,
		Country:               c.Country,
		BookingDate:           c.BookingDate,
		PerformanceDate:       c.PerformanceDate,
		PerformanceDay:        c.PerformanceDay,
		DealDescription:       c.DealDescription,
		TotalDealValue:        c.TotalDealValue,
		Currency:              c.Currency,
		ArtistFee:             c.ArtistFee,
		BookingFee:            c.BookingFee,
		HotelBuyout:           c.HotelBuyout,
		FlightBuyout:          c.FlightBuyout,
		GroundTransportBuyout: c.GroundTransportBuyout,
		WithholdingTax:        c.WithholdingTax,
		NetArtistSettlement:   c.TotalArtistSettlement,
		Status:                models.ShowContracted,
		SettlementStatus:      models.SettlementPending,
	}
}

func (imp *ContractImporter) contractExists(contractNumber string) bool {
	var count int64
	imp.db.Model(&models.Contract{}).
		Where("contract_number = ?", contractNumber).
		Count(&count)
	return count > 0
}
