package controllers

import (
	"pinball-backend/config"
	"pinball-backend/database"
	"pinball-backend/middlewares"
	"pinball-backend/models"
	"pinball-backend/settlement"
	"pinball-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type createShowDTO struct {
	ContractNumber  string `json:"contract_number" validate:"required"`
	Artist          string `json:"artist" validate:"required"`
	EventName       string `json:"event_name"`
	Venue           string `json:"venue"`
	City            string `json:"city"`
	Country         string `json:"country"`
	Agent           string `json:"agent"`
	PromoterName    string `json:"promoter_name"`
	BookingDate     string `json:"booking_date"`
	PerformanceDate string `json:"performance_date"`
	PerformanceDay  string `json:"performance_day"`

	DealDescription       string  `json:"deal_description"`
	TotalDealValue        float64 `json:"total_deal_value"`
	ArtistFee             float64 `json:"artist_fee"`
	BookingFee            float64 `json:"booking_fee"`
	HotelBuyout           float64 `json:"hotel_buyout"`
	FlightBuyout          float64 `json:"flight_buyout"`
	GroundTransportBuyout float64 `json:"ground_transport_buyout"`
	WithholdingTax        float64 `json:"withholding_tax"`
	NetArtistSettlement   float64 `json:"net_artist_settlement"`

	Currency string `json:"currency"`
	Notes    string `json:"notes"`
}

type patchShowDTO struct {
	Artist          *string `json:"artist"`
	EventName       *string `json:"event_name"`
	Venue           *string `json:"venue"`
	City            *string `json:"city"`
	Country         *string `json:"country"`
	Agent           *string `json:"agent"`
	PromoterName    *string `json:"promoter_name"`
	BookingDate     *string `json:"booking_date"`
	PerformanceDate *string `json:"performance_date"`
	PerformanceDay  *string `json:"performance_day"`

	DealDescription       *string  `json:"deal_description"`
	TotalDealValue        *float64 `json:"total_deal_value"`
	ArtistFee             *float64 `json:"artist_fee"`
	BookingFee            *float64 `json:"booking_fee"`
	HotelBuyout           *float64 `json:"hotel_buyout"`
	FlightBuyout          *float64 `json:"flight_buyout"`
	GroundTransportBuyout *float64 `json:"ground_transport_buyout"`
	WithholdingTax        *float64 `json:"withholding_tax"`
	NetArtistSettlement   *float64 `json:"net_artist_settlement"`

	Status           *string `json:"status" validate:"omitempty,oneof=Contracted Performed Settled Cancelled Disputed"`
	SettlementStatus *string `json:"settlement_status"`
	Notes            *string `json:"notes"`
}

func ListShows(c *fiber.Ctx) error {
	q := database.DB.Order("id")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("artist ILIKE ? OR event_name ILIKE ? OR contract_number ILIKE ?", like, like, like)
	}

	var shows []models.Show
	if err := q.Find(&shows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list shows")
	}
	return c.JSON(shows)
}

func CreateShow(c *fiber.Ctx) error {
	var dto createShowDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	cfg := config.Load()
	currency := dto.Currency
	if !cfg.CurrencyAllowed(currency) {
		currency = cfg.DefaultCurrency
	}

	show := models.Show{
		ContractNumber:        dto.ContractNumber,
		Artist:                dto.Artist,
		EventName:             dto.EventName,
		Venue:                 dto.Venue,
		City:                  dto.City,
		Country:               dto.Country,
		Agent:                 dto.Agent,
		PromoterName:          dto.PromoterName,
		BookingDate:           dto.BookingDate,
		PerformanceDate:       dto.PerformanceDate,
		PerformanceDay:        dto.PerformanceDay,
		DealDescription:       dto.DealDescription,
		TotalDealValue:        dto.TotalDealValue,
		ArtistFee:             dto.ArtistFee,
		BookingFee:            dto.BookingFee,
		HotelBuyout:           dto.HotelBuyout,
		FlightBuyout:          dto.FlightBuyout,
		GroundTransportBuyout: dto.GroundTransportBuyout,
		WithholdingTax:        dto.WithholdingTax,
		NetArtistSettlement:   dto.NetArtistSettlement,
		Currency:              currency,
		Status:                models.ShowContracted,
		SettlementStatus:      models.SettlementPending,
		Notes:                 dto.Notes,
	}
	if err := database.DB.Create(&show).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create show: "+err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(show)
}

func GetShow(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid show id")
	}

	var show models.Show
	if err := database.DB.First(&show, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "show not found")
	}
	return c.JSON(show)
}

func PatchShow(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid show id")
	}

	var show models.Show
	if err := database.DB.First(&show, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "show not found")
	}

	var dto patchShowDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&dto)
	if len(updates) == 0 {
		return c.JSON(show)
	}
	if err := database.DB.Model(&show).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update show: "+err.Error())
	}

	return c.JSON(show)
}

// GetShowSettlement runs the pure calculator over the show's current rows.
func GetShowSettlement(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid show id")
	}

	var show models.Show
	if err := database.DB.First(&show, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "show not found")
	}

	var invoices []models.Invoice
	database.DB.Where("show_id = ?", show.ID).Find(&invoices)

	invoiceIDs := make([]uint, 0, len(invoices))
	for _, inv := range invoices {
		invoiceIDs = append(invoiceIDs, inv.ID)
	}
	var handshakes []models.Handshake
	if len(invoiceIDs) > 0 {
		database.DB.Where("invoice_id IN ?", invoiceIDs).Find(&handshakes)
	}

	var outgoing []models.OutgoingPayment
	database.DB.Where("show_id = ?", show.ID).Find(&outgoing)

	snapshot := settlement.ComputeShowSettlement(show.ID, show, invoices, handshakes, outgoing, config.Load())
	return c.JSON(snapshot)
}
