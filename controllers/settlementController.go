package controllers

import (
	"errors"

	"pinball-backend/config"
	"pinball-backend/database"
	"pinball-backend/middlewares"
	"pinball-backend/models"
	"pinball-backend/settlement"
	"pinball-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type createSettlementDTO struct {
	ShowID     uint    `json:"show_id" validate:"required"`
	AmountDue  float64 `json:"amount_due" validate:"required,gt=0"`
	AmountPaid float64 `json:"amount_paid" validate:"gte=0"`
	Currency   string  `json:"currency"`
	Notes      string  `json:"notes"`
}

type updateSettlementDTO struct {
	AmountDue  *float64 `json:"amount_due" validate:"omitempty,gt=0"`
	AmountPaid *float64 `json:"amount_paid" validate:"omitempty,gte=0"`
	Notes      *string  `json:"notes"`
}

func CreateSettlement(c *fiber.Ctx) error {
	var dto createSettlementDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	var show models.Show
	if err := database.DB.First(&show, dto.ShowID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "show not found")
	}

	cfg := config.Load()
	currency := dto.Currency
	if !cfg.CurrencyAllowed(currency) {
		currency = cfg.DefaultCurrency
	}

	svc := settlement.NewEntityService(database.DB)
	st, err := svc.Create(dto.ShowID, dto.AmountDue, dto.AmountPaid, currency, dto.Notes)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create settlement: "+err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(st)
}

func ListSettlements(c *fiber.Ctx) error {
	q := database.DB.Order("id")
	if showID := c.QueryInt("show_id"); showID > 0 {
		q = q.Where("show_id = ?", showID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var settlements []models.Settlement
	if err := q.Find(&settlements).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list settlements")
	}
	return c.JSON(settlements)
}

func UpdateSettlement(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid settlement id")
	}

	var dto updateSettlementDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	svc := settlement.NewEntityService(database.DB)
	st, err := svc.Update(uint(id), dto.AmountDue, dto.AmountPaid, dto.Notes)
	if err != nil {
		if errors.Is(err, settlement.ErrSettlementNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "settlement not found")
		}
		return err
	}

	return c.JSON(st)
}

func ConfirmSettlement(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid settlement id")
	}

	userID, _ := c.Locals("userID").(string)
	svc := settlement.NewEntityService(database.DB)
	st, err := svc.Confirm(uint(id), userID)
	if err != nil {
		if errors.Is(err, settlement.ErrSettlementNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "settlement not found")
		}
		return err
	}

	return c.JSON(st)
}

// ReconciliationSummary returns the tolerance-based payment status of every
// invoice against its matched amounts.
func ReconciliationSummary(c *fiber.Ctx) error {
	var invoices []models.Invoice
	if err := database.DB.Order("id").Find(&invoices).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load invoices")
	}
	var handshakes []models.Handshake
	if err := database.DB.Find(&handshakes).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load handshakes")
	}

	cfg := config.Load()
	statuses := settlement.InvoiceStatuses(invoices, handshakes, cfg.AmountTolerance)

	counts := map[settlement.PaymentStatus]int{}
	for _, s := range statuses {
		counts[s.Status]++
	}

	return c.JSON(fiber.Map{
		"invoices": statuses,
		"counts":   counts,
	})
}
