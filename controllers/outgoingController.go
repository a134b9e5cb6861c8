package controllers

import (
	"pinball-backend/config"
	"pinball-backend/database"
	"pinball-backend/middlewares"
	"pinball-backend/models"
	"pinball-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type createOutgoingDTO struct {
	ShowID            *uint   `json:"show_id"`
	BankTransactionID *uint   `json:"bank_transaction_id"`
	PaymentType       string  `json:"payment_type" validate:"required"`
	Amount            float64 `json:"amount" validate:"required,gt=0"`
	Currency          string  `json:"currency"`
	PaymentDate       string  `json:"payment_date"`
	Destination       string  `json:"destination"`
	Reference         string  `json:"reference"`
	Notes             string  `json:"notes"`
}

func CreateOutgoingPayment(c *fiber.Ctx) error {
	var dto createOutgoingDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	cfg := config.Load()
	currency := dto.Currency
	if !cfg.CurrencyAllowed(currency) {
		currency = cfg.DefaultCurrency
	}

	if dto.ShowID != nil {
		var show models.Show
		if err := database.DB.First(&show, *dto.ShowID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "show not found")
		}
	}

	payment := models.OutgoingPayment{
		ShowID:            dto.ShowID,
		BankTransactionID: dto.BankTransactionID,
		PaymentType:       dto.PaymentType,
		Amount:            dto.Amount,
		Currency:          currency,
		PaymentDate:       dto.PaymentDate,
		Destination:       dto.Destination,
		Reference:         dto.Reference,
		Notes:             dto.Notes,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create outgoing payment: "+err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}

func ListOutgoingPayments(c *fiber.Ctx) error {
	q := database.DB.Order("id")
	if showID := c.QueryInt("show_id"); showID > 0 {
		q = q.Where("show_id = ?", showID)
	}
	if pt := c.Query("payment_type"); pt != "" {
		q = q.Where("payment_type = ?", pt)
	}

	var payments []models.OutgoingPayment
	if err := q.Find(&payments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list outgoing payments")
	}
	return c.JSON(payments)
}
