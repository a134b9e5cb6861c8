package controllers

import (
	"errors"

	"pinball-backend/database"
	"pinball-backend/matching"
	"pinball-backend/middlewares"
	"pinball-backend/models"
	"pinball-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type createHandshakeDTO struct {
	BankTransactionID uint    `json:"bank_transaction_id" validate:"required"`
	InvoiceID         uint    `json:"invoice_id" validate:"required"`
	AppliedAmount     float64 `json:"applied_amount" validate:"required"`
	ProxyAmount       float64 `json:"proxy_amount"`
	Note              string  `json:"note"`
}

type splitMatchDTO struct {
	BankTransactionID uint    `json:"bank_transaction_id" validate:"required"`
	InvoiceIDs        []uint  `json:"invoice_ids" validate:"required,min=1"`
	ProxyAmount       float64 `json:"proxy_amount"`
	Note              string  `json:"note"`
}

func matchStatus(err error) error {
	switch {
	case errors.Is(err, matching.ErrBankTransactionNotFound),
		errors.Is(err, matching.ErrInvoiceNotFound),
		errors.Is(err, matching.ErrHandshakeNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, matching.ErrNoInvoices):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}

func CreateHandshake(c *fiber.Ctx) error {
	var dto createHandshakeDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	userID, _ := c.Locals("userID").(string)
	svc := matching.NewService(database.DB)
	hs, err := svc.CreateHandshake(dto.BankTransactionID, dto.InvoiceID, dto.AppliedAmount, dto.ProxyAmount, dto.Note, userID)
	if err != nil {
		return matchStatus(err)
	}

	return c.Status(fiber.StatusCreated).JSON(hs)
}

func SplitMatch(c *fiber.Ctx) error {
	var dto splitMatchDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	userID, _ := c.Locals("userID").(string)
	svc := matching.NewService(database.DB)
	created, err := svc.SplitMatch(dto.BankTransactionID, dto.InvoiceIDs, utils.Round2(dto.ProxyAmount), dto.Note, userID)
	if err != nil {
		return matchStatus(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"handshakes": created,
		"count":      len(created),
	})
}

func DeleteHandshake(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid handshake id")
	}

	svc := matching.NewService(database.DB)
	if err := svc.DeleteHandshake(uint(id)); err != nil {
		return matchStatus(err)
	}

	return c.JSON(fiber.Map{"message": "deleted"})
}

func ListHandshakes(c *fiber.Ctx) error {
	q := database.DB.Order("created_at DESC")
	if bankID := c.QueryInt("bank_id"); bankID > 0 {
		q = q.Where("bank_transaction_id = ?", bankID)
	}
	if invoiceID := c.QueryInt("invoice_id"); invoiceID > 0 {
		q = q.Where("invoice_id = ?", invoiceID)
	}

	var handshakes []models.Handshake
	if err := q.Find(&handshakes).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list handshakes")
	}
	return c.JSON(handshakes)
}
