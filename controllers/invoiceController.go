package controllers

import (
	"errors"

	"pinball-backend/database"
	"pinball-backend/matching"
	"pinball-backend/models"

	"github.com/gofiber/fiber/v2"
)

func ListInvoices(c *fiber.Ctx) error {
	q := database.DB.Order("id")
	if c.QueryBool("unpaid") {
		q = q.Where("is_paid = ?", false)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("invoice_number ILIKE ? OR contract_number ILIKE ? OR promoter_name ILIKE ?", like, like, like)
	}
	if showID := c.QueryInt("show_id"); showID > 0 {
		q = q.Where("show_id = ?", showID)
	}

	var invoices []models.Invoice
	if err := q.Find(&invoices).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list invoices")
	}
	return c.JSON(invoices)
}

func GetInvoice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	var invoice models.Invoice
	if err := database.DB.Preload("Items").First(&invoice, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "invoice not found")
	}
	return c.JSON(invoice)
}

// RecomputeInvoice rebuilds the invoice's derived payment fields from its
// handshakes. Maintenance endpoint, not part of the normal flow.
func RecomputeInvoice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	svc := matching.NewService(database.DB)
	if err := svc.RecomputeInvoiceTotals(uint(id)); err != nil {
		if errors.Is(err, matching.ErrInvoiceNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "invoice not found")
		}
		return err
	}

	var invoice models.Invoice
	if err := database.DB.First(&invoice, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "invoice not found")
	}
	return c.JSON(invoice)
}
