package controllers

import (
	"pinball-backend/database"
	"pinball-backend/models"

	"github.com/gofiber/fiber/v2"
)

func ListBankTransactions(c *fiber.Ctx) error {
	q := database.DB.Order("id")
	if c.QueryBool("unmatched") {
		q = q.Where("matched = ?", false)
	}
	switch c.Query("direction") {
	case "in":
		q = q.Where("amount > 0")
	case "out":
		q = q.Where("amount < 0")
	}
	if search := c.Query("search"); search != "" {
		q = q.Where("description ILIKE ?", "%"+search+"%")
	}
	if batch := c.Query("batch"); batch != "" {
		q = q.Where("import_batch = ?", batch)
	}

	var txs []models.BankTransaction
	if err := q.Find(&txs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list bank transactions")
	}
	return c.JSON(txs)
}
