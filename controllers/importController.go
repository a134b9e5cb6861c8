package controllers

import (
	"encoding/json"
	"mime/multipart"

	"pinball-backend/config"
	"pinball-backend/database"
	"pinball-backend/ingest"
	"pinball-backend/models"

	"github.com/gofiber/fiber/v2"
)

func openUpload(c *fiber.Ctx) (multipart.File, string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "missing file upload")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "could not read file upload")
	}
	return f, fh.Filename, nil
}

func recordBatch(c *fiber.Ctx, kind, filename string, report ingest.Report, imported int) {
	blob, _ := json.Marshal(report)
	userID, _ := c.Locals("userID").(string)
	batch := models.ImportBatch{
		BatchID:        report.BatchID,
		Kind:           kind,
		Filename:       filename,
		ImportedCount:  imported,
		SkippedCount:   len(report.Skipped),
		DuplicateCount: len(report.Duplicates),
		ErrorCount:     len(report.Errors),
		Report:         blob,
		CreatedBy:      userID,
	}
	database.DB.Create(&batch)
}

func ImportBank(c *fiber.Ctx) error {
	f, filename, err := openUpload(c)
	if err != nil {
		return err
	}
	defer f.Close()

	imp := ingest.NewBankImporter(database.DB, config.Load())
	ok, message, imported := imp.Import(f)
	report := imp.Summary()
	if ok || report.Completed() {
		recordBatch(c, models.ImportKindBank, filename, report, imported)
	}

	return c.JSON(fiber.Map{
		"success":  ok,
		"message":  message,
		"imported": imported,
		"report":   report,
	})
}

func ImportContracts(c *fiber.Ctx) error {
	f, filename, err := openUpload(c)
	if err != nil {
		return err
	}
	defer f.Close()

	imp := ingest.NewContractImporter(database.DB, config.Load())
	ok, message, imported := imp.Import(f)
	report := imp.Summary()
	if ok || report.Completed() {
		recordBatch(c, models.ImportKindContract, filename, report, imported)
	}

	return c.JSON(fiber.Map{
		"success":  ok,
		"message":  message,
		"imported": imported,
		"report":   report,
	})
}

func ImportInvoices(c *fiber.Ctx) error {
	f, filename, err := openUpload(c)
	if err != nil {
		return err
	}
	defer f.Close()

	imp := ingest.NewInvoiceImporter(database.DB, config.Load())
	switch c.Query("format") {
	case "long":
		imp.Format = ingest.FormatLong
	case "simple":
		imp.Format = ingest.FormatSimple
	}
	ok, message, imported := imp.Import(f)
	report := imp.Summary()
	if ok || report.Completed() {
		recordBatch(c, models.ImportKindInvoice, filename, report, imported)
	}

	return c.JSON(fiber.Map{
		"success":  ok,
		"message":  message,
		"imported": imported,
		"items":    imp.ItemsCreated(),
		"report":   report,
	})
}

func ListImportBatches(c *fiber.Ctx) error {
	var batches []models.ImportBatch
	q := database.DB.Order("created_at DESC")
	if kind := c.Query("kind"); kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if err := q.Find(&batches).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list import batches")
	}
	return c.JSON(batches)
}
