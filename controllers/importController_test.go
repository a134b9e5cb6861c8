package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"pinball-backend/database"
	"pinball-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newControllerDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.BankTransaction{}, &models.ImportBatch{}))
	database.DB = db
}

func csvUploadRequest(t *testing.T, path, csv string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "statement.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestImportBankRecordsDuplicateOnlyRun(t *testing.T) {
	newControllerDB(t)
	app := fiber.New()
	app.Post("/api/import/bank", ImportBank)

	csv := "Date,Description,Paid In,Paid Out\n01/02/2024,Show fee,5000,\n"

	resp, err := app.Test(csvUploadRequest(t, "/api/import/bank", csv))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// the identical file again: nothing new, but the run still completed
	resp, err = app.Test(csvUploadRequest(t, "/api/import/bank", csv))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var batches []models.ImportBatch
	require.NoError(t, database.DB.Order("id").Find(&batches).Error)
	require.Len(t, batches, 2)

	assert.Equal(t, 1, batches[0].ImportedCount)
	assert.Equal(t, 0, batches[1].ImportedCount)
	assert.Equal(t, 1, batches[1].DuplicateCount)
	assert.Contains(t, string(batches[1].Report), "Show fee")
}

func TestImportBankAbortedRunNotRecorded(t *testing.T) {
	newControllerDB(t)
	app := fiber.New()
	app.Post("/api/import/bank", ImportBank)

	// no Date column resolves, so the run aborts before inserting
	csv := "When,Description,Paid In\n01/02/2024,Show fee,5000\n"

	resp, err := app.Test(csvUploadRequest(t, "/api/import/bank", csv))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, database.DB.Model(&models.ImportBatch{}).Count(&count).Error)
	assert.Zero(t, count)
}
