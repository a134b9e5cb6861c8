package ingest

import (
	"strings"
	"testing"

	"pinball-backend/config"
	"pinball-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const longInvoiceCSV = `Invoice Number,Contract Number,From Entity,Contact,Reference,Currency,AccountCode,Description,Net Amount,VAT Amount,Gross Amount
INV-001,CN-1001,Agency Ltd,Promoter GmbH,Summer Fest,GBP,Artist Fee,Performance fee,"2,000.00",0,"2,000.00"
INV-001,CN-1001,Agency Ltd,Promoter GmbH,Summer Fest,GBP,Booking Fee,Agency commission,500.00,0,500.00
INV-002,CN-1002,Agency Ltd,Club Berlin,Club Night,EUR,Artist Fee,Performance fee,5000.00,1000.00,6000.00
INV-003,CN-9999,Agency Ltd,Nobody,Lost Show,GBP,,No account code row,100.00,0,100.00
`

const simpleInvoiceCSV = `Invoice Number,Contact,Description,Value,Invoice Date
INV-100,Promoter GmbH,Festival balance,3000.00,01/06/2024
INV-101,Club Berlin,,0,02/06/2024
`

func TestInvoiceImporterLongFormat(t *testing.T) {
	db := newTestDB(t)

	imp := NewInvoiceImporter(db, config.Default())
	ok, msg, imported := imp.Import(strings.NewReader(longInvoiceCSV))
	require.True(t, ok, msg)
	assert.Equal(t, 2, imported)
	assert.Equal(t, 3, imp.ItemsCreated())
	assert.Contains(t, msg, "Imported 2 invoices with 3 line items")

	// header totals always come from the line items
	var inv models.Invoice
	require.NoError(t, db.Preload("Items").Where("invoice_number = ?", "INV-001").First(&inv).Error)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, 2500.00, inv.TotalGross)
	assert.Equal(t, 2500.00, inv.TotalNet)
	assert.Equal(t, 2500.00, inv.BalanceRemaining)
	assert.Equal(t, 0.00, inv.PaidAmount)
	assert.False(t, inv.IsPaid)
	assert.Equal(t, "Promoter GmbH", inv.PromoterName)
	assert.Equal(t, "Summer Fest", inv.Reference)

	var inv2 models.Invoice
	require.NoError(t, db.Where("invoice_number = ?", "INV-002").First(&inv2).Error)
	assert.Equal(t, 6000.00, inv2.TotalGross)
	assert.Equal(t, 1000.00, inv2.TotalVAT)
	assert.Equal(t, "EUR", inv2.Currency)

	// rows without an account code are skipped in long format
	assert.Len(t, imp.Summary().Skipped, 1)
	var count int64
	db.Model(&models.Invoice{}).Where("invoice_number = ?", "INV-003").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestInvoiceImporterAttachesShow(t *testing.T) {
	db := newTestDB(t)
	show := models.Show{ContractNumber: "CN-1001", Artist: "DJ Nova"}
	require.NoError(t, db.Create(&show).Error)

	imp := NewInvoiceImporter(db, config.Default())
	ok, msg, _ := imp.Import(strings.NewReader(longInvoiceCSV))
	require.True(t, ok, msg)

	var inv models.Invoice
	require.NoError(t, db.Where("invoice_number = ?", "INV-001").First(&inv).Error)
	require.NotNil(t, inv.ShowID)
	assert.Equal(t, show.ID, *inv.ShowID)

	// unknown contract number: invoice imports without a show link
	var inv2 models.Invoice
	require.NoError(t, db.Where("invoice_number = ?", "INV-002").First(&inv2).Error)
	assert.Nil(t, inv2.ShowID)
}

func TestInvoiceImporterSimpleFormat(t *testing.T) {
	db := newTestDB(t)

	imp := NewInvoiceImporter(db, config.Default())
	ok, msg, imported := imp.Import(strings.NewReader(simpleInvoiceCSV))
	require.True(t, ok, msg)
	assert.Equal(t, 1, imported)

	var inv models.Invoice
	require.NoError(t, db.Preload("Items").Where("invoice_number = ?", "INV-100").First(&inv).Error)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Invoice Total", inv.Items[0].AccountCode)
	assert.Equal(t, 3000.00, inv.Items[0].Gross)
	assert.Equal(t, 0.00, inv.Items[0].VAT)
	assert.Equal(t, 3000.00, inv.TotalGross)

	// zero-value simple rows are skipped
	assert.Len(t, imp.Summary().Skipped, 1)
}

func TestInvoiceImporterFormatOverride(t *testing.T) {
	db := newTestDB(t)
	csv := `Invoice Number,AccountCode,Description,Value
INV-200,Artist Fee,Fee,1000.00
`

	// auto-detection sees an account code column and stays in long format
	auto := NewInvoiceImporter(db, config.Default())
	ok, _, imported := auto.Import(strings.NewReader(csv))
	require.True(t, ok)
	require.Equal(t, 1, imported)
	var inv models.Invoice
	require.NoError(t, db.Preload("Items").Where("invoice_number = ?", "INV-200").First(&inv).Error)
	assert.Equal(t, "Artist Fee", inv.Items[0].AccountCode)

	// pinning simple format synthesizes the total line instead
	db2 := newTestDB(t)
	pinned := NewInvoiceImporter(db2, config.Default())
	pinned.Format = FormatSimple
	ok, _, imported = pinned.Import(strings.NewReader(csv))
	require.True(t, ok)
	require.Equal(t, 1, imported)
	var inv2 models.Invoice
	require.NoError(t, db2.Preload("Items").Where("invoice_number = ?", "INV-200").First(&inv2).Error)
	assert.Equal(t, "Invoice Total", inv2.Items[0].AccountCode)
	assert.Equal(t, 1000.00, inv2.TotalGross)
}

func TestInvoiceImporterDuplicates(t *testing.T) {
	db := newTestDB(t)
	cfg := config.Default()

	_, _, first := NewInvoiceImporter(db, cfg).Import(strings.NewReader(simpleInvoiceCSV))
	require.Equal(t, 1, first)

	second := NewInvoiceImporter(db, cfg)
	ok, msg, imported := second.Import(strings.NewReader(simpleInvoiceCSV))
	assert.True(t, ok)
	assert.Equal(t, 0, imported)
	assert.Contains(t, msg, "1 duplicates")
	assert.Len(t, second.Summary().Duplicates, 1)
}

func TestInvoiceImporterMissingColumnAborts(t *testing.T) {
	db := newTestDB(t)

	imp := NewInvoiceImporter(db, config.Default())
	ok, msg, imported := imp.Import(strings.NewReader("Description,Value\nx,100\n"))
	assert.False(t, ok)
	assert.Equal(t, 0, imported)
	assert.Contains(t, msg, "Missing required column: Invoice Number")
}
