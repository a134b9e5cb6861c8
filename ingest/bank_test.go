package ingest

import (
	"strings"
	"testing"

	"pinball-backend/config"
	"pinball-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bankCSV = `Date,Description,Type,Paid In,Paid Out,Currency
01/02/2024,PROMOTER PAYMENT REF 100,BACS,5000.00,,GBP
02/02/2024,HOTEL GRAND BOOKING,CARD,,450.25,GBP
03/02/2024,FX DEPOSIT,BACS,"1,200.00",,XXX
04/02/2024,ROUNDING NOISE,BACS,0.001,,GBP
05/02/2024,,BACS,10.00,,GBP
`

func TestBankImporter(t *testing.T) {
	db := newTestDB(t)
	cfg := config.Default()

	imp := NewBankImporter(db, cfg)
	ok, msg, imported := imp.Import(strings.NewReader(bankCSV))
	require.True(t, ok, msg)
	assert.Equal(t, 3, imported)
	assert.Contains(t, msg, "Imported 3 transactions")

	var txs []models.BankTransaction
	require.NoError(t, db.Order("id").Find(&txs).Error)
	require.Len(t, txs, 3)

	assert.Equal(t, 5000.00, txs[0].Amount)
	assert.Equal(t, 5000.00, txs[0].PaidIn)
	assert.False(t, txs[0].Matched)

	// debit rows come out negative
	assert.Equal(t, -450.25, txs[1].Amount)
	assert.Equal(t, 450.25, txs[1].PaidOut)

	// unknown currency falls back to the default
	assert.Equal(t, 1200.00, txs[2].Amount)
	assert.Equal(t, "GBP", txs[2].Currency)

	// near-zero amount and empty description were skipped, not errored
	report := imp.Summary()
	assert.Len(t, report.Skipped, 2)
	assert.Empty(t, report.Errors)

	// every row carries the batch tag
	for _, tx := range txs {
		assert.Equal(t, report.BatchID, tx.ImportBatch)
	}
}

func TestBankImporterIdempotent(t *testing.T) {
	db := newTestDB(t)
	cfg := config.Default()

	_, _, first := NewBankImporter(db, cfg).Import(strings.NewReader(bankCSV))
	require.Equal(t, 3, first)

	second := NewBankImporter(db, cfg)
	ok, msg, imported := second.Import(strings.NewReader(bankCSV))
	assert.False(t, ok)
	assert.Equal(t, 0, imported)
	assert.Contains(t, msg, "No new transactions")
	assert.Len(t, second.Summary().Duplicates, 3)

	var count int64
	db.Model(&models.BankTransaction{}).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestBankImporterInFileDuplicates(t *testing.T) {
	db := newTestDB(t)
	csv := `Date,Description,Paid In
01/02/2024,SAME PAYMENT,100.00
01/02/2024,SAME PAYMENT,100.00
`
	imp := NewBankImporter(db, config.Default())
	ok, _, imported := imp.Import(strings.NewReader(csv))
	require.True(t, ok)
	assert.Equal(t, 1, imported)
	assert.Len(t, imp.Summary().Duplicates, 1)
}

func TestBankImporterMissingColumnAborts(t *testing.T) {
	db := newTestDB(t)

	imp := NewBankImporter(db, config.Default())
	ok, msg, imported := imp.Import(strings.NewReader("Description,Paid In\nX,100\n"))
	assert.False(t, ok)
	assert.Equal(t, 0, imported)
	assert.Contains(t, msg, "Missing required column: Date")

	// aborted before any insert
	var count int64
	db.Model(&models.BankTransaction{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestBankImporterSynonymHeaders(t *testing.T) {
	db := newTestDB(t)
	csv := `Txn Date,Narrative,Credit,Debit
01/02/2024,WIRE IN,2000.00,
`
	imp := NewBankImporter(db, config.Default())
	ok, _, imported := imp.Import(strings.NewReader(csv))
	require.True(t, ok)
	assert.Equal(t, 1, imported)

	var tx models.BankTransaction
	require.NoError(t, db.First(&tx).Error)
	assert.Equal(t, "01/02/2024", tx.Date)
	assert.Equal(t, "WIRE IN", tx.Description)
	assert.Equal(t, 2000.00, tx.Amount)
}
