package ingest

import (
	"strings"
	"testing"

	"pinball-backend/config"
	"pinball-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contractCSV = `Contract Number,Artist,Event,Venue,City,Country,Performance Date,Currency,AF,BF,Hotel Buyout,Flight,WHT,Total Settlement
CN-1001,DJ Nova,Summer Fest,Arena One,London,UK,15/06/2024,GBP,"10,000.00",1500.00,800.00,600.00,0,8600.00
CN-1002,The Waves,Club Night,Basement,Berlin,DE,20/06/2024,EUR,5000.00,750.00,0,0,500.00,4500.00
,No Number Act,,,,,,,,,,,,
`

func TestContractImporter(t *testing.T) {
	db := newTestDB(t)

	imp := NewContractImporter(db, config.Default())
	ok, msg, imported := imp.Import(strings.NewReader(contractCSV))
	require.True(t, ok, msg)
	assert.Equal(t, 2, imported)
	assert.Equal(t, 2, imp.ShowsCreated())
	assert.Contains(t, msg, "Imported 2 contracts")
	assert.Contains(t, msg, "Created 2 shows")
	assert.Len(t, imp.Summary().Skipped, 1)

	var contract models.Contract
	require.NoError(t, db.Where("contract_number = ?", "CN-1001").First(&contract).Error)
	assert.Equal(t, "DJ Nova", contract.Artist)
	assert.Equal(t, 10000.00, contract.ArtistFee)
	assert.Equal(t, 800.00, contract.HotelBuyout)
	require.NotNil(t, contract.ShowID)

	// each contract derives exactly one show carrying the deal terms
	var show models.Show
	require.NoError(t, db.First(&show, *contract.ShowID).Error)
	assert.Equal(t, "CN-1001", show.ContractNumber)
	assert.Equal(t, "DJ Nova", show.Artist)
	assert.Equal(t, 10000.00, show.ArtistFee)
	assert.Equal(t, 8600.00, show.NetArtistSettlement)
	assert.Equal(t, models.ShowContracted, show.Status)
	assert.Equal(t, models.SettlementPending, show.SettlementStatus)

	var showCount int64
	db.Model(&models.Show{}).Count(&showCount)
	assert.Equal(t, int64(2), showCount)
}

func TestContractImporterDuplicates(t *testing.T) {
	db := newTestDB(t)
	cfg := config.Default()

	_, _, first := NewContractImporter(db, cfg).Import(strings.NewReader(contractCSV))
	require.Equal(t, 2, first)

	second := NewContractImporter(db, cfg)
	ok, msg, imported := second.Import(strings.NewReader(contractCSV))
	assert.True(t, ok)
	assert.Equal(t, 0, imported)
	assert.Contains(t, msg, "2 duplicates")
	assert.Len(t, second.Summary().Duplicates, 2)

	// no extra shows on re-import
	var showCount int64
	db.Model(&models.Show{}).Count(&showCount)
	assert.Equal(t, int64(2), showCount)
}

func TestContractImporterMissingColumnAborts(t *testing.T) {
	db := newTestDB(t)

	imp := NewContractImporter(db, config.Default())
	ok, msg, imported := imp.Import(strings.NewReader("Artist,Venue\nDJ Nova,Arena\n"))
	assert.False(t, ok)
	assert.Equal(t, 0, imported)
	assert.Contains(t, msg, "Missing required column: Contract Number")
}
