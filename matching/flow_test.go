package matching

import (
	"strings"
	"testing"

	"pinball-backend/config"
	"pinball-backend/ingest"
	"pinball-backend/models"
	"pinball-backend/settlement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full round trip: contract import derives a show, invoice import attaches to
// it, bank import stages the payment, a handshake reconciles them, and the
// calculator reports the show settled on the promoter side.
func TestContractToSettlementFlow(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.Contract{}, &models.OutgoingPayment{}))
	cfg := config.Default()

	contractCSV := `Contract Number,Artist,Performance Date,AF,Hotel Buyout,Flight,WHT
CN-5001,DJ Nova,15/06/2024,1000.00,0,0,0
`
	ok, msg, n := ingest.NewContractImporter(db, cfg).Import(strings.NewReader(contractCSV))
	require.True(t, ok, msg)
	require.Equal(t, 1, n)

	var show models.Show
	require.NoError(t, db.Where("contract_number = ?", "CN-5001").First(&show).Error)
	assert.Equal(t, 1000.00, show.ArtistFee)

	invoiceCSV := `Invoice Number,Contract Number,AccountCode,Description,Gross Amount
INV-500,CN-5001,Artist Fee,Performance fee,1000.00
`
	ok, msg, n = ingest.NewInvoiceImporter(db, cfg).Import(strings.NewReader(invoiceCSV))
	require.True(t, ok, msg)
	require.Equal(t, 1, n)

	var inv models.Invoice
	require.NoError(t, db.Where("invoice_number = ?", "INV-500").First(&inv).Error)
	require.NotNil(t, inv.ShowID)
	require.Equal(t, show.ID, *inv.ShowID)
	require.Equal(t, 1000.00, inv.TotalGross)

	bankCSV := `Date,Description,Paid In
16/06/2024,PROMOTER CN-5001,1000.00
`
	ok, msg, n = ingest.NewBankImporter(db, cfg).Import(strings.NewReader(bankCSV))
	require.True(t, ok, msg)
	require.Equal(t, 1, n)

	var bank models.BankTransaction
	require.NoError(t, db.First(&bank).Error)

	svc := NewService(db)
	_, err := svc.CreateHandshake(bank.ID, inv.ID, 1000, 0, "", "ops")
	require.NoError(t, err)

	var gotInv models.Invoice
	require.NoError(t, db.First(&gotInv, inv.ID).Error)
	assert.True(t, gotInv.IsPaid)
	var gotBank models.BankTransaction
	require.NoError(t, db.First(&gotBank, bank.ID).Error)
	assert.True(t, gotBank.Matched)

	var invoices []models.Invoice
	require.NoError(t, db.Find(&invoices).Error)
	var handshakes []models.Handshake
	require.NoError(t, db.Find(&handshakes).Error)

	snap := settlement.ComputeShowSettlement(show.ID, show, invoices, handshakes, nil, cfg)
	assert.Equal(t, 1000.00, snap.TotalInvoiced)
	assert.Equal(t, 1000.00, snap.TotalReceived)
	assert.Equal(t, 0.00, snap.OutstandingFromPromoter)
	assert.Equal(t, settlement.StatusPaid, snap.PromoterStatus)

	statuses := settlement.InvoiceStatuses(invoices, handshakes, cfg.AmountTolerance)
	require.Len(t, statuses, 1)
	assert.Equal(t, settlement.StatusPaid, statuses[0].Status)
}
