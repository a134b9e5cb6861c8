package ingest

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"pinball-backend/config"
	"pinball-backend/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Column synonym sets for bank statement exports. Different banks name the
// same column differently; resolution is two-pass per ResolveColumn.
var (
	bankDateCols     = []string{"date", "transaction date", "txn date"}
	bankDescCols     = []string{"description", "narrative", "details", "reference"}
	bankTypeCols     = []string{"type", "transaction type", "txn type"}
	bankCreditCols   = []string{"paid in", "credit", "cr", "amount in"}
	bankDebitCols    = []string{"paid out", "debit", "dr", "amount out"}
	bankCurrencyCols = []string{"currency", "ccy", "curr"}
)

// BankImporter ingests one bank statement CSV. One importer per file; the
// report and batch id belong to that single run.
type BankImporter struct {
	db     *gorm.DB
	cfg    config.Settings
	report Report
}

func NewBankImporter(db *gorm.DB, cfg config.Settings) *BankImporter {
	return &BankImporter{db: db, cfg: cfg, report: newReport()}
}

// Summary returns the run's report lists.
func (imp *BankImporter) Summary() Report { return imp.report }

// Import parses the statement and inserts every new transaction. Per-row
// problems never abort the run; they land in the report. Only an unreadable
// source or a missing required column fails the whole import, and that
// happens before any insert.
func (imp *BankImporter) Import(r io.Reader) (bool, string, int) {
	table, err := ReadTable(r)
	if err != nil {
		return false, fmt.Sprintf("Import error: %v", err), 0
	}

	staged := imp.parseRows(table)

	summary := imp.report.summary()
	if len(imp.report.Errors) > 0 {
		return false, strings.Join(imp.report.Errors, "; "), 0
	}
	if len(staged) == 0 {
		if summary != "" {
			return false, "No new transactions. " + summary, 0
		}
		return false, "No valid transactions found in CSV", 0
	}

	if err := imp.db.Create(&staged).Error; err != nil {
		return false, fmt.Sprintf("Import error: %v", err), 0
	}

	msg := fmt.Sprintf("Imported %d transactions", len(staged))
	if summary != "" {
		msg += " (" + summary + ")"
	}
	return true, msg, len(staged)
}

func (imp *BankImporter) parseRows(table *Table) []models.BankTransaction {
	dateCol := ResolveColumn(table.Headers, bankDateCols)
	descCol := ResolveColumn(table.Headers, bankDescCols)
	typeCol := ResolveColumn(table.Headers, bankTypeCols)
	creditCol := ResolveColumn(table.Headers, bankCreditCols)
	debitCol := ResolveColumn(table.Headers, bankDebitCols)
	currencyCol := ResolveColumn(table.Headers, bankCurrencyCols)

	if dateCol == "" {
		imp.report.addError("Missing required column: Date")
		return nil
	}
	if descCol == "" {
		imp.report.addError("Missing required column: Description")
		return nil
	}

	log.Debug().
		Str("date", dateCol).Str("description", descCol).
		Str("credit", creditCol).Str("debit", debitCol).
		Str("currency", currencyCol).
		Msg("bank column mapping")

	now := time.Now()
	var staged []models.BankTransaction
	seen := make(map[string]bool) // in-file duplicates

	for i := 0; i < table.Len(); i++ {
		rowNum := table.RowNumber(i)

		date := CoerceText(table.Cell(i, dateCol))
		if date == "" {
			imp.report.skip(rowNum, "Empty date")
			continue
		}
		desc := CoerceText(table.Cell(i, descCol))
		if desc == "" {
			imp.report.skip(rowNum, "Empty description")
			continue
		}

		credit := CoerceAmount(table.Cell(i, creditCol))
		debit := CoerceAmount(table.Cell(i, debitCol))
		amount := credit - debit

		if math.Abs(amount) < imp.cfg.MinImportAmount {
			imp.report.skip(rowNum, "Zero amount")
			continue
		}

		currency := imp.cfg.DefaultCurrency
		if curr := CoerceText(table.Cell(i, currencyCol)); curr != "" && imp.cfg.CurrencyAllowed(curr) {
			currency = strings.ToUpper(curr)
		}

		hash := BankFingerprint(date, amount, desc)
		if seen[hash] || imp.fingerprintExists(hash) {
			imp.report.duplicate(rowNum, truncate(desc, 30))
			continue
		}
		seen[hash] = true

		staged = append(staged, models.BankTransaction{
			Date:            date,
			Type:            CoerceText(table.Cell(i, typeCol)),
			Description:     desc,
			PaidOut:         debit,
			PaidIn:          credit,
			Amount:          amount,
			Currency:        currency,
			TransactionHash: hash,
			ImportBatch:     imp.report.BatchID,
			ImportedAt:      now,
		})
	}

	log.Info().
		Int("rows", table.Len()).Int("valid", len(staged)).
		Int("duplicates", len(imp.report.Duplicates)).
		Int("skipped", len(imp.report.Skipped)).
		Msg("bank parse summary")

	return staged
}

func (imp *BankImporter) fingerprintExists(hash string) bool {
	var count int64
	imp.db.Model(&models.BankTransaction{}).
		Where("transaction_hash = ?", hash).
		Count(&count)
	return count > 0
}
