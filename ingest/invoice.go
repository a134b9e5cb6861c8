package ingest

import (
	"fmt"
	"io"
	"strings"
	"time"

	"pinball-backend/config"
	"pinball-backend/models"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceFormat selects how the source is interpreted. Auto keeps the
// column-presence heuristic: simple format is assumed only when a value
// column resolves and an account-code column does not. Exports carrying both
// can pin the format explicitly.
type InvoiceFormat int

const (
	FormatAuto InvoiceFormat = iota
	FormatLong
	FormatSimple
)

// The account code stamped on the single synthetic line item of a
// simple-format invoice.
const simpleFormatAccountCode = "Invoice Total"

var invoiceFields = []Field{
	{"invoice_number", []string{"invoice number", "invoice", "inv", "invoicenumber"}},
	{"contract_number", []string{"contract number", "contract", "booking id"}},
	{"from_entity", []string{"from entity", "from", "sender", "company"}},
	{"promoter_name", []string{"contact", "promoter", "client", "contact name", "customer"}},
	{"payment_bank_details", []string{"payment bank details", "pay to", "bank details"}},
	{"reference", []string{"reference", "event", "ref"}},
	{"description", []string{"description", "line description", "item description"}},
	{"currency", []string{"currency", "ccy", "curr"}},
	{"account_code", []string{"accountcode", "account code", "item type", "account_code"}},
	{"net", []string{"net amount", "net", "nett"}},
	{"vat", []string{"vat amount", "vat", "tax"}},
	{"gross", []string{"gross amount", "gross"}},
	{"value", []string{"value", "amount", "total"}},
	{"invoice_date", []string{"invoice date", "inv date"}},
	{"show_date", []string{"show date", "event date", "performance date"}},
}

// InvoiceImporter ingests invoice CSVs in either long format (one row per
// line item, rows grouped by invoice number) or simple format (one row per
// invoice with a single value column).
type InvoiceImporter struct {
	db     *gorm.DB
	cfg    config.Settings
	report Report

	// Format pins the source layout; FormatAuto detects from columns.
	Format InvoiceFormat

	itemsCreated int
}

func NewInvoiceImporter(db *gorm.DB, cfg config.Settings) *InvoiceImporter {
	return &InvoiceImporter{db: db, cfg: cfg, report: newReport()}
}

func (imp *InvoiceImporter) Summary() Report { return imp.report }

// ItemsCreated reports how many line items the last run inserted.
func (imp *InvoiceImporter) ItemsCreated() int { return imp.itemsCreated }

func (imp *InvoiceImporter) Import(r io.Reader) (bool, string, int) {
	table, err := ReadTable(r)
	if err != nil {
		return false, fmt.Sprintf("Import error: %v", err), 0
	}

	grouped := imp.group(table)
	if len(imp.report.Errors) > 0 {
		return false, strings.Join(imp.report.Errors, "; "), 0
	}
	if len(grouped) == 0 {
		return false, "No valid invoices found in CSV", 0
	}

	created := imp.insert(grouped)

	msgParts := []string{fmt.Sprintf("Imported %d invoices with %d line items", created, imp.itemsCreated)}
	if n := len(imp.report.Duplicates); n > 0 {
		msgParts = append(msgParts, fmt.Sprintf("%d duplicates skipped", n))
	}
	if n := len(imp.report.Skipped); n > 0 {
		msgParts = append(msgParts, fmt.Sprintf("%d rows skipped", n))
	}

	return true, strings.Join(msgParts, " | "), created
}

// group folds the source rows into one accumulator entry per invoice number.
// Header fields come from the first row seen for that number; every further
// row only contributes a line item.
func (imp *InvoiceImporter) group(table *Table) []*models.Invoice {
	cols := ResolveColumns(table.Headers, invoiceFields)

	if cols["invoice_number"] == "" {
		imp.report.addError("Missing required column: Invoice Number")
		return nil
	}

	simple := imp.Format == FormatSimple
	if imp.Format == FormatAuto {
		simple = cols["value"] != "" && cols["account_code"] == ""
	}
	if !simple {
		if cols["account_code"] == "" {
			imp.report.addError("Missing required column: Account Code (for long format)")
			return nil
		}
		if cols["gross"] == "" && cols["value"] == "" {
			imp.report.addError("Missing required column: Gross Amount (for long format)")
			return nil
		}
	}
	grossCol := cols["gross"]
	if grossCol == "" {
		grossCol = cols["value"]
	}

	log.Debug().Bool("simple_format", simple).Interface("columns", cols).Msg("invoice column mapping")

	byNumber := make(map[string]*models.Invoice)
	var order []string // deterministic insert order

	for i := 0; i < table.Len(); i++ {
		rowNum := table.RowNumber(i)
		text := func(field string) string { return CoerceText(table.Cell(i, cols[field])) }

		invNum := text("invoice_number")
		if invNum == "" {
			imp.report.skip(rowNum, "No invoice number")
			continue
		}

		if simple {
			value := CoerceAmount(table.Cell(i, cols["value"]))
			if value == 0 {
				imp.report.skip(rowNum, "No value")
				continue
			}
			if _, ok := byNumber[invNum]; ok {
				imp.report.skip(rowNum, "Repeated invoice number "+invNum)
				continue
			}
			desc := text("description")
			inv := imp.header(table, i, cols)
			inv.InvoiceNumber = invNum
			inv.Reference = desc // description doubles as the reference
			inv.Items = []models.InvoiceLineItem{{
				AccountCode: simpleFormatAccountCode,
				Description: desc,
				Net:         value,
				VAT:         0,
				Gross:       value,
			}}
			byNumber[invNum] = inv
			order = append(order, invNum)
			continue
		}

		accountCode := text("account_code")
		if accountCode == "" {
			imp.report.skip(rowNum, "No account code")
			continue
		}

		inv, ok := byNumber[invNum]
		if !ok {
			inv = imp.header(table, i, cols)
			inv.InvoiceNumber = invNum
			inv.Reference = text("reference")
			byNumber[invNum] = inv
			order = append(order, invNum)
		}

		inv.Items = append(inv.Items, models.InvoiceLineItem{
			AccountCode: accountCode,
			Description: text("description"),
			Net:         CoerceAmount(table.Cell(i, cols["net"])),
			VAT:         CoerceAmount(table.Cell(i, cols["vat"])),
			Gross:       CoerceAmount(table.Cell(i, grossCol)),
		})
	}

	out := make([]*models.Invoice, 0, len(order))
	for _, num := range order {
		inv := byNumber[num]
		if len(inv.Items) == 0 {
			continue
		}
		deriveTotals(inv)
		out = append(out, inv)
	}

	log.Info().Int("rows", table.Len()).Int("invoices", len(out)).Msg("invoice grouping")

	return out
}

func (imp *InvoiceImporter) header(t *Table, i int, cols map[string]string) *models.Invoice {
	text := func(field string) string { return CoerceText(t.Cell(i, cols[field])) }

	currency := strings.ToUpper(text("currency"))
	if !imp.cfg.CurrencyAllowed(currency) {
		currency = imp.cfg.DefaultCurrency
	}

	return &models.Invoice{
		ContractNumber:     text("contract_number"),
		FromEntity:         text("from_entity"),
		PromoterName:       text("promoter_name"),
		PaymentBankDetails: text("payment_bank_details"),
		Currency:           currency,
		InvoiceDate:        text("invoice_date"),
		ShowDate:           text("show_date"),
		ImportBatch:        imp.report.BatchID,
		ImportedAt:         time.Now(),
	}
}

// deriveTotals sets the header totals from the line items. The header is
// always the sum of its lines, never a total taken from the source, so
// header and lines cannot drift. Decimal sums keep 2500.00 from becoming
// 2499.9999999997 over many lines.
func deriveTotals(inv *models.Invoice) {
	net, vat, gross := decimal.Zero, decimal.Zero, decimal.Zero
	for _, item := range inv.Items {
		net = net.Add(decimal.NewFromFloat(item.Net))
		vat = vat.Add(decimal.NewFromFloat(item.VAT))
		gross = gross.Add(decimal.NewFromFloat(item.Gross))
	}
	inv.TotalNet, _ = net.Round(2).Float64()
	inv.TotalVAT, _ = vat.Round(2).Float64()
	inv.TotalGross, _ = gross.Round(2).Float64()
	inv.BalanceRemaining = inv.TotalGross
}

func (imp *InvoiceImporter) insert(invoices []*models.Invoice) int {
	created := 0
	for _, inv := range invoices {
		if imp.invoiceExists(inv.InvoiceNumber) {
			imp.report.Duplicates = append(imp.report.Duplicates, inv.InvoiceNumber)
			continue
		}

		if showID := imp.findShow(inv.ContractNumber); showID != nil {
			inv.ShowID = showID
		}

		if err := imp.db.Create(inv).Error; err != nil {
			imp.report.addError(fmt.Sprintf("Invoice %s: insert failed: %v", inv.InvoiceNumber, err))
			continue
		}
		created++
		imp.itemsCreated += len(inv.Items)
	}
	return created
}

func (imp *InvoiceImporter) invoiceExists(invoiceNumber string) bool {
	var count int64
	imp.db.Model(&models.Invoice{}).
		Where("invoice_number = ?", invoiceNumber).
		Count(&count)
	return count > 0
}

// findShow attaches an invoice to a show by contract number. Best effort:
// no match is not an error.
func (imp *InvoiceImporter) findShow(contractNumber string) *uint {
	contractNumber = strings.TrimSpace(contractNumber)
	if contractNumber == "" {
		return nil
	}
	var show models.Show
	if err := imp.db.Where("contract_number = ?", contractNumber).First(&show).Error; err != nil {
		return nil
	}
	return &show.ID
}
