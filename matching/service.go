// Package matching links bank transactions to invoices via handshakes and
// keeps the derived invoice payment fields consistent under concurrent use.
package matching

import (
	"errors"
	"fmt"
	"math"

	"pinball-backend/models"
	"pinball-backend/utils"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBankTransactionNotFound = errors.New("bank transaction not found")
	ErrInvoiceNotFound         = errors.New("invoice not found")
	ErrHandshakeNotFound       = errors.New("handshake not found")
	ErrNoInvoices              = errors.New("no invoices given")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// forUpdate adds a row lock on dialects that support it. SQLite has no
// FOR UPDATE; its single writer already serialises these transactions.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// CreateHandshake records that applied+proxy of a bank transaction settles
// part of an invoice, and rolls the invoice's paid amount, remaining balance
// and paid flag forward in the same transaction. Both parent rows are locked
// for the duration so concurrent matches against the same invoice serialise.
func (s *Service) CreateHandshake(bankID, invoiceID uint, applied, proxy float64, note, createdBy string) (*models.Handshake, error) {
	applied = utils.Round2(applied)
	proxy = utils.Round2(proxy)

	var hs models.Handshake
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var bank models.BankTransaction
		if err := forUpdate(tx).
			First(&bank, bankID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBankTransactionNotFound
			}
			return err
		}

		var inv models.Invoice
		if err := forUpdate(tx).
			First(&inv, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}

		hs = models.Handshake{
			BankTransactionID: bankID,
			InvoiceID:         invoiceID,
			AppliedAmount:     applied,
			ProxyAmount:       proxy,
			Note:              note,
			CreatedBy:         createdBy,
		}
		if err := tx.Create(&hs).Error; err != nil {
			return err
		}

		if err := tx.Model(&bank).Update("matched", true).Error; err != nil {
			return err
		}

		return applyToInvoice(tx, &inv, applied+proxy)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("handshake_id", hs.ID).
		Uint("bank_transaction_id", bankID).
		Uint("invoice_id", invoiceID).
		Float64("applied", applied).
		Float64("proxy", proxy).
		Msg("handshake created")

	return &hs, nil
}

// DeleteHandshake is the exact inverse of CreateHandshake: the invoice's
// derived fields are decremented by the handshake's contribution, and the
// bank transaction's matched flag is cleared only when no other handshake
// still references it.
func (s *Service) DeleteHandshake(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var hs models.Handshake
		if err := tx.First(&hs, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHandshakeNotFound
			}
			return err
		}

		var inv models.Invoice
		if err := forUpdate(tx).
			First(&inv, hs.InvoiceID).Error; err != nil {
			return err
		}

		if err := tx.Delete(&hs).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&models.Handshake{}).
			Where("bank_transaction_id = ?", hs.BankTransactionID).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			if err := tx.Model(&models.BankTransaction{}).
				Where("id = ?", hs.BankTransactionID).
				Update("matched", false).Error; err != nil {
				return err
			}
		}

		return applyToInvoice(tx, &inv, -(hs.AppliedAmount + hs.ProxyAmount))
	})
	if err != nil {
		return err
	}

	log.Info().Uint("handshake_id", id).Msg("handshake deleted")
	return nil
}

// SplitMatch spreads one bank transaction across several invoices in the
// order given. Each invoice receives min(remaining bank amount, its total
// gross); the proxy amount, if any, attaches to the first invoice only.
func (s *Service) SplitMatch(bankID uint, invoiceIDs []uint, proxy float64, note, createdBy string) ([]models.Handshake, error) {
	if len(invoiceIDs) == 0 {
		return nil, ErrNoInvoices
	}

	var bank models.BankTransaction
	if err := s.db.First(&bank, bankID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBankTransactionNotFound
		}
		return nil, err
	}

	remaining := math.Abs(bank.Amount)
	created := make([]models.Handshake, 0, len(invoiceIDs))

	for i, invID := range invoiceIDs {
		if remaining <= 0 {
			break
		}

		var inv models.Invoice
		if err := s.db.First(&inv, invID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return created, fmt.Errorf("%w: id %d", ErrInvoiceNotFound, invID)
			}
			return created, err
		}

		applied := math.Min(remaining, inv.TotalGross)
		p := 0.0
		if i == 0 {
			p = proxy
		}

		hs, err := s.CreateHandshake(bankID, invID, applied, p, note, createdBy)
		if err != nil {
			return created, err
		}
		created = append(created, *hs)
		remaining = utils.Round2(remaining - applied)
	}

	return created, nil
}

// RecomputeInvoiceTotals rebuilds an invoice's derived payment fields from
// its handshakes. A repair tool for rows touched outside the service.
func (s *Service) RecomputeInvoiceTotals(invoiceID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := forUpdate(tx).
			First(&inv, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}

		var handshakes []models.Handshake
		if err := tx.Where("invoice_id = ?", invoiceID).Find(&handshakes).Error; err != nil {
			return err
		}

		paid := 0.0
		for _, hs := range handshakes {
			paid += hs.AppliedAmount + hs.ProxyAmount
		}
		paid = utils.Round2(paid)

		return tx.Model(&inv).Updates(map[string]interface{}{
			"paid_amount":       paid,
			"balance_remaining": utils.Round2(inv.TotalGross - paid),
			"is_paid":           paid >= inv.TotalGross,
		}).Error
	})
}

// applyToInvoice shifts the invoice's paid amount by delta and rederives the
// balance and paid flag. Must run inside a transaction holding the invoice
// row lock.
func applyToInvoice(tx *gorm.DB, inv *models.Invoice, delta float64) error {
	paid := utils.Round2(inv.PaidAmount + delta)
	return tx.Model(inv).Updates(map[string]interface{}{
		"paid_amount":       paid,
		"balance_remaining": utils.Round2(inv.TotalGross - paid),
		"is_paid":           paid >= inv.TotalGross,
	}).Error
}
