package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate applies the idempotent schema hardening on top of AutoMigrate:
// - Money column types (NUMERIC(12,2))
// - Unique business keys (contract number, invoice number, transaction hash)
// - Helpful indexes for the matching and settlement reads
// - Foreign keys with the delete behaviour the reconciler relies on
// - Basic CHECK constraints
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE shows             ALTER COLUMN artist_fee        TYPE numeric(12,2)`,
			`ALTER TABLE shows             ALTER COLUMN booking_fee       TYPE numeric(12,2)`,
			`ALTER TABLE shows             ALTER COLUMN hotel_buyout      TYPE numeric(12,2)`,
			`ALTER TABLE shows             ALTER COLUMN flight_buyout     TYPE numeric(12,2)`,
			`ALTER TABLE shows             ALTER COLUMN withholding_tax   TYPE numeric(12,2)`,
			`ALTER TABLE bank_transactions ALTER COLUMN amount            TYPE numeric(12,2)`,
			`ALTER TABLE bank_transactions ALTER COLUMN paid_in           TYPE numeric(12,2)`,
			`ALTER TABLE bank_transactions ALTER COLUMN paid_out          TYPE numeric(12,2)`,
			`ALTER TABLE invoices          ALTER COLUMN total_net         TYPE numeric(12,2)`,
			`ALTER TABLE invoices          ALTER COLUMN total_vat         TYPE numeric(12,2)`,
			`ALTER TABLE invoices          ALTER COLUMN total_gross       TYPE numeric(12,2)`,
			`ALTER TABLE invoices          ALTER COLUMN paid_amount       TYPE numeric(12,2)`,
			`ALTER TABLE invoices          ALTER COLUMN balance_remaining TYPE numeric(12,2)`,
			`ALTER TABLE invoice_line_items ALTER COLUMN net              TYPE numeric(12,2)`,
			`ALTER TABLE invoice_line_items ALTER COLUMN vat              TYPE numeric(12,2)`,
			`ALTER TABLE invoice_line_items ALTER COLUMN gross            TYPE numeric(12,2)`,
			`ALTER TABLE handshakes        ALTER COLUMN applied_amount    TYPE numeric(12,2)`,
			`ALTER TABLE handshakes        ALTER COLUMN proxy_amount      TYPE numeric(12,2)`,
			`ALTER TABLE outgoing_payments ALTER COLUMN amount            TYPE numeric(12,2)`,
			`ALTER TABLE settlements       ALTER COLUMN amount_due        TYPE numeric(12,2)`,
			`ALTER TABLE settlements       ALTER COLUMN amount_paid       TYPE numeric(12,2)`,
			`ALTER TABLE settlements       ALTER COLUMN balance           TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_contracts_contract_number ON contracts (contract_number)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_invoices_invoice_number ON invoices (invoice_number)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_bank_transactions_hash ON bank_transactions (transaction_hash)`,
			`CREATE INDEX IF NOT EXISTS idx_handshakes_bank ON handshakes (bank_transaction_id)`,
			`CREATE INDEX IF NOT EXISTS idx_handshakes_invoice ON handshakes (invoice_id)`,
			`CREATE INDEX IF NOT EXISTS idx_invoices_show ON invoices (show_id)`,
			`CREATE INDEX IF NOT EXISTS idx_outgoing_payments_show ON outgoing_payments (show_id)`,
			`CREATE INDEX IF NOT EXISTS idx_settlements_show ON settlements (show_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Foreign keys: handshakes cascade nothing, reversal is explicit ---
		fks := []string{
			`DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint
		WHERE conrelid = 'handshakes'::regclass
		  AND conname  = 'fk_handshakes_bank_transaction'
	) THEN
		ALTER TABLE handshakes
		ADD CONSTRAINT fk_handshakes_bank_transaction
		FOREIGN KEY (bank_transaction_id)
		REFERENCES bank_transactions(id)
		ON UPDATE RESTRICT
		ON DELETE RESTRICT;
	END IF;
END $$;`,
			`DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint
		WHERE conrelid = 'handshakes'::regclass
		  AND conname  = 'fk_handshakes_invoice'
	) THEN
		ALTER TABLE handshakes
		ADD CONSTRAINT fk_handshakes_invoice
		FOREIGN KEY (invoice_id)
		REFERENCES invoices(id)
		ON UPDATE RESTRICT
		ON DELETE RESTRICT;
	END IF;
END $$;`,
		}
		for _, stmt := range fks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("foreign key migration failed: %w", err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			// Invoice totals are non-negative
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoices'::regclass
					  AND conname  = 'chk_invoices_total_gross_nonneg'
				) THEN
					ALTER TABLE invoices
					ADD CONSTRAINT chk_invoices_total_gross_nonneg
					CHECK (total_gross >= 0);
				END IF;
			END $$;`,
			// Outgoing payments are non-negative
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'outgoing_payments'::regclass
					  AND conname  = 'chk_outgoing_payments_amount_nonneg'
				) THEN
					ALTER TABLE outgoing_payments
					ADD CONSTRAINT chk_outgoing_payments_amount_nonneg
					CHECK (amount >= 0);
				END IF;
			END $$;`,
			// Settlement amounts are non-negative
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'settlements'::regclass
					  AND conname  = 'chk_settlements_amount_due_nonneg'
				) THEN
					ALTER TABLE settlements
					ADD CONSTRAINT chk_settlements_amount_due_nonneg
					CHECK (amount_due >= 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
