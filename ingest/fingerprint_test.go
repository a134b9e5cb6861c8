package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBankFingerprint(t *testing.T) {
	t.Run("stable across calls", func(t *testing.T) {
		a := BankFingerprint("01/02/2024", 1500.50, "PROMOTER PAYMENT")
		b := BankFingerprint("01/02/2024", 1500.50, "PROMOTER PAYMENT")
		assert.Equal(t, a, b)
		assert.Len(t, a, 32)
	})

	t.Run("any input change changes the hash", func(t *testing.T) {
		base := BankFingerprint("01/02/2024", 1500.50, "PROMOTER PAYMENT")
		assert.NotEqual(t, base, BankFingerprint("02/02/2024", 1500.50, "PROMOTER PAYMENT"))
		assert.NotEqual(t, base, BankFingerprint("01/02/2024", 1500.51, "PROMOTER PAYMENT"))
		assert.NotEqual(t, base, BankFingerprint("01/02/2024", 1500.50, "PROMOTER PAYMENT 2"))
	})

	t.Run("sign matters", func(t *testing.T) {
		assert.NotEqual(t,
			BankFingerprint("01/02/2024", 100, "X"),
			BankFingerprint("01/02/2024", -100, "X"))
	})
}
