package ingest

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// BankFingerprint computes the duplicate-detection key for a bank statement
// line: an md5 over date, signed amount and description joined with "|".
// Not a security boundary, just a stable well-distributed key.
func BankFingerprint(date string, amount float64, description string) string {
	combined := strings.Join([]string{
		date,
		fmt.Sprintf("%g", amount),
		description,
	}, "|")
	sum := md5.Sum([]byte(combined))
	return hex.EncodeToString(sum[:])
}
