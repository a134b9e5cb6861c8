package config

import (
	"os"
	"strconv"
	"strings"
)

// Settings is the reconciler configuration. It is passed explicitly into the
// importers and the settlement calculator so tests can vary tolerance without
// process-wide state.
type Settings struct {
	// Currencies accepted on import; anything else falls back to DefaultCurrency.
	AllowedCurrencies []string
	DefaultCurrency   string

	// Tolerance for amount comparison (floating point rounding).
	AmountTolerance float64

	// Bank rows with |amount| below this are skipped as noise.
	MinImportAmount float64

	// Outgoing payment types are bucketed by case-insensitive substring match
	// against these labels; anything unmatched lands in "other".
	ArtistBucket string
	HotelBucket  string
	FlightBucket string
}

// Default returns the stock settings used when no env overrides are present.
func Default() Settings {
	return Settings{
		AllowedCurrencies: []string{"GBP", "EUR", "USD", "AUD"},
		DefaultCurrency:   "GBP",
		AmountTolerance:   0.01,
		MinImportAmount:   0.01,
		ArtistBucket:      "artist",
		HotelBucket:       "hotel",
		FlightBucket:      "flight",
	}
}

// Load reads settings from the environment, falling back to Default values.
// Recognised variables: ALLOWED_CURRENCIES (comma-separated), DEFAULT_CURRENCY,
// AMOUNT_TOLERANCE, MIN_IMPORT_AMOUNT.
func Load() Settings {
	s := Default()

	if v := strings.TrimSpace(os.Getenv("ALLOWED_CURRENCIES")); v != "" {
		var list []string
		for _, c := range strings.Split(v, ",") {
			if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
				list = append(list, c)
			}
		}
		if len(list) > 0 {
			s.AllowedCurrencies = list
		}
	}
	if v := strings.TrimSpace(os.Getenv("DEFAULT_CURRENCY")); v != "" {
		s.DefaultCurrency = strings.ToUpper(v)
	}
	s.AmountTolerance = envFloat("AMOUNT_TOLERANCE", s.AmountTolerance)
	s.MinImportAmount = envFloat("MIN_IMPORT_AMOUNT", s.MinImportAmount)

	return s
}

// CurrencyAllowed reports whether code is in the allowed set (case-insensitive).
func (s Settings) CurrencyAllowed(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range s.AllowedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}
