package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable(t *testing.T) {
	t.Run("strips BOM and trims headers", func(t *testing.T) {
		table, err := ReadTable(strings.NewReader("\uFEFFDate , Description\n01/02/2024,Fee\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Date", "Description"}, table.Headers)
		assert.Equal(t, 1, table.Len())
		assert.Equal(t, "Fee", table.Cell(0, "Description"))
	})

	t.Run("tolerates short rows", func(t *testing.T) {
		table, err := ReadTable(strings.NewReader("a,b,c\n1,2\n"))
		require.NoError(t, err)
		assert.Equal(t, "2", table.Cell(0, "b"))
		assert.Equal(t, "", table.Cell(0, "c"))
	})

	t.Run("empty source", func(t *testing.T) {
		_, err := ReadTable(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptySource)
	})

	t.Run("row numbers count the header", func(t *testing.T) {
		table, err := ReadTable(strings.NewReader("a\nx\ny\n"))
		require.NoError(t, err)
		assert.Equal(t, 2, table.RowNumber(0))
		assert.Equal(t, 3, table.RowNumber(1))
	})
}

func TestResolveColumn(t *testing.T) {
	t.Run("exact match wins over substring", func(t *testing.T) {
		headers := []string{"Transaction Date", "Date"}
		got := ResolveColumn(headers, []string{"date", "transaction date"})
		assert.Equal(t, "Transaction Date", got)
	})

	t.Run("exact match is case-insensitive", func(t *testing.T) {
		got := ResolveColumn([]string{"PAID IN"}, []string{"paid in"})
		assert.Equal(t, "PAID IN", got)
	})

	t.Run("substring fallback", func(t *testing.T) {
		got := ResolveColumn([]string{"Invoice Gross Amount"}, []string{"gross"})
		assert.Equal(t, "Invoice Gross Amount", got)
	})

	t.Run("short candidates never substring-match", func(t *testing.T) {
		// "cr" would otherwise match inside "Description"
		got := ResolveColumn([]string{"Description"}, []string{"cr"})
		assert.Equal(t, "", got)
	})

	t.Run("no match", func(t *testing.T) {
		got := ResolveColumn([]string{"Foo", "Bar"}, []string{"date", "txn date"})
		assert.Equal(t, "", got)
	})
}

func TestResolveColumns(t *testing.T) {
	fields := []Field{
		{"artist_fee", []string{"af", "artist fee", "fee"}},
		{"booking_fee", []string{"bf", "booking fee"}},
		{"withholding_tax", []string{"wht", "withholding tax", "tax"}},
	}

	t.Run("exact phase runs for every field before substring", func(t *testing.T) {
		// "fee" as a substring would claim "Booking Fee" for artist_fee if
		// resolution were per-field instead of per-phase.
		headers := []string{"Booking Fee", "Artist Fee", "WHT"}
		got := ResolveColumns(headers, fields)
		assert.Equal(t, "Artist Fee", got["artist_fee"])
		assert.Equal(t, "Booking Fee", got["booking_fee"])
		assert.Equal(t, "WHT", got["withholding_tax"])
	})

	t.Run("claimed headers are not reused in phase two", func(t *testing.T) {
		headers := []string{"Artist Fee", "Tax Withheld"}
		got := ResolveColumns(headers, fields)
		assert.Equal(t, "Artist Fee", got["artist_fee"])
		// "fee" must not steal "Artist Fee" for booking_fee
		assert.Equal(t, "", got["booking_fee"])
		assert.Equal(t, "Tax Withheld", got["withholding_tax"])
	})
}

func TestCoerceText(t *testing.T) {
	assert.Equal(t, "", CoerceText("  "))
	assert.Equal(t, "", CoerceText("NaN"))
	assert.Equal(t, "", CoerceText("None"))
	assert.Equal(t, "", CoerceText("n/a"))
	assert.Equal(t, "ACME Ltd", CoerceText("  ACME Ltd  "))
}

func TestCoerceAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"nan", 0},
		{"None", 0},
		{"N/A", 0},
		{"-", 0},
		{"zero", 0},
		{"nil", 0},
		{"1,234.56", 1234.56},
		{"£2,500.00", 2500},
		{"$99.95", 99.95},
		{"€ 1 000", 0}, // inner space is not a separator we strip
		{"-450.25", -450.25},
		{"gibberish", 0},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.InDelta(t, tc.want, CoerceAmount(tc.in), 1e-9)
		})
	}
}

func TestCoerceInt(t *testing.T) {
	assert.Equal(t, 910516, CoerceInt("910516", 0))
	assert.Equal(t, 910516, CoerceInt("910516.0", 0))
	assert.Equal(t, 7, CoerceInt("junk", 7))
	assert.Equal(t, 7, CoerceInt("", 7))
}
