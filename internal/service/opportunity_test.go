package service

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateOpportunityCost(t *testing.T) {
	t.Run("hundred dollars compounds at seven percent", func(t *testing.T) {
		oc := CalculateOpportunityCost(100, "USD")
		assert.InDelta(t, 100.0, oc.Amount, 0.001)
		assert.InDelta(t, 140.26, oc.Projections.Year5, 0.01)
		assert.InDelta(t, 196.72, oc.Projections.Year10, 0.01)
		assert.InDelta(t, 386.97, oc.Projections.Year20, 0.01)
	})

	t.Run("projections grow over time", func(t *testing.T) {
		for _, price := range []float64{1, 19.99, 250, 100000} {
			oc := CalculateOpportunityCost(price, "USD")
			assert.Greater(t, oc.Projections.Year5, price)
			assert.Greater(t, oc.Projections.Year10, oc.Projections.Year5)
			assert.Greater(t, oc.Projections.Year20, oc.Projections.Year10)
		}
	})

	t.Run("non-positive price zeroes everything", func(t *testing.T) {
		for _, price := range []float64{0, -5} {
			oc := CalculateOpportunityCost(price, "USD")
			assert.Zero(t, oc.Amount)
			assert.Zero(t, oc.Projections.Year5)
			assert.Zero(t, oc.Projections.Year10)
			assert.Zero(t, oc.Projections.Year20)
			assert.Contains(t, oc.ComparisonText, "valid price")
		}
	})

	t.Run("comparison text quotes the twenty year figure", func(t *testing.T) {
		oc := CalculateOpportunityCost(100, "USD")
		assert.Contains(t, oc.ComparisonText, "$386.97")
	})
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{1234.5, "USD", "$1,234.50"},
		{1234.5, "EUR", "€1,234.50"},
		{1234.5, "GBP", "£1,234.50"},
		{99.99, "USD", "$99.99"},
		{1000000, "USD", "$1,000,000.00"},
		{42, "SEK", "SEK 42.00"},
	}

	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.amount, tt.currency))
		})
	}
}

func TestFormatCurrencyRoundTrip(t *testing.T) {
	// Stripping formatting must recover the original amount.
	for _, amount := range []float64{0.01, 9.5, 1234.56, 987654.32} {
		formatted := FormatCurrency(amount, "USD")
		cleaned := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' || r == '.' {
				return r
			}
			return -1
		}, formatted)
		parsed, err := strconv.ParseFloat(cleaned, 64)
		require.NoError(t, err)
		assert.InDelta(t, amount, parsed, 0.01)
	}
}
