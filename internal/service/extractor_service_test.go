package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *float64
	}{
		{name: "plain integer", text: "1299", want: floatPtr(1299)},
		{name: "decimal", text: "59.99", want: floatPtr(59.99)},
		{name: "dollar sign with thousands separator", text: "$1,234.56", want: floatPtr(1234.56)},
		{name: "euro with thousands separator", text: "€1,000.00", want: floatPtr(1000)},
		{name: "surrounding words", text: "Price: 59.99 USD", want: floatPtr(59.99)},
		{name: "large grouped value", text: "2,500,000", want: floatPtr(2500000)},
		{name: "empty", text: "", want: nil},
		{name: "no numeric token", text: "call for price", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(tt.text)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 0.001)
		})
	}
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"$19.99", "USD"},
		{"€1,000.00", "EUR"},
		{"£45", "GBP"},
		{"¥1200", "JPY"},
		{"₹799", "INR"},
		{"19.99", "USD"},
		{"", "USD"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCurrency(tt.text), "text %q", tt.text)
	}
}

func TestDetectSite(t *testing.T) {
	tests := []struct {
		hostname string
		want     string
	}{
		{"www.amazon.com", "amazon"},
		{"smile.AMAZON.co.uk", "amazon"},
		{"www.ebay.de", "ebay"},
		{"shop.walmart.com", "walmart"},
		{"www.etsy.com", "etsy"},
		{"www.target.com", "target"},
		{"shop.example.com", "generic"},
		{"", "generic"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectSite(tt.hostname), "hostname %q", tt.hostname)
	}
}

func TestContainsUrgencyIndicator(t *testing.T) {
	matching := []string{
		"Only 3 left in stock!",
		"Hurry, sale ends soon",
		"Limited time offer",
		"12 people are viewing this right now",
		"Flash sale - today only",
		"Almost gone!",
	}
	for _, text := range matching {
		assert.True(t, ContainsUrgencyIndicator(text), "expected match for %q", text)
	}

	clean := []string{
		"Free shipping on orders over $25",
		"Available in three colors",
		"",
	}
	for _, text := range clean {
		assert.False(t, ContainsUrgencyIndicator(text), "expected no match for %q", text)
	}
}

func TestNormalizeProductName(t *testing.T) {
	assert.Equal(t, "Wireless Headphones", NormalizeProductName("  Wireless Headphones  "))

	long := strings.Repeat("a", 250)
	normalized := NormalizeProductName(long)
	assert.Len(t, normalized, 200)
}

func TestCalculateDiscountPercentage(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		original *float64
		want     *int
	}{
		{name: "eighty percent", current: 20, original: floatPtr(100), want: intPtr(80)},
		{name: "half off", current: 50, original: floatPtr(100), want: intPtr(50)},
		{name: "rounds to nearest", current: 66.5, original: floatPtr(100), want: intPtr(34)},
		{name: "no original price", current: 20, original: nil, want: nil},
		{name: "original equals current", current: 20, original: floatPtr(20), want: nil},
		{name: "original below current", current: 20, original: floatPtr(10), want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDiscountPercentage(tt.current, tt.original)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestIsSuspiciousDiscount(t *testing.T) {
	assert.True(t, IsSuspiciousDiscount(20, floatPtr(100)))
	assert.True(t, IsSuspiciousDiscount(10, floatPtr(100)))
	assert.False(t, IsSuspiciousDiscount(50, floatPtr(100)))
	assert.False(t, IsSuspiciousDiscount(20, nil))
}

func TestExtractProductFromData(t *testing.T) {
	t.Run("full extraction", func(t *testing.T) {
		product := ExtractProductFromData(RawProductData{
			Name:              "  Espresso Machine  ",
			PriceText:         "$1,234.56",
			OriginalPriceText: "$2,499.00",
			URL:               "https://www.example.com/espresso",
			Category:          "kitchen",
			UrgencyCandidates: []string{"Only 2 left!", "free shipping", "Hurry, sale ends soon"},
		})

		require.NotNil(t, product)
		assert.Equal(t, "Espresso Machine", product.Name)
		assert.InDelta(t, 1234.56, product.Price, 0.001)
		assert.Equal(t, "USD", product.Currency)
		require.NotNil(t, product.OriginalPrice)
		assert.InDelta(t, 2499.00, *product.OriginalPrice, 0.001)
		assert.Equal(t, "kitchen", product.Category)
		assert.Equal(t, []string{"Only 2 left!", "Hurry, sale ends soon"}, product.UrgencyIndicators)
		assert.True(t, ValidateProduct(product))
	})

	t.Run("caps urgency indicators at five", func(t *testing.T) {
		candidates := make([]string, 8)
		for i := range candidates {
			candidates[i] = "Only 1 left in stock"
		}

		product := ExtractProductFromData(RawProductData{
			Name:              "Lamp",
			PriceText:         "$10",
			URL:               "https://example.com/lamp",
			UrgencyCandidates: candidates,
		})
		require.NotNil(t, product)
		assert.Len(t, product.UrgencyIndicators, 5)
	})

	t.Run("truncates long indicators", func(t *testing.T) {
		product := ExtractProductFromData(RawProductData{
			Name:              "Lamp",
			PriceText:         "$10",
			URL:               "https://example.com/lamp",
			UrgencyCandidates: []string{"Hurry! " + strings.Repeat("x", 150)},
		})
		require.NotNil(t, product)
		require.Len(t, product.UrgencyIndicators, 1)
		assert.Len(t, product.UrgencyIndicators[0], 100)
	})

	t.Run("drops original price not above current", func(t *testing.T) {
		product := ExtractProductFromData(RawProductData{
			Name:              "Lamp",
			PriceText:         "$10",
			OriginalPriceText: "$8",
			URL:               "https://example.com/lamp",
		})
		require.NotNil(t, product)
		assert.Nil(t, product.OriginalPrice)
	})

	t.Run("no name", func(t *testing.T) {
		assert.Nil(t, ExtractProductFromData(RawProductData{
			Name:      "   ",
			PriceText: "$10",
			URL:       "https://example.com",
		}))
	})

	t.Run("unparseable price", func(t *testing.T) {
		assert.Nil(t, ExtractProductFromData(RawProductData{
			Name:      "Lamp",
			PriceText: "contact us",
			URL:       "https://example.com",
		}))
	})
}

func TestValidateProduct(t *testing.T) {
	valid := ExtractProductFromData(RawProductData{
		Name:      "Lamp",
		PriceText: "$10",
		URL:       "https://example.com/lamp",
	})
	require.NotNil(t, valid)
	assert.True(t, ValidateProduct(valid))

	assert.False(t, ValidateProduct(nil))

	broken := *valid
	broken.Currency = "DOLLARS"
	assert.False(t, ValidateProduct(&broken))

	broken = *valid
	broken.Price = 0
	assert.False(t, ValidateProduct(&broken))

	broken = *valid
	broken.UrgencyIndicators = nil
	assert.False(t, ValidateProduct(&broken))
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
