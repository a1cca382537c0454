package service

import (
	"regexp"
	"strings"

	"spendpause/internal/models"

	"github.com/shopspring/decimal"
)

const (
	maxProductNameLength     = 200
	maxUrgencyIndicatorLen   = 100
	maxUrgencyIndicatorCount = 5
	suspiciousDiscountPct    = 80
)

// priceTokenRe matches the first numeric token in a scraped price string:
// digits with optional comma thousands separators and an optional decimal
// point. Currency symbols and surrounding words are ignored.
var priceTokenRe = regexp.MustCompile(`\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?`)

// currencySymbols is checked in precedence order; the first symbol found in
// the text wins. Anything else falls back to USD.
var currencySymbols = []struct {
	Symbol string
	Code   string
}{
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"¥", "JPY"},
	{"₹", "INR"},
}

// knownSites maps marketplace name fragments to the selector-profile tag the
// scraping layer should use. Matching is case-insensitive substring.
var knownSites = []string{"amazon", "ebay", "walmart", "etsy", "target"}

// urgencyPatterns is the fixed set of urgency-language patterns: scarcity
// counts, time pressure, social proof, and flash-sale language.
var urgencyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)only\s+\d+\s+left`),
	regexp.MustCompile(`(?i)\b(hurry|act now|last chance|don't miss)`),
	regexp.MustCompile(`(?i)\b(limited time|limited stock|while supplies last|almost gone|selling fast)\b`),
	regexp.MustCompile(`(?i)\b(ends|expires)\s+(today|tonight|soon)\b`),
	regexp.MustCompile(`(?i)\d+\s+(people|others|shoppers)\s+(are\s+viewing|viewed|bought|purchased)`),
	regexp.MustCompile(`(?i)\b(flash sale|today only|deal of the day)\b`),
}

// RawProductData carries the raw scraped fragments posted by the browser
// extension. All fields are untrusted free text.
type RawProductData struct {
	Name              string   `json:"name"`
	PriceText         string   `json:"price_text"`
	OriginalPriceText string   `json:"original_price_text"`
	URL               string   `json:"url"`
	Category          string   `json:"category"`
	UrgencyCandidates []string `json:"urgency_candidates"`
}

// ParsePrice locates the first numeric token in text, strips thousands
// separators and parses it as a decimal amount. Returns nil when the text is
// empty or contains no numeric token.
func ParsePrice(text string) *float64 {
	token := priceTokenRe.FindString(text)
	if token == "" {
		return nil
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(token, ",", ""))
	if err != nil {
		return nil
	}

	v, _ := d.Float64()
	return &v
}

// ParseCurrency returns the ISO code for the first currency symbol found in
// text, defaulting to USD when absent or ambiguous.
func ParseCurrency(text string) string {
	for _, cs := range currencySymbols {
		if strings.Contains(text, cs.Symbol) {
			return cs.Code
		}
	}
	return "USD"
}

// DetectSite classifies a hostname into a known-marketplace tag by
// case-insensitive substring match. Unmatched hostnames are "generic".
func DetectSite(hostname string) string {
	lower := strings.ToLower(hostname)
	for _, site := range knownSites {
		if strings.Contains(lower, site) {
			return site
		}
	}
	return "generic"
}

// ContainsUrgencyIndicator reports whether text matches any of the fixed
// urgency-language patterns.
func ContainsUrgencyIndicator(text string) bool {
	for _, re := range urgencyPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// NormalizeProductName trims whitespace and truncates to 200 characters.
func NormalizeProductName(name string) string {
	return truncate(strings.TrimSpace(name), maxProductNameLength)
}

// CalculateDiscountPercentage returns the rounded percentage discount of
// current against original, or nil when original is absent or not strictly
// greater than current.
func CalculateDiscountPercentage(current float64, original *float64) *int {
	if original == nil || *original <= current {
		return nil
	}

	pct := decimal.NewFromFloat((*original - current) / *original * 100).Round(0)
	v := int(pct.IntPart())
	return &v
}

// IsSuspiciousDiscount reports whether the claimed discount is 80% or more.
func IsSuspiciousDiscount(current float64, original *float64) bool {
	pct := CalculateDiscountPercentage(current, original)
	return pct != nil && *pct >= suspiciousDiscountPct
}

// ValidateProduct is the structural predicate a candidate must pass before
// it is treated as a ProductRecord: non-empty name, positive price,
// 3-character currency code and a non-nil urgency indicator list.
func ValidateProduct(p *models.ProductRecord) bool {
	if p == nil {
		return false
	}
	return p.Name != "" && p.Price > 0 && len(p.Currency) == 3 && p.UrgencyIndicators != nil
}

// ExtractProductFromData builds a ProductRecord from raw scraped fields.
// A name and a parseable positive price are required; everything else
// degrades to its zero value. The original price is kept only when strictly
// greater than the current price, and urgency candidates are filtered
// through the fixed pattern set, truncated to 100 characters each and
// capped at the first 5 in source order. Returns nil when no product can be
// established.
func ExtractProductFromData(raw RawProductData) *models.ProductRecord {
	name := NormalizeProductName(raw.Name)
	if name == "" {
		return nil
	}

	price := ParsePrice(raw.PriceText)
	if price == nil || *price <= 0 {
		return nil
	}

	var originalPrice *float64
	if op := ParsePrice(raw.OriginalPriceText); op != nil && *op > *price {
		originalPrice = op
	}

	indicators := make([]string, 0, maxUrgencyIndicatorCount)
	for _, candidate := range raw.UrgencyCandidates {
		if len(indicators) == maxUrgencyIndicatorCount {
			break
		}
		candidate = strings.TrimSpace(candidate)
		if candidate == "" || !ContainsUrgencyIndicator(candidate) {
			continue
		}
		indicators = append(indicators, truncate(candidate, maxUrgencyIndicatorLen))
	}

	return &models.ProductRecord{
		Name:              name,
		Price:             *price,
		Currency:          ParseCurrency(raw.PriceText),
		OriginalPrice:     originalPrice,
		URL:               raw.URL,
		Category:          strings.TrimSpace(raw.Category),
		UrgencyIndicators: indicators,
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
