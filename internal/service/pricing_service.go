package service

import (
	"fmt"
	"strings"

	"spendpause/internal/models"
)

// Discount thresholds for the two-tier fake-discount confidence split.
const (
	fakeDiscountHighThreshold = 0.70
	fakeDiscountLowThreshold  = 0.50
)

// DetectFakeDiscount flags a claimed original price that produces a
// misleadingly large discount. Discounts of 70% or more score 0.9, 50% or
// more score 0.6, anything smaller is clean.
func DetectFakeDiscount(p *models.ProductRecord) *models.PricingWarning {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price {
		return nil
	}

	discount := (*p.OriginalPrice - p.Price) / *p.OriginalPrice
	switch {
	case discount >= fakeDiscountHighThreshold:
		return &models.PricingWarning{
			Type:        models.WarningFakeDiscount,
			Confidence:  0.9,
			Explanation: fmt.Sprintf("Suspiciously large discount of %.0f%%. The original price may be inflated to stage the deal.", discount*100),
		}
	case discount >= fakeDiscountLowThreshold:
		return &models.PricingWarning{
			Type:        models.WarningFakeDiscount,
			Confidence:  0.6,
			Explanation: fmt.Sprintf("Significant discount of %.0f%%. Verify the original price is typical for this product.", discount*100),
		}
	}
	return nil
}

// DetectUrgencyManipulation scans the product's urgency indicators against
// the fixed urgency-pattern set. Confidence grows with the match count,
// saturating at 0.9, and the explanation names up to the first 2 matched
// indicators verbatim.
func DetectUrgencyManipulation(p *models.ProductRecord) *models.PricingWarning {
	var matched []string
	for _, indicator := range p.UrgencyIndicators {
		if ContainsUrgencyIndicator(indicator) {
			matched = append(matched, indicator)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	confidence := 0.5 + 0.15*float64(len(matched))
	if confidence > 0.9 {
		confidence = 0.9
	}

	named := matched
	if len(named) > 2 {
		named = named[:2]
	}

	return &models.PricingWarning{
		Type:        models.WarningUrgencyManipulation,
		Confidence:  confidence,
		Explanation: fmt.Sprintf("Urgency language detected: %q. These phrases create artificial time pressure.", strings.Join(named, `", "`)),
	}
}

// DetectInflatedPrice fires only when a discount of at least 50% and at
// least one urgency indicator appear together, the pattern of a staged
// deal. Distinct from either signal alone.
func DetectInflatedPrice(p *models.ProductRecord) *models.PricingWarning {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price {
		return nil
	}
	if len(p.UrgencyIndicators) == 0 {
		return nil
	}

	discount := (*p.OriginalPrice - p.Price) / *p.OriginalPrice
	if discount < fakeDiscountLowThreshold {
		return nil
	}

	return &models.PricingWarning{
		Type:        models.WarningInflatedPrice,
		Confidence:  0.7,
		Explanation: "A large discount combined with urgency messaging suggests the original price was inflated to make the deal look better.",
	}
}

// AnalyzePricing runs all three detectors and returns the non-nil warnings
// in a fixed order: fake discount, urgency manipulation, inflated price.
func AnalyzePricing(p *models.ProductRecord) []models.PricingWarning {
	warnings := make([]models.PricingWarning, 0, 3)
	for _, w := range []*models.PricingWarning{
		DetectFakeDiscount(p),
		DetectUrgencyManipulation(p),
		DetectInflatedPrice(p),
	} {
		if w != nil {
			warnings = append(warnings, *w)
		}
	}
	return warnings
}
