package models

// ProductRecord is a validated, normalized product extracted from a scraped
// commerce page. Records are built by the extractor and are not mutated
// afterwards; cool-downs store an independent copy.
type ProductRecord struct {
	Name              string   `json:"name"`
	Price             float64  `json:"price"`
	Currency          string   `json:"currency"`
	OriginalPrice     *float64 `json:"original_price,omitempty"`
	URL               string   `json:"url"`
	Category          string   `json:"category,omitempty"`
	UrgencyIndicators []string `json:"urgency_indicators"`
}
