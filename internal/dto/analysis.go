package dto

import "spendpause/internal/models"

// AnalyzeRequest carries the raw fields the browser extension scraped from
// a commerce page.
type AnalyzeRequest struct {
	Name              string   `json:"name" validate:"required"`
	PriceText         string   `json:"price_text" validate:"required"`
	OriginalPriceText string   `json:"original_price_text"`
	URL               string   `json:"url" validate:"required,url"`
	Category          string   `json:"category"`
	UrgencyCandidates []string `json:"urgency_candidates"`
}

type AnalyzeResponse struct {
	Product  models.ProductRecord  `json:"product"`
	Analysis models.AnalysisResult `json:"analysis"`
	Site     string                `json:"site"`
}
