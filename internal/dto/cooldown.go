package dto

import "spendpause/internal/models"

// StartCoolDownRequest defers a purchase: the client sends back the product
// and analysis it received from the analysis endpoint, and the service
// stores independent snapshots of both.
type StartCoolDownRequest struct {
	Product  models.ProductRecord  `json:"product" validate:"required"`
	Analysis models.AnalysisResult `json:"analysis" validate:"required"`
}

type CoolDownResponse struct {
	ID            string                `json:"id"`
	ProductURL    string                `json:"product_url"`
	Status        string                `json:"status"`
	StartedAt     string                `json:"started_at"`
	ExpiresAt     string                `json:"expires_at"`
	RemainingMS   int64                 `json:"remaining_ms"`
	RemainingText string                `json:"remaining_text"`
	Product       models.ProductRecord  `json:"product"`
	Analysis      models.AnalysisResult `json:"analysis"`
}

type CoolDownCheckResponse struct {
	OnCoolDown bool              `json:"on_cooldown"`
	CoolDown   *CoolDownResponse `json:"cooldown,omitempty"`
}

type CoolDownListResponse struct {
	CoolDowns []CoolDownResponse `json:"cooldowns"`
}
