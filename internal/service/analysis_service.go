package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"spendpause/internal/models"

	"go.uber.org/zap"
)

// Fallback strings used when the LLM omits a field or fails entirely.
const (
	fallbackReasoning = "The analysis service could not produce a detailed assessment for this purchase."
	fallbackMessage   = "Take a moment before buying. A short pause is often enough to tell a want from a need."
)

// LLMClient is the inference contract the analysis service needs.
// Implemented by LLMService; tests substitute a fake.
type LLMClient interface {
	GenerateAnalysis(ctx context.Context, prompt string) (string, error)
}

// AnalysisService merges the pure local signals (pricing warnings,
// opportunity cost) with the LLM's judgment into one AnalysisResult.
// An inference failure degrades to a fixed fallback recommendation rather
// than blocking the user's flow.
type AnalysisService struct {
	llm    LLMClient
	logger *zap.Logger
}

func NewAnalysisService(llm LLMClient, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		llm:    llm,
		logger: logger,
	}
}

// Analyze produces the recommendation for one extracted product. Warnings
// are merged deterministically: analyzer warnings first, then whatever
// valid warnings the model returned.
func (s *AnalysisService) Analyze(
	ctx context.Context,
	product *models.ProductRecord,
	profile *models.UserProfile,
) (*models.AnalysisResult, error) {
	if !ValidateProduct(product) {
		return nil, fmt.Errorf("analyze: invalid product record")
	}

	warnings := AnalyzePricing(product)
	opportunityCost := CalculateOpportunityCost(product.Price, product.Currency)
	prompt := BuildAnalysisPrompt(product, profile, opportunityCost)

	raw, err := s.llm.GenerateAnalysis(ctx, prompt)
	if err != nil {
		s.logger.Warn("LLM analysis failed, using fallback recommendation", zap.Error(err))
		return FallbackRecommendation(product, warnings), nil
	}

	result := ParseAnalysisResponse(raw)
	if result == nil {
		s.logger.Warn("LLM response could not be parsed, using fallback recommendation",
			zap.Int("response_length", len(raw)))
		return FallbackRecommendation(product, warnings), nil
	}

	result.Reasoning = sanitizeUTF8(result.Reasoning)
	result.PersonalizedMessage = sanitizeUTF8(result.PersonalizedMessage)
	result.Warnings = append(warnings, result.Warnings...)
	result.OpportunityCost = opportunityCost

	s.logger.Info("Purchase analysis completed",
		zap.String("product", product.Name),
		zap.String("suggested_action", string(result.SuggestedAction)),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}

// BuildAnalysisPrompt embeds the product data and, when present, the user's
// financial goals (verbatim), monthly budget and savings goal.
func BuildAnalysisPrompt(
	product *models.ProductRecord,
	profile *models.UserProfile,
	opportunityCost models.OpportunityCost,
) string {
	var b strings.Builder

	b.WriteString("A user is about to make this purchase:\n")
	fmt.Fprintf(&b, "- Product: %s\n", product.Name)
	fmt.Fprintf(&b, "- Price: %s %.2f\n", product.Currency, product.Price)
	if product.OriginalPrice != nil {
		fmt.Fprintf(&b, "- Listed original price: %s %.2f\n", product.Currency, *product.OriginalPrice)
	}
	if product.Category != "" {
		fmt.Fprintf(&b, "- Category: %s\n", product.Category)
	}
	for _, indicator := range product.UrgencyIndicators {
		fmt.Fprintf(&b, "- Urgency message on page: %s\n", indicator)
	}

	if profile != nil {
		for _, goal := range profile.FinancialGoals {
			fmt.Fprintf(&b, "- Financial goal: %s\n", goal)
		}
		if profile.MonthlyBudget != nil {
			fmt.Fprintf(&b, "- Monthly Budget: %.2f\n", *profile.MonthlyBudget)
		}
		if profile.SavingsGoal != nil {
			fmt.Fprintf(&b, "- Savings Goal: %.2f\n", *profile.SavingsGoal)
		}
	}

	fmt.Fprintf(&b, "\nIf invested instead, this money could grow to %s in 20 years.\n", FormatCurrency(opportunityCost.Projections.Year20, product.Currency))

	b.WriteString(`
Assess whether this purchase is essential for the user and reply with ONLY a JSON object:
{
  "isEssential": boolean,
  "essentialityScore": number between 0 and 1,
  "reasoning": "short explanation of the assessment",
  "personalizedMessage": "a warm, supportive message for the user",
  "suggestedAction": "proceed" | "cooldown" | "skip",
  "warnings": [{"type": "fake_discount"|"urgency_manipulation"|"inflated_price", "confidence": number, "explanation": "..."}]
}`)

	return b.String()
}

// llmAnalysisPayload tolerates the loosely typed JSON the model returns.
type llmAnalysisPayload struct {
	IsEssential         any    `json:"isEssential"`
	EssentialityScore   any    `json:"essentialityScore"`
	Reasoning           string `json:"reasoning"`
	PersonalizedMessage string `json:"personalizedMessage"`
	SuggestedAction     string `json:"suggestedAction"`
	Warnings            []struct {
		Type        string `json:"type"`
		Confidence  any    `json:"confidence"`
		Explanation string `json:"explanation"`
	} `json:"warnings"`
}

// ParseAnalysisResponse validates and coerces the model's text into an
// AnalysisResult: fenced code blocks are stripped, isEssential is coerced to
// a boolean, the essentiality score is clamped to [0,1] defaulting to 0.5,
// absent strings get fixed fallbacks, the suggested action defaults to
// "cooldown", and malformed warnings are dropped. Returns nil when no JSON
// object can be decoded at all.
func ParseAnalysisResponse(raw string) *models.AnalysisResult {
	jsonStr := extractJSONObject(raw)
	if jsonStr == "" {
		return nil
	}

	var payload llmAnalysisPayload
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil
	}

	result := &models.AnalysisResult{
		IsEssential:         coerceBool(payload.IsEssential),
		EssentialityScore:   coerceScore(payload.EssentialityScore, 0.5),
		Reasoning:           payload.Reasoning,
		PersonalizedMessage: payload.PersonalizedMessage,
		SuggestedAction:     models.SuggestedAction(payload.SuggestedAction),
		Warnings:            []models.PricingWarning{},
	}

	if result.Reasoning == "" {
		result.Reasoning = fallbackReasoning
	}
	if result.PersonalizedMessage == "" {
		result.PersonalizedMessage = fallbackMessage
	}
	if !models.ValidAction(result.SuggestedAction) {
		result.SuggestedAction = models.ActionCoolDown
	}

	for _, w := range payload.Warnings {
		warningType := models.WarningType(w.Type)
		if warningType != models.WarningFakeDiscount &&
			warningType != models.WarningUrgencyManipulation &&
			warningType != models.WarningInflatedPrice {
			continue
		}
		if w.Explanation == "" {
			continue
		}
		result.Warnings = append(result.Warnings, models.PricingWarning{
			Type:        warningType,
			Confidence:  coerceScore(w.Confidence, 0.5),
			Explanation: w.Explanation,
		})
	}

	return result
}

// FallbackRecommendation is returned when inference fails outright. The
// opportunity cost is still computed from the real price, never zeroed.
func FallbackRecommendation(product *models.ProductRecord, warnings []models.PricingWarning) *models.AnalysisResult {
	if warnings == nil {
		warnings = []models.PricingWarning{}
	}
	return &models.AnalysisResult{
		IsEssential:         false,
		EssentialityScore:   0.5,
		Reasoning:           fallbackReasoning,
		Warnings:            warnings,
		OpportunityCost:     CalculateOpportunityCost(product.Price, product.Currency),
		PersonalizedMessage: fallbackMessage,
		SuggestedAction:     models.ActionCoolDown,
	}
}

// extractJSONObject strips a fenced code block wrapper if present and
// returns the outermost JSON object in the text.
func extractJSONObject(raw string) string {
	content := strings.TrimSpace(raw)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return content[start : end+1]
}

func coerceBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(strings.TrimSpace(b), "true")
	case float64:
		return b != 0
	default:
		return false
	}
}

// coerceScore accepts a JSON number or numeric string and clamps it to
// [0,1]; anything else yields the fallback.
func coerceScore(v any, fallback float64) float64 {
	switch n := v.(type) {
	case float64:
		return clamp01(n)
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(n), "%g", &f); err == nil {
			return clamp01(f)
		}
	}
	return fallback
}
