package service

import (
	"context"
	"errors"
	"testing"

	"spendpause/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLLM struct {
	response string
	err      error
	prompt   string
}

func (f *fakeLLM) GenerateAnalysis(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func testProfile() *models.UserProfile {
	return &models.UserProfile{
		ID:                "user-1",
		SavingsGoal:       floatPtr(5000),
		MonthlyBudget:     floatPtr(1200),
		FinancialGoals:    []string{"Emergency fund", "Trip to Japan"},
		SpendingThreshold: 20,
		CoolDownEnabled:   true,
	}
}

func TestAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run("merges model output with local signals", func(t *testing.T) {
		llm := &fakeLLM{response: "```json\n" + `{
			"isEssential": false,
			"essentialityScore": 0.2,
			"reasoning": "Headphones are a discretionary upgrade.",
			"personalizedMessage": "I understand the appeal; let's think about your goals first.",
			"suggestedAction": "cooldown",
			"warnings": [{"type": "fake_discount", "confidence": 0.8, "explanation": "Model saw a staged markdown."}]
		}` + "\n```"}
		svc := NewAnalysisService(llm, zap.NewNop())

		result, err := svc.Analyze(ctx, product(40, floatPtr(100), "Only 2 left!"), testProfile())
		require.NoError(t, err)

		assert.False(t, result.IsEssential)
		assert.InDelta(t, 0.2, result.EssentialityScore, 0.001)
		assert.Equal(t, models.ActionCoolDown, result.SuggestedAction)

		// Local analyzer warnings come first, then the model's.
		require.Len(t, result.Warnings, 4)
		assert.Equal(t, models.WarningFakeDiscount, result.Warnings[0].Type)
		assert.Equal(t, models.WarningUrgencyManipulation, result.Warnings[1].Type)
		assert.Equal(t, models.WarningInflatedPrice, result.Warnings[2].Type)
		assert.Equal(t, "Model saw a staged markdown.", result.Warnings[3].Explanation)

		// The opportunity cost is always the locally computed one.
		assert.InDelta(t, 40.0, result.OpportunityCost.Amount, 0.001)
		assert.Greater(t, result.OpportunityCost.Projections.Year20, 100.0)
	})

	t.Run("inference error falls back", func(t *testing.T) {
		llm := &fakeLLM{err: errors.New("inference unavailable")}
		svc := NewAnalysisService(llm, zap.NewNop())

		result, err := svc.Analyze(ctx, product(100, nil), testProfile())
		require.NoError(t, err)
		assert.Equal(t, models.ActionCoolDown, result.SuggestedAction)
		assert.Equal(t, fallbackReasoning, result.Reasoning)
		assert.InDelta(t, 100.0, result.OpportunityCost.Amount, 0.001)
		assert.InDelta(t, 386.97, result.OpportunityCost.Projections.Year20, 0.01)
	})

	t.Run("unparseable response falls back with analyzer warnings kept", func(t *testing.T) {
		llm := &fakeLLM{response: "I'd rather not answer in JSON today."}
		svc := NewAnalysisService(llm, zap.NewNop())

		result, err := svc.Analyze(ctx, product(40, floatPtr(100), "Only 2 left!"), testProfile())
		require.NoError(t, err)
		assert.Equal(t, models.ActionCoolDown, result.SuggestedAction)
		require.Len(t, result.Warnings, 3)
		assert.Equal(t, models.WarningFakeDiscount, result.Warnings[0].Type)
	})

	t.Run("invalid product is rejected", func(t *testing.T) {
		svc := NewAnalysisService(&fakeLLM{}, zap.NewNop())
		_, err := svc.Analyze(ctx, &models.ProductRecord{Name: "", Price: 10, Currency: "USD"}, testProfile())
		assert.Error(t, err)
	})
}

func TestBuildAnalysisPrompt(t *testing.T) {
	p := product(40, floatPtr(100), "Only 2 left!")
	prompt := BuildAnalysisPrompt(p, testProfile(), CalculateOpportunityCost(40, "USD"))

	assert.Contains(t, prompt, "Test Product")
	assert.Contains(t, prompt, "USD 40.00")
	assert.Contains(t, prompt, "USD 100.00")
	assert.Contains(t, prompt, "Only 2 left!")
	assert.Contains(t, prompt, "- Financial goal: Emergency fund")
	assert.Contains(t, prompt, "- Financial goal: Trip to Japan")
	assert.Contains(t, prompt, "Monthly Budget: 1200.00")
	assert.Contains(t, prompt, "Savings Goal: 5000.00")
	assert.Contains(t, prompt, `"suggestedAction"`)
}

func TestBuildAnalysisPromptWithoutProfile(t *testing.T) {
	prompt := BuildAnalysisPrompt(product(40, nil), nil, CalculateOpportunityCost(40, "USD"))
	assert.Contains(t, prompt, "Test Product")
	assert.NotContains(t, prompt, "Financial goal")
	assert.NotContains(t, prompt, "Monthly Budget")
}

func TestParseAnalysisResponse(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		result := ParseAnalysisResponse(`{"isEssential": true, "essentialityScore": 0.9, "reasoning": "Medicine is essential.", "personalizedMessage": "Go ahead.", "suggestedAction": "proceed"}`)
		require.NotNil(t, result)
		assert.True(t, result.IsEssential)
		assert.InDelta(t, 0.9, result.EssentialityScore, 0.001)
		assert.Equal(t, models.ActionProceed, result.SuggestedAction)
	})

	t.Run("fenced JSON with surrounding prose", func(t *testing.T) {
		result := ParseAnalysisResponse("Here is my assessment:\n```json\n{\"isEssential\": false, \"suggestedAction\": \"skip\"}\n```")
		require.NotNil(t, result)
		assert.False(t, result.IsEssential)
		assert.Equal(t, models.ActionSkip, result.SuggestedAction)
	})

	t.Run("score above one is clamped", func(t *testing.T) {
		result := ParseAnalysisResponse(`{"essentialityScore": 1.7}`)
		require.NotNil(t, result)
		assert.InDelta(t, 1.0, result.EssentialityScore, 0.001)
	})

	t.Run("missing score defaults to 0.5", func(t *testing.T) {
		result := ParseAnalysisResponse(`{"isEssential": false}`)
		require.NotNil(t, result)
		assert.InDelta(t, 0.5, result.EssentialityScore, 0.001)
	})

	t.Run("stringly typed fields are coerced", func(t *testing.T) {
		result := ParseAnalysisResponse(`{"isEssential": "true", "essentialityScore": "0.8"}`)
		require.NotNil(t, result)
		assert.True(t, result.IsEssential)
		assert.InDelta(t, 0.8, result.EssentialityScore, 0.001)
	})

	t.Run("unknown action defaults to cooldown", func(t *testing.T) {
		result := ParseAnalysisResponse(`{"suggestedAction": "buy immediately"}`)
		require.NotNil(t, result)
		assert.Equal(t, models.ActionCoolDown, result.SuggestedAction)
	})

	t.Run("missing strings get fallbacks", func(t *testing.T) {
		result := ParseAnalysisResponse(`{}`)
		require.NotNil(t, result)
		assert.Equal(t, fallbackReasoning, result.Reasoning)
		assert.Equal(t, fallbackMessage, result.PersonalizedMessage)
	})

	t.Run("malformed warnings are dropped", func(t *testing.T) {
		result := ParseAnalysisResponse(`{"warnings": [
			{"type": "fake_discount", "confidence": 0.8, "explanation": "kept"},
			{"type": "price_gouging", "confidence": 0.8, "explanation": "unknown type"},
			{"type": "inflated_price", "confidence": 0.8, "explanation": ""}
		]}`)
		require.NotNil(t, result)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, "kept", result.Warnings[0].Explanation)
	})

	t.Run("no JSON at all", func(t *testing.T) {
		assert.Nil(t, ParseAnalysisResponse("no structured content here"))
		assert.Nil(t, ParseAnalysisResponse(""))
	})
}

func TestFallbackRecommendation(t *testing.T) {
	warnings := []models.PricingWarning{
		{Type: models.WarningFakeDiscount, Confidence: 0.9, Explanation: "x"},
	}
	result := FallbackRecommendation(product(100, nil), warnings)

	assert.False(t, result.IsEssential)
	assert.Equal(t, models.ActionCoolDown, result.SuggestedAction)
	assert.Equal(t, warnings, result.Warnings)
	assert.InDelta(t, 100.0, result.OpportunityCost.Amount, 0.001)
	assert.InDelta(t, 386.97, result.OpportunityCost.Projections.Year20, 0.01)

	t.Run("nil warnings become empty slice", func(t *testing.T) {
		result := FallbackRecommendation(product(100, nil), nil)
		assert.NotNil(t, result.Warnings)
		assert.Empty(t, result.Warnings)
	})
}
