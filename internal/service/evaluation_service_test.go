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

type fakeJudge struct {
	score float64
	err   error
}

func (f *fakeJudge) JudgeRelevance(_ context.Context, _, _ string) (float64, error) {
	return f.score, f.err
}

func TestScoreEmpathy(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    float64
	}{
		{
			name:    "neutral message",
			message: "The product costs fifty dollars.",
			want:    0.5,
		},
		{
			name:    "supportive message",
			message: "I understand saving for your goals is hard; let's think about it",
			want:    0.9,
		},
		{
			name:    "harsh message",
			message: "This is a bad idea, you must not buy it",
			want:    0.3,
		},
		{
			name:    "mixed tone",
			message: "I understand, but buying this would be a bad call",
			want:    0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ScoreEmpathy(tt.message), 0.001)
		})
	}
}

func TestScoreAccuracy(t *testing.T) {
	headphones := &models.ProductRecord{
		Name:     "Wireless Headphones",
		Price:    100,
		Currency: "USD",
	}

	correctResult := func() *models.AnalysisResult {
		return &models.AnalysisResult{
			IsEssential:     false,
			OpportunityCost: CalculateOpportunityCost(100, "USD"),
		}
	}

	t.Run("consistent result scores full marks", func(t *testing.T) {
		assert.InDelta(t, 1.0, ScoreAccuracy(headphones, correctResult()), 0.001)
	})

	t.Run("wrong twenty year projection costs 0.3", func(t *testing.T) {
		r := correctResult()
		r.OpportunityCost.Projections.Year20 = 500
		assert.InDelta(t, 0.7, ScoreAccuracy(headphones, r), 0.001)
	})

	t.Run("luxury item marked essential costs 0.2", func(t *testing.T) {
		watch := &models.ProductRecord{Name: "Luxury Watch", Price: 100, Currency: "USD"}
		r := correctResult()
		r.IsEssential = true
		assert.InDelta(t, 0.8, ScoreAccuracy(watch, r), 0.001)
	})

	t.Run("groceries marked non-essential costs 0.2", func(t *testing.T) {
		groceries := &models.ProductRecord{Name: "Weekly Groceries", Price: 100, Currency: "USD", Category: "food"}
		assert.InDelta(t, 0.8, ScoreAccuracy(groceries, correctResult()), 0.001)
	})

	t.Run("deductions stack", func(t *testing.T) {
		watch := &models.ProductRecord{Name: "Luxury Watch", Price: 100, Currency: "USD"}
		r := correctResult()
		r.IsEssential = true
		r.OpportunityCost.Projections.Year20 = 500
		assert.InDelta(t, 0.5, ScoreAccuracy(watch, r), 0.001)
	})
}

func TestScoreActionability(t *testing.T) {
	t.Run("full recommendation", func(t *testing.T) {
		r := &models.AnalysisResult{
			Reasoning:       "This item is discretionary and the price pattern looks staged.",
			SuggestedAction: models.ActionCoolDown,
			Warnings: []models.PricingWarning{
				{Type: models.WarningFakeDiscount, Confidence: 0.9, Explanation: "x"},
			},
		}
		assert.InDelta(t, 1.0, ScoreActionability(r), 0.001)
	})

	t.Run("bare result", func(t *testing.T) {
		r := &models.AnalysisResult{SuggestedAction: "maybe"}
		assert.InDelta(t, 0.5, ScoreActionability(r), 0.001)
	})

	t.Run("warnings ignored when action is proceed", func(t *testing.T) {
		r := &models.AnalysisResult{
			Reasoning:       "Looks fine, prices are consistent with history.",
			SuggestedAction: models.ActionProceed,
			Warnings: []models.PricingWarning{
				{Type: models.WarningUrgencyManipulation, Confidence: 0.65, Explanation: "x"},
			},
		}
		assert.InDelta(t, 0.9, ScoreActionability(r), 0.001)
	})
}

func TestEvaluateIntervention(t *testing.T) {
	p := &models.ProductRecord{Name: "Wireless Headphones", Price: 100, Currency: "USD"}
	result := &models.AnalysisResult{
		IsEssential:         false,
		Reasoning:           "Discretionary purchase with a staged discount.",
		PersonalizedMessage: "I understand you're saving for your goals; let's think about it.",
		SuggestedAction:     models.ActionCoolDown,
		OpportunityCost:     CalculateOpportunityCost(100, "USD"),
	}
	profile := &models.UserProfile{ID: "user-1", SpendingThreshold: 20, CoolDownEnabled: true}

	t.Run("all scores within bounds", func(t *testing.T) {
		svc := NewEvaluationService(&fakeJudge{score: 0.8}, zap.NewNop())
		ev := svc.EvaluateIntervention(context.Background(), p, result, profile)
		require.NotNil(t, ev)
		for _, score := range []float64{ev.Empathy, ev.Accuracy, ev.Actionability, ev.Relevance} {
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
		assert.InDelta(t, 0.8, ev.Relevance, 0.001)
	})

	t.Run("judge failure falls back to default relevance", func(t *testing.T) {
		svc := NewEvaluationService(&fakeJudge{err: errors.New("judge offline")}, zap.NewNop())
		ev := svc.EvaluateIntervention(context.Background(), p, result, profile)
		assert.InDelta(t, defaultRelevanceScore, ev.Relevance, 0.001)
	})

	t.Run("nil judge falls back to default relevance", func(t *testing.T) {
		svc := NewEvaluationService(nil, zap.NewNop())
		ev := svc.EvaluateIntervention(context.Background(), p, result, profile)
		assert.InDelta(t, defaultRelevanceScore, ev.Relevance, 0.001)
	})

	t.Run("naming a stated goal raises empathy", func(t *testing.T) {
		svc := NewEvaluationService(&fakeJudge{score: 0.8}, zap.NewNop())
		withGoal := &models.UserProfile{ID: "user-1", FinancialGoals: []string{"Trip to Japan"}}

		generic := *result
		generic.PersonalizedMessage = "Pausing here keeps the bigger picture in view."
		named := *result
		named.PersonalizedMessage = "Pausing here keeps the trip to Japan in view."

		base := svc.EvaluateIntervention(context.Background(), p, &generic, withGoal)
		boosted := svc.EvaluateIntervention(context.Background(), p, &named, withGoal)
		assert.InDelta(t, base.Empathy+0.1, boosted.Empathy, 0.001)
	})

	t.Run("out of range judge score is clamped", func(t *testing.T) {
		svc := NewEvaluationService(&fakeJudge{score: 1.5}, zap.NewNop())
		ev := svc.EvaluateIntervention(context.Background(), p, result, profile)
		assert.InDelta(t, 1.0, ev.Relevance, 0.001)
	})
}
