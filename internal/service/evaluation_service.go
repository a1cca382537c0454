package service

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"spendpause/internal/models"

	"go.uber.org/zap"
)

// defaultRelevanceScore is used when the external relevance judge fails.
const defaultRelevanceScore = 0.7

// Supportive-language categories scored by the empathy heuristic. Each
// matched category adds 0.1 to the base score.
var supportivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(understand|makes sense|it's okay|completely normal)\b`),
	regexp.MustCompile(`(?i)\b(your goals?|saving for|your budget|working towards?)\b`),
	regexp.MustCompile(`(?i)\b(help|support|here for you|let's)\b`),
	regexp.MustCompile(`(?i)\b(consider|reflect|think about|ask yourself|worth pausing)\b`),
}

// Harsh-language categories; each matched category subtracts 0.1.
var harshPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bmust\b`),
	regexp.MustCompile(`(?i)\b(wrong|bad|foolish|stupid)\b`),
}

var essentialKeywords = []string{"food", "grocer", "medicine", "health", "utilit", "housing"}

var nonEssentialKeywords = []string{"luxury", "entertainment", "fashion", "gadget", "game", "jewelry"}

// RelevanceJudge scores how relevant an answer is to a question, in [0,1].
// Backed by the LLM service in production.
type RelevanceJudge interface {
	JudgeRelevance(ctx context.Context, question, answer string) (float64, error)
}

// EvaluationService scores recommendation quality for monitoring. Scores
// never gate user-facing behavior, and a judge failure degrades to a fixed
// default rather than failing the evaluation.
type EvaluationService struct {
	judge  RelevanceJudge
	logger *zap.Logger
}

func NewEvaluationService(judge RelevanceJudge, logger *zap.Logger) *EvaluationService {
	return &EvaluationService{
		judge:  judge,
		logger: logger,
	}
}

// EvaluateIntervention composes the four quality scores for one
// recommendation. Every field is independently in [0,1].
func (s *EvaluationService) EvaluateIntervention(
	ctx context.Context,
	product *models.ProductRecord,
	result *models.AnalysisResult,
	profile *models.UserProfile,
) *models.EvaluationResult {
	empathy := ScoreEmpathy(result.PersonalizedMessage)
	if profile != nil && mentionsGoal(result.PersonalizedMessage, profile.FinancialGoals) {
		// A message that names one of the user's stated goals is more
		// personal than generic supportive language.
		empathy = clamp01(empathy + 0.1)
	}

	return &models.EvaluationResult{
		Empathy:       empathy,
		Accuracy:      ScoreAccuracy(product, result),
		Actionability: ScoreActionability(result),
		Relevance:     s.scoreRelevance(ctx, product, result),
	}
}

func mentionsGoal(message string, goals []string) bool {
	lower := strings.ToLower(message)
	for _, goal := range goals {
		if goal != "" && strings.Contains(lower, strings.ToLower(goal)) {
			return true
		}
	}
	return false
}

// ScoreEmpathy rates the tone of the personalized message: base 0.5, +0.1
// per supportive-language category matched, -0.1 per harsh-language
// category, clamped to [0,1].
func ScoreEmpathy(message string) float64 {
	score := 0.5
	for _, re := range supportivePatterns {
		if re.MatchString(message) {
			score += 0.1
		}
	}
	for _, re := range harshPatterns {
		if re.MatchString(message) {
			score -= 0.1
		}
	}
	return clamp01(score)
}

// ScoreAccuracy starts at 1.0 and deducts 0.3 when the stated 20-year
// opportunity cost deviates from price compounded at 7% by more than 1%
// relative error, and 0.2 when the essentiality classification contradicts
// a category keyword match. Floored at 0.
func ScoreAccuracy(product *models.ProductRecord, result *models.AnalysisResult) float64 {
	score := 1.0

	expected := compound(product.Price, 20)
	stated := result.OpportunityCost.Projections.Year20
	if expected > 0 && math.Abs(stated-expected)/expected > 0.01 {
		score -= 0.3
	}

	text := strings.ToLower(product.Name + " " + product.Category)
	if result.IsEssential && matchesAny(text, nonEssentialKeywords) {
		score -= 0.2
	} else if !result.IsEssential && matchesAny(text, essentialKeywords) {
		score -= 0.2
	}

	if score < 0 {
		return 0
	}
	return score
}

// ScoreActionability starts at 0.5: +0.2 for a valid suggested action, +0.2
// for reasoning longer than 20 characters, +0.1 when warnings exist and the
// action is not "proceed". Capped at 1.0.
func ScoreActionability(result *models.AnalysisResult) float64 {
	score := 0.5
	if models.ValidAction(result.SuggestedAction) {
		score += 0.2
	}
	if len(result.Reasoning) > 20 {
		score += 0.2
	}
	if len(result.Warnings) > 0 && result.SuggestedAction != models.ActionProceed {
		score += 0.1
	}
	if score > 1 {
		return 1
	}
	return score
}

func (s *EvaluationService) scoreRelevance(ctx context.Context, product *models.ProductRecord, result *models.AnalysisResult) float64 {
	if s.judge == nil {
		return defaultRelevanceScore
	}

	question := fmt.Sprintf("should I buy %s for %s %.2f?", product.Name, product.Currency, product.Price)
	score, err := s.judge.JudgeRelevance(ctx, question, result.PersonalizedMessage)
	if err != nil {
		s.logger.Warn("Relevance judge failed, using default score", zap.Error(err))
		return defaultRelevanceScore
	}
	return clamp01(score)
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
