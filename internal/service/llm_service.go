package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"spendpause/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// LLMService wraps the hosted GigaChat inference API. It produces the
// free-form analysis text the parser turns into an AnalysisResult, and
// doubles as the semantic relevance judge for the evaluation scorer.
type LLMService struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

func buildSystemInstruction() string {
	return `You are a mindful spending advisor. A user is about to buy something online; your job is to help them pause and decide whether the purchase is truly worth it.

Principles:
- Be warm and non-judgmental. The user is in control; you offer perspective, not orders.
- Ground advice in the user's own goals and budget when they are provided.
- Be honest about manipulation: fake discounts and urgency language deserve plain naming.
- When asked for structured output, return ONLY valid JSON with the exact fields requested, no markdown fences, no commentary.`
}

func NewLLMService(cfg *config.GigaChatConfig, logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = buildSystemInstruction()
	model.Temperature = 0.3

	logger.Info("LLM service initialized", zap.String("model", cfg.Model))

	return &LLMService{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// GenerateAnalysis sends the purchase-analysis prompt and returns the raw
// model text. Parsing and validation happen in the analysis service.
func (s *LLMService) GenerateAnalysis(ctx context.Context, prompt string) (string, error) {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generate analysis: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("generate analysis: no response from LLM")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

var scoreTokenRe = regexp.MustCompile(`0?\.\d+|[01](?:\.\d+)?`)

// JudgeRelevance asks the model to rate, from 0 to 1, how relevant an
// answer is to a question. Implements RelevanceJudge.
func (s *LLMService) JudgeRelevance(ctx context.Context, question, answer string) (float64, error) {
	prompt := fmt.Sprintf(`Rate how relevant the answer is to the question on a scale from 0 to 1.
Reply with a single number and nothing else.

Question: %s
Answer: %s`, question, answer)

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return 0, fmt.Errorf("judge relevance: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("judge relevance: no response from LLM")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	token := scoreTokenRe.FindString(content)
	if token == "" {
		return 0, fmt.Errorf("judge relevance: no score in response %q", content)
	}

	score, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("judge relevance: parse score: %w", err)
	}
	return clamp01(score), nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
