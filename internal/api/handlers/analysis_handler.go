package handlers

import (
	"net/url"
	"time"

	"spendpause/internal/dto"
	"spendpause/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalysisHandler struct {
	analysisService   *service.AnalysisService
	profileService    *service.ProfileService
	evaluationService *service.EvaluationService
	traceService      *service.TraceService
	logger            *zap.Logger
}

func NewAnalysisHandler(
	analysisService *service.AnalysisService,
	profileService *service.ProfileService,
	evaluationService *service.EvaluationService,
	traceService *service.TraceService,
	logger *zap.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService:   analysisService,
		profileService:    profileService,
		evaluationService: evaluationService,
		traceService:      traceService,
		logger:            logger,
	}
}

// Analyze godoc
// @Summary Analyze a scraped product page before purchase
// @Tags analysis
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.AnalyzeRequest true "Raw scraped product fields"
// @Success 200 {object} dto.AnalyzeResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/analysis [post]
func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	started := time.Now()

	var req dto.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	product := service.ExtractProductFromData(service.RawProductData{
		Name:              req.Name,
		PriceText:         req.PriceText,
		OriginalPriceText: req.OriginalPriceText,
		URL:               req.URL,
		Category:          req.Category,
		UrgencyCandidates: req.UrgencyCandidates,
	})
	if product == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Could not extract a product from the provided fields",
		})
	}

	userID := c.Locals("userID").(string)
	profile, err := h.profileService.GetOrCreate(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to resolve user profile", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve user profile",
		})
	}

	analysis, err := h.analysisService.Analyze(c.Context(), product, profile)
	if err != nil {
		h.logger.Error("Analysis failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Analysis failed",
		})
	}

	// Quality monitoring is best-effort and must never fail the request.
	scores := h.evaluationService.EvaluateIntervention(c.Context(), product, analysis, profile)
	h.traceService.RecordEvaluation(c.Context(), &service.TraceEvent{
		UserID:          userID,
		ProductName:     product.Name,
		ProductURL:      product.URL,
		SuggestedAction: analysis.SuggestedAction,
		Scores:          *scores,
		LatencyMS:       time.Since(started).Milliseconds(),
		CreatedAt:       time.Now(),
	})

	return c.JSON(dto.AnalyzeResponse{
		Product:  *product,
		Analysis: *analysis,
		Site:     service.DetectSite(hostnameOf(product.URL)),
	})
}

func hostnameOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
