package handlers

import (
	"errors"
	"time"

	"spendpause/internal/dto"
	"spendpause/internal/models"
	"spendpause/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CoolDownHandler struct {
	coolDownService *service.CoolDownService
	profileService  *service.ProfileService
	logger          *zap.Logger
}

func NewCoolDownHandler(
	coolDownService *service.CoolDownService,
	profileService *service.ProfileService,
	logger *zap.Logger,
) *CoolDownHandler {
	return &CoolDownHandler{
		coolDownService: coolDownService,
		profileService:  profileService,
		logger:          logger,
	}
}

// Start godoc
// @Summary Start a 24h cool-down for a product
// @Tags cooldowns
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.StartCoolDownRequest true "Product and analysis to snapshot"
// @Success 201 {object} dto.CoolDownResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/cooldowns [post]
func (h *CoolDownHandler) Start(c *fiber.Ctx) error {
	var req dto.StartCoolDownRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	userID := c.Locals("userID").(string)

	// A cool-down without a resolvable profile is an invariant violation,
	// not something to paper over with a partial record.
	if _, err := h.profileService.GetOrCreate(c.Context(), userID); err != nil {
		h.logger.Error("Failed to resolve user profile", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve user profile",
		})
	}

	cd, err := h.coolDownService.Start(c.Context(), userID, &req.Product, &req.Analysis)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCoolDown) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "A valid product and analysis are required",
			})
		}
		h.logger.Error("Failed to start cool-down", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to start cool-down",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(h.toResponse(cd))
}

// Check godoc
// @Summary Check whether a product URL is on cool-down
// @Tags cooldowns
// @Produce json
// @Security Bearer
// @Param url query string true "Product URL"
// @Success 200 {object} dto.CoolDownCheckResponse
// @Router /api/v1/cooldowns/check [get]
func (h *CoolDownHandler) Check(c *fiber.Ctx) error {
	productURL := c.Query("url")
	if productURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter 'url' is required",
		})
	}

	userID := c.Locals("userID").(string)
	cd, err := h.coolDownService.Check(c.Context(), userID, productURL)
	if err != nil {
		h.logger.Error("Cool-down check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cool-down check failed",
		})
	}

	resp := dto.CoolDownCheckResponse{OnCoolDown: cd != nil}
	if cd != nil {
		full := h.toResponse(cd)
		resp.CoolDown = &full
	}
	return c.JSON(resp)
}

// ListActive godoc
// @Summary List active cool-downs, soonest expiry first
// @Tags cooldowns
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.CoolDownListResponse
// @Router /api/v1/cooldowns/active [get]
func (h *CoolDownHandler) ListActive(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	coolDowns, err := h.coolDownService.GetActive(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list active cool-downs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list cool-downs",
		})
	}
	return c.JSON(h.toListResponse(coolDowns))
}

// ListExpired godoc
// @Summary List expired cool-downs, most recent first
// @Tags cooldowns
// @Produce json
// @Security Bearer
// @Param limit query int false "Maximum number of records" default(10)
// @Success 200 {object} dto.CoolDownListResponse
// @Router /api/v1/cooldowns/expired [get]
func (h *CoolDownHandler) ListExpired(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	limit := c.QueryInt("limit", 10)
	if limit < 0 {
		limit = 10
	}

	coolDowns, err := h.coolDownService.GetExpired(c.Context(), userID, uint64(limit))
	if err != nil {
		h.logger.Error("Failed to list expired cool-downs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list cool-downs",
		})
	}
	return c.JSON(h.toListResponse(coolDowns))
}

// Cancel godoc
// @Summary Cancel a cool-down
// @Tags cooldowns
// @Produce json
// @Security Bearer
// @Param id path string true "Cool-down ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/cooldowns/{id}/cancel [post]
func (h *CoolDownHandler) Cancel(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid cool-down id",
		})
	}

	userID := c.Locals("userID").(string)
	if err := h.coolDownService.Cancel(c.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrCoolDownNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Cool-down not found",
			})
		}
		h.logger.Error("Failed to cancel cool-down", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to cancel cool-down",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CoolDownHandler) toResponse(cd *models.CoolDown) dto.CoolDownResponse {
	return dto.CoolDownResponse{
		ID:            cd.ID.String(),
		ProductURL:    cd.ProductURL,
		Status:        string(cd.Status),
		StartedAt:     cd.StartedAt.Format(time.RFC3339),
		ExpiresAt:     cd.ExpiresAt.Format(time.RFC3339),
		RemainingMS:   h.coolDownService.RemainingTime(cd),
		RemainingText: h.coolDownService.FormatRemainingTime(cd),
		Product:       cd.ProductInfo,
		Analysis:      cd.AnalysisResult,
	}
}

func (h *CoolDownHandler) toListResponse(coolDowns []*models.CoolDown) dto.CoolDownListResponse {
	resp := dto.CoolDownListResponse{CoolDowns: make([]dto.CoolDownResponse, 0, len(coolDowns))}
	for _, cd := range coolDowns {
		resp.CoolDowns = append(resp.CoolDowns, h.toResponse(cd))
	}
	return resp
}
