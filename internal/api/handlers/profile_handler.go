package handlers

import (
	"time"

	"spendpause/internal/dto"
	"spendpause/internal/models"
	"spendpause/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	logger         *zap.Logger
}

func NewProfileHandler(profileService *service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// Get godoc
// @Summary Get the caller's profile, creating a default one if needed
// @Tags profile
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ProfileResponse
// @Router /api/v1/profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	profile, err := h.profileService.GetOrCreate(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load profile", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load profile",
		})
	}
	return c.JSON(toProfileResponse(profile))
}

// Update godoc
// @Summary Merge partial updates into the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/profile [patch]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	userID := c.Locals("userID").(string)
	profile, err := h.profileService.Update(c.Context(), userID, &service.ProfileUpdate{
		SavingsGoal:       req.SavingsGoal,
		MonthlyBudget:     req.MonthlyBudget,
		FinancialGoals:    req.FinancialGoals,
		SpendingThreshold: req.SpendingThreshold,
		CoolDownEnabled:   req.CoolDownEnabled,
	})
	if err != nil {
		h.logger.Error("Failed to update profile", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}
	return c.JSON(toProfileResponse(profile))
}

func toProfileResponse(p *models.UserProfile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:                p.ID,
		SavingsGoal:       p.SavingsGoal,
		MonthlyBudget:     p.MonthlyBudget,
		FinancialGoals:    p.FinancialGoals,
		SpendingThreshold: p.SpendingThreshold,
		CoolDownEnabled:   p.CoolDownEnabled,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         p.UpdatedAt.Format(time.RFC3339),
	}
}
