package service

import (
	"context"
	"fmt"
	"time"

	"spendpause/internal/models"

	"go.uber.org/zap"
)

// DefaultSpendingThreshold is the purchase amount above which the extension
// triggers an analysis, until the user sets their own.
const DefaultSpendingThreshold = 20

// ProfileStore is the persistence contract for user profiles. Implemented
// by repository.ProfileRepository.
type ProfileStore interface {
	Create(ctx context.Context, p *models.UserProfile) error
	GetByID(ctx context.Context, id string) (*models.UserProfile, error)
	Update(ctx context.Context, p *models.UserProfile) error
}

// ProfileUpdate carries a partial-field merge; nil fields are left as they
// are.
type ProfileUpdate struct {
	SavingsGoal       *float64
	MonthlyBudget     *float64
	FinancialGoals    *[]string
	SpendingThreshold *float64
	CoolDownEnabled   *bool
}

// ProfileService creates profiles lazily on first sight of a user id and
// merges partial updates. Profiles are never deleted here.
type ProfileService struct {
	store  ProfileStore
	logger *zap.Logger
	now    func() time.Time
}

func NewProfileService(store ProfileStore, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// GetOrCreate returns the user's profile, creating a default one the first
// time the id is seen.
func (s *ProfileService) GetOrCreate(ctx context.Context, userID string) (*models.UserProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("get or create profile: empty user id")
	}

	profile, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	now := s.now()
	profile = &models.UserProfile{
		ID:                userID,
		FinancialGoals:    []string{},
		SpendingThreshold: DefaultSpendingThreshold,
		CoolDownEnabled:   true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.store.Create(ctx, profile); err != nil {
		return nil, err
	}

	// A concurrent GetOrCreate may have won the insert; read back the row
	// that actually landed.
	stored, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		profile = stored
	}

	s.logger.Info("User profile created", zap.String("user_id", userID))
	return profile, nil
}

// Update applies a partial-field merge to the user's profile, creating it
// first if needed.
func (s *ProfileService) Update(ctx context.Context, userID string, upd *ProfileUpdate) (*models.UserProfile, error) {
	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.SavingsGoal != nil {
		profile.SavingsGoal = upd.SavingsGoal
	}
	if upd.MonthlyBudget != nil {
		profile.MonthlyBudget = upd.MonthlyBudget
	}
	if upd.FinancialGoals != nil {
		profile.FinancialGoals = *upd.FinancialGoals
	}
	if upd.SpendingThreshold != nil {
		profile.SpendingThreshold = *upd.SpendingThreshold
	}
	if upd.CoolDownEnabled != nil {
		profile.CoolDownEnabled = *upd.CoolDownEnabled
	}
	profile.UpdatedAt = s.now()

	if err := s.store.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
