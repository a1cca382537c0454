package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spendpause/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CoolDownDuration is the fixed length of a deferral period.
const CoolDownDuration = 24 * time.Hour

const defaultExpiredLimit = 10

var (
	ErrCoolDownNotFound = errors.New("cool-down not found")
	ErrInvalidCoolDown  = errors.New("cool-down requires a user and a valid product")
)

// CoolDownStore is the persistence contract the manager needs. Implemented
// by repository.CoolDownRepository; tests substitute an in-memory fake.
type CoolDownStore interface {
	Create(ctx context.Context, cd *models.CoolDown) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CoolDown, error)
	GetActiveByUserAndURL(ctx context.Context, userID, productURL string) (*models.CoolDown, error)
	ListByUserAndStatus(ctx context.Context, userID string, status models.CoolDownStatus, descending bool, limit uint64) ([]*models.CoolDown, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.CoolDownStatus) (bool, error)
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// CoolDownService owns the create/check/cancel/list lifecycle of deferral
// periods. Expiry is lazy: every read path sweeps stale active records to
// expired before looking anything up, so no background timer is needed.
//
// Two simultaneous Start calls for the same (user, url) pair can create
// duplicate active cool-downs unless the store enforces a uniqueness
// constraint; that gap is the caller's to close, not silently resolved here.
type CoolDownService struct {
	store  CoolDownStore
	logger *zap.Logger
	now    func() time.Time
}

func NewCoolDownService(store CoolDownStore, logger *zap.Logger) *CoolDownService {
	return &CoolDownService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Start creates an active cool-down expiring 24h from now, storing owned
// snapshots of the product and analysis result. Later changes to the live
// listing must not alter a stored cool-down.
func (s *CoolDownService) Start(
	ctx context.Context,
	userID string,
	product *models.ProductRecord,
	result *models.AnalysisResult,
) (*models.CoolDown, error) {
	if userID == "" || !ValidateProduct(product) || result == nil {
		return nil, ErrInvalidCoolDown
	}

	now := s.now()
	cd := &models.CoolDown{
		ID:             uuid.New(),
		UserID:         userID,
		ProductURL:     product.URL,
		ProductInfo:    cloneProduct(product),
		AnalysisResult: cloneAnalysisResult(result),
		StartedAt:      now,
		ExpiresAt:      now.Add(CoolDownDuration),
		Status:         models.CoolDownStatusActive,
	}

	if err := s.store.Create(ctx, cd); err != nil {
		return nil, fmt.Errorf("start cool-down: %w", err)
	}

	s.logger.Info("Cool-down started",
		zap.String("cooldown_id", cd.ID.String()),
		zap.String("user_id", userID),
		zap.Time("expires_at", cd.ExpiresAt),
	)
	return cd, nil
}

// Check returns the active cool-down for a (user, url) pair after sweeping
// stale records, or nil when none is active.
func (s *CoolDownService) Check(ctx context.Context, userID, productURL string) (*models.CoolDown, error) {
	if err := s.sweep(ctx); err != nil {
		return nil, err
	}
	cd, err := s.store.GetActiveByUserAndURL(ctx, userID, productURL)
	if err != nil {
		return nil, fmt.Errorf("check cool-down: %w", err)
	}
	return cd, nil
}

// GetActive lists a user's active cool-downs ordered by soonest expiry,
// sweeping stale records first.
func (s *CoolDownService) GetActive(ctx context.Context, userID string) ([]*models.CoolDown, error) {
	if err := s.sweep(ctx); err != nil {
		return nil, err
	}
	coolDowns, err := s.store.ListByUserAndStatus(ctx, userID, models.CoolDownStatusActive, false, 0)
	if err != nil {
		return nil, fmt.Errorf("list active cool-downs: %w", err)
	}
	return coolDowns, nil
}

// GetExpired lists a user's expired cool-downs, most recently expired first.
func (s *CoolDownService) GetExpired(ctx context.Context, userID string, limit uint64) ([]*models.CoolDown, error) {
	if limit == 0 {
		limit = defaultExpiredLimit
	}
	if err := s.sweep(ctx); err != nil {
		return nil, err
	}
	coolDowns, err := s.store.ListByUserAndStatus(ctx, userID, models.CoolDownStatusExpired, true, limit)
	if err != nil {
		return nil, fmt.Errorf("list expired cool-downs: %w", err)
	}
	return coolDowns, nil
}

// Cancel marks one of the user's cool-downs cancelled without checking its
// current status. Cancellation is terminal; cancelling an already-expired
// record just marks it cancelled. A record owned by a different user is
// reported as not found, never as forbidden, so ids cannot be probed.
func (s *CoolDownService) Cancel(ctx context.Context, userID string, id uuid.UUID) error {
	cd, err := s.store.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("cancel cool-down: %w", err)
	}
	if cd == nil || cd.UserID != userID {
		return ErrCoolDownNotFound
	}

	updated, err := s.store.UpdateStatus(ctx, id, models.CoolDownStatusCancelled)
	if err != nil {
		return fmt.Errorf("cancel cool-down: %w", err)
	}
	if !updated {
		return ErrCoolDownNotFound
	}
	return nil
}

// RemainingTime returns the time left on a cool-down in milliseconds,
// never negative.
func (s *CoolDownService) RemainingTime(cd *models.CoolDown) int64 {
	return RemainingTime(cd, s.now())
}

// FormatRemainingTime renders the time left as "Xh Ym remaining",
// "Ym remaining", or "Expired".
func (s *CoolDownService) FormatRemainingTime(cd *models.CoolDown) string {
	return FormatRemainingTime(cd, s.now())
}

func (s *CoolDownService) sweep(ctx context.Context) error {
	count, err := s.store.ExpireStale(ctx, s.now())
	if err != nil {
		return fmt.Errorf("expiry sweep: %w", err)
	}
	if count > 0 {
		s.logger.Info("Expired stale cool-downs", zap.Int64("count", count))
	}
	return nil
}

// RemainingTime is max(0, expiresAt - now) in milliseconds.
func RemainingTime(cd *models.CoolDown, now time.Time) int64 {
	remaining := cd.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining.Milliseconds()
}

func FormatRemainingTime(cd *models.CoolDown, now time.Time) string {
	remaining := cd.ExpiresAt.Sub(now)
	if remaining <= 0 {
		return "Expired"
	}

	hours := int(remaining.Hours())
	minutes := int(remaining.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm remaining", hours, minutes)
	}
	return fmt.Sprintf("%dm remaining", minutes)
}

func cloneProduct(p *models.ProductRecord) models.ProductRecord {
	snapshot := *p
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		snapshot.OriginalPrice = &op
	}
	snapshot.UrgencyIndicators = make([]string, len(p.UrgencyIndicators))
	copy(snapshot.UrgencyIndicators, p.UrgencyIndicators)
	return snapshot
}

func cloneAnalysisResult(r *models.AnalysisResult) models.AnalysisResult {
	snapshot := *r
	snapshot.Warnings = make([]models.PricingWarning, len(r.Warnings))
	copy(snapshot.Warnings, r.Warnings)
	return snapshot
}
