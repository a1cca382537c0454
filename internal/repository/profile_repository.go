package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"spendpause/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var profileColumns = []string{
	"id", "savings_goal", "monthly_budget", "financial_goals",
	"spending_threshold", "cooldown_enabled", "created_at", "updated_at",
}

type ProfileRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProfileRepository(db *pgxpool.Pool, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a profile, ignoring the insert when one already exists for
// the same id. Lets get-or-create race safely without a transaction.
func (r *ProfileRepository) Create(ctx context.Context, p *models.UserProfile) error {
	goalsJSON, err := json.Marshal(p.FinancialGoals)
	if err != nil {
		return fmt.Errorf("create profile: marshal goals: %w", err)
	}

	query := squirrel.Insert("user_profiles").
		Columns(profileColumns...).
		Values(p.ID, p.SavingsGoal, p.MonthlyBudget, goalsJSON, p.SpendingThreshold, p.CoolDownEnabled, p.CreatedAt, p.UpdatedAt).
		Suffix("ON CONFLICT (id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// GetByID returns the profile for a user id, or nil when none exists.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	query := squirrel.Select(profileColumns...).
		From("user_profiles").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var (
		p         models.UserProfile
		goalsJSON []byte
	)
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.SavingsGoal, &p.MonthlyBudget, &goalsJSON,
		&p.SpendingThreshold, &p.CoolDownEnabled, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if err := json.Unmarshal(goalsJSON, &p.FinancialGoals); err != nil {
		return nil, fmt.Errorf("get profile: decode goals: %w", err)
	}
	return &p, nil
}

// Update overwrites the mutable profile fields.
func (r *ProfileRepository) Update(ctx context.Context, p *models.UserProfile) error {
	goalsJSON, err := json.Marshal(p.FinancialGoals)
	if err != nil {
		return fmt.Errorf("update profile: marshal goals: %w", err)
	}

	query := squirrel.Update("user_profiles").
		Set("savings_goal", p.SavingsGoal).
		Set("monthly_budget", p.MonthlyBudget).
		Set("financial_goals", goalsJSON).
		Set("spending_threshold", p.SpendingThreshold).
		Set("cooldown_enabled", p.CoolDownEnabled).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
