package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"spendpause/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var coolDownColumns = []string{
	"id", "user_id", "product_url", "product_info", "analysis_result",
	"started_at", "expires_at", "status",
}

type CoolDownRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCoolDownRepository(db *pgxpool.Pool, logger *zap.Logger) *CoolDownRepository {
	return &CoolDownRepository{
		db:     db,
		logger: logger,
	}
}

func (r *CoolDownRepository) Create(ctx context.Context, cd *models.CoolDown) error {
	productJSON, err := json.Marshal(cd.ProductInfo)
	if err != nil {
		return fmt.Errorf("create cool-down: marshal product snapshot: %w", err)
	}
	resultJSON, err := json.Marshal(cd.AnalysisResult)
	if err != nil {
		return fmt.Errorf("create cool-down: marshal analysis snapshot: %w", err)
	}

	query := squirrel.Insert("cool_downs").
		Columns(coolDownColumns...).
		Values(cd.ID, cd.UserID, cd.ProductURL, productJSON, resultJSON, cd.StartedAt, cd.ExpiresAt, cd.Status).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("create cool-down: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("create cool-down: %w", err)
	}
	return nil
}

func (r *CoolDownRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CoolDown, error) {
	query := squirrel.Select(coolDownColumns...).
		From("cool_downs").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("get cool-down: %w", err)
	}

	cd, err := scanCoolDown(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cool-down: %w", err)
	}
	return cd, nil
}

// GetActiveByUserAndURL returns the active cool-down for a (user, url) pair,
// or nil when none exists. Callers must run ExpireStale first so a past-due
// record cannot be misreported as active.
func (r *CoolDownRepository) GetActiveByUserAndURL(ctx context.Context, userID, productURL string) (*models.CoolDown, error) {
	query := squirrel.Select(coolDownColumns...).
		From("cool_downs").
		Where(squirrel.Eq{
			"user_id":     userID,
			"product_url": productURL,
			"status":      models.CoolDownStatusActive,
		}).
		OrderBy("expires_at ASC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("check cool-down: %w", err)
	}

	cd, err := scanCoolDown(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("check cool-down: %w", err)
	}
	return cd, nil
}

// ListByUserAndStatus lists a user's cool-downs in one status, ordered by
// expires_at. A zero limit means no limit.
func (r *CoolDownRepository) ListByUserAndStatus(
	ctx context.Context,
	userID string,
	status models.CoolDownStatus,
	descending bool,
	limit uint64,
) ([]*models.CoolDown, error) {
	order := "expires_at ASC"
	if descending {
		order = "expires_at DESC"
	}

	query := squirrel.Select(coolDownColumns...).
		From("cool_downs").
		Where(squirrel.Eq{"user_id": userID, "status": status}).
		OrderBy(order).
		PlaceholderFormat(squirrel.Dollar)
	if limit > 0 {
		query = query.Limit(limit)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("list cool-downs: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list cool-downs: %w", err)
	}
	defer rows.Close()

	var coolDowns []*models.CoolDown
	for rows.Next() {
		cd, err := scanCoolDown(rows)
		if err != nil {
			return nil, fmt.Errorf("list cool-downs: %w", err)
		}
		coolDowns = append(coolDowns, cd)
	}
	return coolDowns, rows.Err()
}

// UpdateStatus sets a cool-down's status unconditionally and reports whether
// a row was updated.
func (r *CoolDownRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.CoolDownStatus) (bool, error) {
	query := squirrel.Update("cool_downs").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("update cool-down status: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("update cool-down status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ExpireStale transitions every active cool-down whose deadline has passed
// to expired. Cancelled and already-expired records are never touched, so
// repeated sweeps are idempotent.
func (r *CoolDownRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	query := squirrel.Update("cool_downs").
		Set("status", models.CoolDownStatusExpired).
		Where(squirrel.Eq{"status": models.CoolDownStatusActive}).
		Where(squirrel.Lt{"expires_at": now}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("expire stale cool-downs: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("expire stale cool-downs: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanCoolDown(row pgx.Row) (*models.CoolDown, error) {
	var (
		cd          models.CoolDown
		productJSON []byte
		resultJSON  []byte
	)
	if err := row.Scan(
		&cd.ID, &cd.UserID, &cd.ProductURL, &productJSON, &resultJSON,
		&cd.StartedAt, &cd.ExpiresAt, &cd.Status,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(productJSON, &cd.ProductInfo); err != nil {
		return nil, fmt.Errorf("decode product snapshot: %w", err)
	}
	if err := json.Unmarshal(resultJSON, &cd.AnalysisResult); err != nil {
		return nil, fmt.Errorf("decode analysis snapshot: %w", err)
	}
	return &cd, nil
}
