package main

import (
	"context"
	"log"
	"time"

	"spendpause/internal/models"
	"spendpause/internal/repository"
	"spendpause/pkg/auth"
	"spendpause/pkg/config"
	"spendpause/pkg/logger"
	"spendpause/pkg/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// schema creates the tables this service owns. The (user_id, product_url,
// status) index on cool_downs is NOT unique: the store does not prevent two
// concurrent Start calls from creating duplicate active cool-downs, and the
// cool-down manager surfaces that gap to callers instead of hiding it.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    username TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS user_profiles (
    id TEXT PRIMARY KEY,
    savings_goal DOUBLE PRECISION,
    monthly_budget DOUBLE PRECISION,
    financial_goals JSONB NOT NULL DEFAULT '[]',
    spending_threshold DOUBLE PRECISION NOT NULL DEFAULT 20,
    cooldown_enabled BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS cool_downs (
    id UUID PRIMARY KEY,
    user_id TEXT NOT NULL,
    product_url TEXT NOT NULL,
    product_info JSONB NOT NULL,
    analysis_result JSONB NOT NULL,
    started_at TIMESTAMPTZ NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL,
    status TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cool_downs_user_status
    ON cool_downs (user_id, status, expires_at);
CREATE INDEX IF NOT EXISTS idx_cool_downs_user_url
    ON cool_downs (user_id, product_url, status);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Creating schema...")
	if _, err := db.Exec(ctx, schema); err != nil {
		appLogger.Fatal("Failed to create schema", zap.Error(err))
	}

	if err := seedDemoUser(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to seed demo user", zap.Error(err))
	}

	appLogger.Info("Database seeding completed")
}

// seedDemoUser creates a demo account with a filled-in profile so the
// extension can be exercised against a fresh database.
func seedDemoUser(ctx context.Context, db *pgxpool.Pool, appLogger *zap.Logger) error {
	userRepo := repository.NewUserRepository(db, appLogger)
	profileRepo := repository.NewProfileRepository(db, appLogger)

	existing, err := userRepo.GetByEmail(ctx, "demo@spendpause.dev")
	if err != nil {
		return err
	}
	if existing != nil {
		appLogger.Info("Demo user already present, skipping")
		return nil
	}

	hash, err := auth.HashPassword("demo-password")
	if err != nil {
		return err
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New(),
		Username:     "demo",
		Email:        "demo@spendpause.dev",
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return err
	}

	savingsGoal := 5000.0
	monthlyBudget := 400.0
	profile := &models.UserProfile{
		ID:                user.ID.String(),
		SavingsGoal:       &savingsGoal,
		MonthlyBudget:     &monthlyBudget,
		FinancialGoals:    []string{"Build a 6-month emergency fund", "Save for a house deposit"},
		SpendingThreshold: 20,
		CoolDownEnabled:   true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := profileRepo.Create(ctx, profile); err != nil {
		return err
	}

	appLogger.Info("Demo user seeded", zap.String("user_id", user.ID.String()))
	return nil
}
