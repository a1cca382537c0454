package models

import "time"

// UserProfile holds per-user spending preferences. Profiles are created
// lazily the first time a user identifier is seen and updated via
// partial-field merge; this service never deletes them.
type UserProfile struct {
	ID                string    `db:"id"`
	SavingsGoal       *float64  `db:"savings_goal"`
	MonthlyBudget     *float64  `db:"monthly_budget"`
	FinancialGoals    []string  `db:"financial_goals"`
	SpendingThreshold float64   `db:"spending_threshold"`
	CoolDownEnabled   bool      `db:"cooldown_enabled"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}
