package dto

// UpdateProfileRequest is a partial-field merge; absent fields are left
// unchanged.
type UpdateProfileRequest struct {
	SavingsGoal       *float64  `json:"savings_goal"`
	MonthlyBudget     *float64  `json:"monthly_budget"`
	FinancialGoals    *[]string `json:"financial_goals"`
	SpendingThreshold *float64  `json:"spending_threshold"`
	CoolDownEnabled   *bool     `json:"cooldown_enabled"`
}

type ProfileResponse struct {
	ID                string   `json:"id"`
	SavingsGoal       *float64 `json:"savings_goal,omitempty"`
	MonthlyBudget     *float64 `json:"monthly_budget,omitempty"`
	FinancialGoals    []string `json:"financial_goals"`
	SpendingThreshold float64  `json:"spending_threshold"`
	CoolDownEnabled   bool     `json:"cooldown_enabled"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}
