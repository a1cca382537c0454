package models

import (
	"time"

	"github.com/google/uuid"
)

type CoolDownStatus string

const (
	CoolDownStatusActive    CoolDownStatus = "active"
	CoolDownStatusExpired   CoolDownStatus = "expired"
	CoolDownStatusCancelled CoolDownStatus = "cancelled"
)

// CoolDown is a 24h deferral period attached to a (user, product URL) pair.
// Status moves active->expired lazily the first time a read observes the
// deadline passed, and active->cancelled on explicit user cancellation.
// Cancelled and expired are terminal. ProductInfo and AnalysisResult are
// owned snapshots, not references to live data.
type CoolDown struct {
	ID             uuid.UUID      `db:"id"`
	UserID         string         `db:"user_id"`
	ProductURL     string         `db:"product_url"`
	ProductInfo    ProductRecord  `db:"product_info"`
	AnalysisResult AnalysisResult `db:"analysis_result"`
	StartedAt      time.Time      `db:"started_at"`
	ExpiresAt      time.Time      `db:"expires_at"`
	Status         CoolDownStatus `db:"status"`
}
