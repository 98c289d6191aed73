package payment

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/internal/tournament"
	"github.com/DhavalSuthar-24/tourney/internal/user"
)

type Status string

const StatusSuccess Status = "SUCCESS"

// Payment is a settled checkout. The Stripe session id is the idempotency
// key: one session produces at most one row.
type Payment struct {
	gorm.Model
	StripeSessionID       string                 `gorm:"size:255;not null;uniqueIndex" json:"stripeSessionId"`
	StripePaymentIntentID string                 `gorm:"size:255" json:"stripePaymentIntentId"`
	Amount                decimal.Decimal        `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency              string                 `gorm:"size:3;not null" json:"currency"`
	Status                Status                 `gorm:"size:16;not null;index" json:"status"`
	UserID                uint                   `gorm:"not null;index" json:"userId"`
	TournamentID          uint                   `gorm:"not null;index" json:"tournamentId"`
	User                  *user.User             `json:"-"`
	Tournament            *tournament.Tournament `json:"-"`
}

type Outcome string

const (
	OutcomeSettled   Outcome = "SETTLED"
	OutcomeDuplicate Outcome = "DUPLICATE"
	OutcomeRejected  Outcome = "REJECTED"
	OutcomeIgnored   Outcome = "IGNORED"
	OutcomeFailed    Outcome = "FAILED"
)

// WebhookDelivery records one verified webhook delivery and what the
// reconciler did with it. It is an audit trail and is never read back to
// decide an outcome.
type WebhookDelivery struct {
	gorm.Model
	EventID     string         `gorm:"size:255;index" json:"eventId"`
	EventType   string         `gorm:"size:100;index" json:"eventType"`
	SessionID   string         `gorm:"size:255;index" json:"sessionId"`
	Outcome     Outcome        `gorm:"size:16;not null;index" json:"outcome"`
	Reason      string         `gorm:"type:text" json:"reason"`
	Payload     datatypes.JSON `json:"payload"`
	ProcessedAt time.Time      `gorm:"not null;index" json:"processedAt"`
}
