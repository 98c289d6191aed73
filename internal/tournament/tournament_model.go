package tournament

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/internal/user"
)

type Status string

const (
	StatusDraft        Status = "DRAFT"
	StatusRegistration Status = "REGISTRATION"
	StatusLive         Status = "LIVE"
	StatusCompleted    Status = "COMPLETED"
)

// ParseStatus accepts any casing of the four tournament statuses.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusDraft, StatusRegistration, StatusLive, StatusCompleted:
		return st, true
	}
	return "", false
}

const DefaultMaxParticipants = 100

type Tournament struct {
	gorm.Model
	Title             string          `gorm:"size:200;not null" json:"title"`
	Slug              string          `gorm:"size:220;not null;uniqueIndex:idx_tournament_organizer_slug,priority:2" json:"slug"`
	Description       string          `gorm:"type:text" json:"description"`
	Game              string          `gorm:"size:100;not null" json:"game"`
	EntryFee          decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"entryFee"`
	PrizePool         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"prizePool"`
	MaxParticipants   int             `gorm:"not null;default:100" json:"maxParticipants"`
	RegistrationCount int             `gorm:"not null;default:0" json:"registrationCount"`
	Status            Status          `gorm:"size:16;not null;default:DRAFT;index" json:"status"`
	OrganizerID       uint            `gorm:"not null;uniqueIndex:idx_tournament_organizer_slug,priority:1" json:"organizerId"`
}

// IsOpen reports whether the tournament accepts registrations.
func (t *Tournament) IsOpen() bool {
	return t.Status == StatusRegistration
}

// HasCapacity reports whether at least one slot is left.
func (t *Tournament) HasCapacity() bool {
	return t.RegistrationCount < t.MaxParticipants
}

// RequiresPayment reports whether joining needs a checkout.
func (t *Tournament) RequiresPayment() bool {
	return t.EntryFee.IsPositive()
}

// Entrant is a registration as seen from the tournament side.
type Entrant struct {
	RegistrationID uint         `json:"registrationId"`
	RegisteredAt   time.Time    `json:"registeredAt"`
	User           user.Profile `json:"user"`
}

// WithEntrants is a tournament together with its registrations.
type WithEntrants struct {
	Tournament
	Registrations []Entrant `json:"registrations"`
}
