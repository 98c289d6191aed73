package revenue

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payer struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type TournamentRef struct {
	ID       uint            `json:"id"`
	Title    string          `json:"title"`
	Game     string          `json:"game"`
	EntryFee decimal.Decimal `json:"entryFee"`
}

// PaymentLine is one settled payment in a revenue view.
type PaymentLine struct {
	ID              uint            `json:"id"`
	StripeSessionID string          `json:"stripeSessionId"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	TournamentID    uint            `json:"tournamentId"`
	CreatedAt       time.Time       `json:"createdAt"`
	User            *Payer          `json:"user,omitempty"`
	Tournament      *TournamentRef  `json:"tournament,omitempty"`
}

type TournamentRevenue struct {
	TournamentID  uint            `json:"tournamentId"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalPayments int             `json:"totalPayments"`
	Payments      []PaymentLine   `json:"payments"`
}

type Dashboard struct {
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalTournaments int             `json:"totalTournaments"`
	TotalPayments    int             `json:"totalPayments"`
	TotalPlayers     int             `json:"totalPlayers"`
	RecentPayments   []PaymentLine   `json:"recentPayments"`
	Payments         []PaymentLine   `json:"payments"`
}

type History struct {
	TotalSpent    decimal.Decimal `json:"totalSpent"`
	TotalPayments int             `json:"totalPayments"`
	Payments      []PaymentLine   `json:"payments"`
}
