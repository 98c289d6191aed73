package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/internal/common"
	"github.com/DhavalSuthar-24/tourney/internal/tournament"
	"github.com/DhavalSuthar-24/tourney/internal/user"
	"github.com/DhavalSuthar-24/tourney/pkg/password"
)

// Password is the plain text password of every fixture user.
const Password = "secret123"

var seq atomic.Int64

func CreateUser(t *testing.T, db *gorm.DB, role common.Role) *user.User {
	t.Helper()

	hashed, err := password.Hash(Password)
	require.NoError(t, err)

	n := seq.Add(1)
	u := &user.User{
		Email:    fmt.Sprintf("%s-%d@example.com", role, n),
		Password: hashed,
		Role:     role,
	}
	require.NoError(t, user.NewRepository(db).Create(u))
	return u
}

// TournamentOption adjusts a fixture tournament before it is stored.
type TournamentOption func(*tournament.Tournament)

func WithStatus(s tournament.Status) TournamentOption {
	return func(t *tournament.Tournament) { t.Status = s }
}

func WithMaxParticipants(n int) TournamentOption {
	return func(t *tournament.Tournament) { t.MaxParticipants = n }
}

func WithEntryFee(fee string) TournamentOption {
	return func(t *tournament.Tournament) { t.EntryFee = decimal.RequireFromString(fee) }
}

// CreateTournament stores a tournament open for registration with ten slots
// and a 500.00 entry fee unless the options say otherwise.
func CreateTournament(t *testing.T, db *gorm.DB, organizer *user.User, opts ...TournamentOption) *tournament.Tournament {
	t.Helper()

	n := seq.Add(1)
	tr := &tournament.Tournament{
		Title:           fmt.Sprintf("Cup %d", n),
		Slug:            fmt.Sprintf("cup-%d", n),
		Game:            "Valorant",
		EntryFee:        decimal.RequireFromString("500"),
		PrizePool:       decimal.RequireFromString("10000"),
		MaxParticipants: 10,
		Status:          tournament.StatusRegistration,
		OrganizerID:     organizer.ID,
	}
	for _, opt := range opts {
		opt(tr)
	}
	require.NoError(t, tournament.NewRepository(db).Create(tr))
	return tr
}

// Reload fetches the current row of a tournament.
func Reload(t *testing.T, db *gorm.DB, id uint) *tournament.Tournament {
	t.Helper()

	tr, err := tournament.NewRepository(db).GetByID(id)
	require.NoError(t, err)
	return tr
}

// Count returns the number of live rows of model.
func Count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
