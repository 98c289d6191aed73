package payment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/internal/common"
	"github.com/DhavalSuthar-24/tourney/internal/payment"
	"github.com/DhavalSuthar-24/tourney/internal/registration"
	"github.com/DhavalSuthar-24/tourney/internal/testutil"
	"github.com/DhavalSuthar-24/tourney/internal/tournament"
)

var checkoutCfg = payment.CheckoutConfig{
	Currency:   "inr",
	SuccessURL: "http://localhost:3000/success",
	CancelURL:  "http://localhost:3000/cancel",
}

func newCheckout(db *gorm.DB, provider payment.Provider) *payment.CheckoutService {
	registrations := registration.NewService(db, registration.NewRepository(db), tournament.NewRepository(db), zap.NewNop())
	return payment.NewCheckoutService(registrations, provider, checkoutCfg, zap.NewNop())
}

func TestCheckoutService_CreateSession(t *testing.T) {
	db := testutil.NewDB(t)
	provider := &fakeProvider{}
	organizer := testutil.CreateUser(t, db, common.RoleOrganizer)
	player := testutil.CreateUser(t, db, common.RolePlayer)
	tr := testutil.CreateTournament(t, db, organizer, testutil.WithEntryFee("499.50"))

	session, err := newCheckout(db, provider).CreateSession(context.Background(), player.Identity(), tr.ID)
	require.NoError(t, err)
	assert.Equal(t, "cs_fake", session.ID)
	assert.NotEmpty(t, session.URL)

	calls := provider.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, payment.CheckoutRequest{
		TournamentID: tr.ID,
		UserID:       player.ID,
		ProductName:  tr.Title,
		UnitAmount:   49950,
		Currency:     "inr",
		SuccessURL:   checkoutCfg.SuccessURL,
		CancelURL:    checkoutCfg.CancelURL,
	}, calls[0])

	// Nothing is committed until the webhook arrives.
	assert.Zero(t, testutil.Count(t, db, &payment.Payment{}))
	assert.Zero(t, testutil.Count(t, db, &registration.Registration{}))
	assert.Equal(t, 0, testutil.Reload(t, db, tr.ID).RegistrationCount)
}

func TestCheckoutService_IneligibleCallerNeverReachesProvider(t *testing.T) {
	db := testutil.NewDB(t)
	organizer := testutil.CreateUser(t, db, common.RoleOrganizer)
	player := testutil.CreateUser(t, db, common.RolePlayer)
	registered := testutil.CreateUser(t, db, common.RolePlayer)

	open := testutil.CreateTournament(t, db, organizer)
	draft := testutil.CreateTournament(t, db, organizer, testutil.WithStatus(tournament.StatusDraft))
	full := testutil.CreateTournament(t, db, organizer, testutil.WithMaxParticipants(1))
	require.NoError(t, tournament.NewRepository(db).ClaimSlot(full.ID))
	require.NoError(t, registration.NewRepository(db).Create(&registration.Registration{UserID: registered.ID, TournamentID: open.ID}))

	tests := []struct {
		name         string
		caller       common.Identity
		tournamentID uint
		wantErr      error
	}{
		{"organizer", organizer.Identity(), open.ID, registration.ErrNotPlayer},
		{"unknown tournament", player.Identity(), 9999, tournament.ErrNotFound},
		{"draft", player.Identity(), draft.ID, registration.ErrRegistrationClosed},
		{"already registered", registered.Identity(), open.ID, registration.ErrAlreadyRegistered},
		{"full", player.Identity(), full.ID, registration.ErrTournamentFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{}
			_, err := newCheckout(db, provider).CreateSession(context.Background(), tt.caller, tt.tournamentID)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, provider.calls())
		})
	}
}

func TestCheckoutService_ProviderFailure(t *testing.T) {
	db := testutil.NewDB(t)
	organizer := testutil.CreateUser(t, db, common.RoleOrganizer)
	player := testutil.CreateUser(t, db, common.RolePlayer)
	tr := testutil.CreateTournament(t, db, organizer)

	provider := &fakeProvider{
		CreateFunc: func(context.Context, payment.CheckoutRequest) (*payment.CheckoutSession, error) {
			return nil, errors.New("connection reset")
		},
	}

	_, err := newCheckout(db, provider).CreateSession(context.Background(), player.Identity(), tr.ID)
	require.Error(t, err)
	assert.Equal(t, common.KindUpstream, common.KindOf(err))
	assert.Zero(t, testutil.Count(t, db, &payment.Payment{}))
}
