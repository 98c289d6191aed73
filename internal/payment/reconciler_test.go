package payment_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/internal/common"
	"github.com/DhavalSuthar-24/tourney/internal/payment"
	"github.com/DhavalSuthar-24/tourney/internal/registration"
	"github.com/DhavalSuthar-24/tourney/internal/testutil"
	"github.com/DhavalSuthar-24/tourney/internal/tournament"
	"github.com/DhavalSuthar-24/tourney/internal/user"
)

func newReconcilerWith(db *gorm.DB, enroller payment.Enroller) *payment.Reconciler {
	payments := payment.NewRepository(db)
	return payment.NewReconciler(
		newStripeProvider(),
		payments,
		user.NewRepository(db),
		tournament.NewRepository(db),
		payment.NewSettler(db, payments, enroller),
		zap.NewNop(),
	)
}

func newReconciler(db *gorm.DB) *payment.Reconciler {
	return newReconcilerWith(db, registration.NewService(db, registration.NewRepository(db), tournament.NewRepository(db), zap.NewNop()))
}

func paidEvent(session string, tr *tournament.Tournament, u *user.User) testutil.CompletedEvent {
	return testutil.CompletedEvent{
		EventID:         "evt_" + session,
		SessionID:       session,
		PaymentIntentID: "pi_" + session,
		AmountTotal:     tr.EntryFee.Mul(decimal.NewFromInt(100)).IntPart(),
		Currency:        "inr",
		Metadata: map[string]string{
			payment.MetadataTournamentID: strconv.FormatUint(uint64(tr.ID), 10),
			payment.MetadataUserID:       strconv.FormatUint(uint64(u.ID), 10),
		},
	}
}

func deliver(t *testing.T, r *payment.Reconciler, ev testutil.CompletedEvent) *payment.Result {
	t.Helper()
	payload := ev.JSON()
	res, err := r.HandleWebhook(context.Background(), payload, testutil.SignPayload(webhookSecret, payload))
	require.NoError(t, err)
	return res
}

func deliveries(t *testing.T, db *gorm.DB) []payment.WebhookDelivery {
	t.Helper()
	var ds []payment.WebhookDelivery
	require.NoError(t, db.Order("id ASC").Find(&ds).Error)
	return ds
}

func TestReconciler_SettlesCompletedCheckout(t *testing.T) {
	db := testutil.NewDB(t)
	organizer := testutil.CreateUser(t, db, common.RoleOrganizer)
	player := testutil.CreateUser(t, db, common.RolePlayer)
	tr := testutil.CreateTournament(t, db, organizer, testutil.WithEntryFee("500"))

	res := deliver(t, newReconciler(db), paidEvent("cs_settle", tr, player))
	require.Equal(t, payment.OutcomeSettled, res.Outcome, res.Reason)
	require.NotNil(t, res.Payment)

	var p payment.Payment
	require.NoError(t, db.Where("stripe_session_id = ?", "cs_settle").First(&p).Error)
	assert.Equal(t, "pi_cs_settle", p.StripePaymentIntentID)
	assert.True(t, p.Amount.Equal(decimal.NewFromInt(500)), "amount %s", p.Amount)
	assert.Equal(t, "inr", p.Currency)
	assert.Equal(t, payment.StatusSuccess, p.Status)
	assert.Equal(t, player.ID, p.UserID)
	assert.Equal(t, tr.ID, p.TournamentID)

	exists, err := registration.NewRepository(db).Exists(player.ID, tr.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 1, testutil.Reload(t, db, tr.ID).RegistrationCount)

	ds := deliveries(t, db)
	require.Len(t, ds, 1)
	assert.Equal(t, "evt_cs_settle", ds[0].EventID)
	assert.Equal(t, "cs_settle", ds[0].SessionID)
	assert.Equal(t, payment.OutcomeSettled, ds[0].Outcome)
	assert.NotEmpty(t, ds[0].Payload)
}

func TestReconciler_RedeliveryIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	r := newReconciler(db)
	organizer := testutil.CreateUser(t, db, common.RoleOrganizer)
	player := testutil.CreateUser(t, db, common.RolePlayer)
	tr := testutil.CreateTournament(t, db, organizer)
	ev := paidEvent("cs_repeat", tr, player)

	outcomes := make([]payment.Outcome, 0, 4)
	for i := 0; i < 4; i++ {
		outcomes = append(outcomes, deliver(t, r, ev).Outcome)
	}

	assert.Equal(t, []payment.Outcome{
		payment.OutcomeSettled, payment.OutcomeDuplicate, payment.OutcomeDuplicate, payment.OutcomeDuplicate,
	}, outcomes)
	assert.Equal(t, int64(1), testutil.Count(t, db, &payment.Payment{}))
	assert.Equal(t, int64(1), testutil.Count(t, db, &registration.Registration{}))
	assert.Equal(t, 1, testutil.Reload(t, db, tr.ID).RegistrationCount)
	assert.Len(t, deliveries(t, db), 4)
}

func TestReconciler_ConcurrentRedelivery(t *testing.T) {
	db := testutil.NewDB(t)
	r := newReconciler(db)
	organizer := testutil.CreateUser(t, db, common.RoleOrganizer)
	player := testutil.CreateUser(t, db, common.RolePlayer)
	tr := testutil.CreateTournament(t, db, organizer)
	ev := paidEvent("cs_race", tr, player)

	const n = 6
	results := make([]*payment.Result, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := ev.JSON()
			res, err := r.HandleWebhook(context.Background(), payload, testutil.SignPayload(webhookSecret, payload))
			if err == nil {
				results[i] = res
			}
		}(i)
	}
	wg.Wait()

	settled := 0
	for _, res := range results {
		require.NotNil(t, res)
		switch res.Outcome {
		case payment.OutcomeSettled:
			settled++
		case payment.OutcomeDuplicate:
		default:
			t.Fatalf("unexpected outcome %s: %s", res.Outcome, res.Reason)
		}
	}
	assert.Equal(t, 1, settled)
	assert.Equal(t, int64(1), testutil.Count(t, db, &payment.Payment{}))
	assert.Equal(t, int64(1), testutil.Count(t, db, &registration.Registration{}))
	assert.Equal(t, 1, testutil.Reload(t, db, tr.ID).RegistrationCount)
}

func TestReconciler_LastSlotGoesToOnePlayer(t *testing.T) {
	db := testutil.NewDB(t)
	r := newReconciler(db)
	organizer := testutil.CreateUser(t, db, common.RoleOrganizer)
	tr := testutil.CreateTournament(t, db, organizer, testutil.WithMaxParticipants(1))
	first := testutil.CreateUser(t, db, common.RolePlayer)
	second := testutil.CreateUser(t, db, common.RolePlayer)

	results := make([]*payment.Result, 2)
	var wg sync.WaitGroup
	for i, u := range []*user.User{first, second} {
		wg.Add(1)
		go func(i int, u *user.User) {
			defer wg.Done()
			payload := paidEvent(fmt.Sprintf("cs_slot_%d", i), tr, u).JSON()
			res, err := r.HandleWebhook(context.Background(), payload, testutil.SignPayload(webhookSecret, payload))
			if err == nil {
				results[i] = res
			}
		}(i, u)
	}
	wg.Wait()

	require.NotNil(t, results[0])
	require.NotNil(t, results[1])
	got := []payment.Outcome{results[0].Outcome, results[1].Outcome}
	assert.ElementsMatch(t, []payment.Outcome{payment.OutcomeSettled, payment.OutcomeRejected}, got)

	assert.Equal(t, int64(1), testutil.Count(t, db, &payment.Payment{}))
	assert.Equal(t, int64(1), testutil.Count(t, db, &registration.Registration{}))
	assert.Equal(t, 1, testutil.Reload(t, db, tr.ID).RegistrationCount)
}

func TestReconciler_RejectsClosedTournament(t *testing.T) {
	db := testutil.NewDB(t)
	organizer := testutil.CreateUser(t, db, common.RoleOrganizer)
	player := testutil.CreateUser(t, db, common.RolePlayer)
	tr := testutil.CreateTournament(t, db, organizer)

	// Paid while open, went live before the webhook arrived.
	require.NoError(t, tournament.NewRepository(db).UpdateStatus(tr.ID, tournament.StatusLive))

	res := deliver(t, newReconciler(db), paidEvent("cs_live", tr, player))
	assert.Equal(t, payment.OutcomeRejected, res.Outcome)
	assert.Contains(t, res.Reason, "LIVE")

	assert.Zero(t, testutil.Count(t, db, &payment.Payment{}))
	assert.Zero(t, testutil.Count(t, db, &registration.Registration{}))
	assert.Equal(t, 0, testutil.Reload(t, db, tr.ID).RegistrationCount)

	ds := deliveries(t, db)
	require.Len(t, ds, 1)
	assert.Equal(t, payment.OutcomeRejected, ds[0].Outcome)
}

func TestReconciler_RejectsBadCorrelation(t *testing.T) {
	db := testutil.NewDB(t)
	r := newReconciler(db)
	organizer := testutil.CreateUser(t, db, common.RoleOrganizer)
	player := testutil.CreateUser(t, db, common.RolePlayer)
	admin := testutil.CreateUser(t, db, common.RoleAdmin)
	tr := testutil.CreateTournament(t, db, organizer)
	full := testutil.CreateTournament(t, db, organizer, testutil.WithMaxParticipants(1))
	require.NoError(t, tournament.NewRepository(db).ClaimSlot(full.ID))

	missing := paidEvent("cs_nometa", tr, player)
	missing.Metadata = nil

	ghost := paidEvent("cs_ghost", tr, player)
	ghost.Metadata[payment.MetadataUserID] = "99999"

	unknown := paidEvent("cs_unknown", tr, player)
	unknown.Metadata[payment.MetadataTournamentID] = "99999"

	tests := []struct {
		name string
		ev   testutil.CompletedEvent
	}{
		{"missing metadata", missing},
		{"unknown user", ghost},
		{"organizer paid", paidEvent("cs_org", tr, organizer)},
		{"admin paid", paidEvent("cs_admin", tr, admin)},
		{"unknown tournament", unknown},
		{"full tournament", paidEvent("cs_full", full, player)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := deliver(t, r, tt.ev)
			assert.Equal(t, payment.OutcomeRejected, res.Outcome)
			assert.NotEmpty(t, res.Reason)
		})
	}

	assert.Zero(t, testutil.Count(t, db, &payment.Payment{}))
	assert.Zero(t, testutil.Count(t, db, &registration.Registration{}))
	assert.Len(t, deliveries(t, db), len(tests))
}

func TestReconciler_IgnoresOtherEvents(t *testing.T) {
	db := testutil.NewDB(t)
	payload := []byte(`{"id":"evt_other","object":"event","type":"checkout.session.expired","data":{"object":{"id":"cs_x","object":"checkout.session"}}}`)

	res, err := newReconciler(db).HandleWebhook(context.Background(), payload, testutil.SignPayload(webhookSecret, payload))
	require.NoError(t, err)
	assert.Equal(t, payment.OutcomeIgnored, res.Outcome)

	ds := deliveries(t, db)
	require.Len(t, ds, 1)
	assert.Equal(t, "checkout.session.expired", ds[0].EventType)
	assert.Equal(t, payment.OutcomeIgnored, ds[0].Outcome)
}

func TestReconciler_InvalidSignatureRecordsNothing(t *testing.T) {
	db := testutil.NewDB(t)
	organizer := testutil.CreateUser(t, db, common.RoleOrganizer)
	player := testutil.CreateUser(t, db, common.RolePlayer)
	tr := testutil.CreateTournament(t, db, organizer)
	payload := paidEvent("cs_forged", tr, player).JSON()

	res, err := newReconciler(db).HandleWebhook(context.Background(), payload, testutil.SignPayload("whsec_forged", payload))
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, common.KindSignature, common.KindOf(err))

	assert.Zero(t, testutil.Count(t, db, &payment.Payment{}))
	assert.Empty(t, deliveries(t, db))
}

func TestReconciler_AlreadyRegisteredPlayerKeepsNoPayment(t *testing.T) {
	db := testutil.NewDB(t)
	organizer := testutil.CreateUser(t, db, common.RoleOrganizer)
	player := testutil.CreateUser(t, db, common.RolePlayer)
	tr := testutil.CreateTournament(t, db, organizer)
	require.NoError(t, registration.NewRepository(db).Create(&registration.Registration{UserID: player.ID, TournamentID: tr.ID}))

	res := deliver(t, newReconciler(db), paidEvent("cs_twice", tr, player))
	assert.Equal(t, payment.OutcomeDuplicate, res.Outcome)
	assert.Zero(t, testutil.Count(t, db, &payment.Payment{}))
	assert.Equal(t, int64(1), testutil.Count(t, db, &registration.Registration{}))
	assert.Equal(t, 0, testutil.Reload(t, db, tr.ID).RegistrationCount)
}

func TestReconciler_AlreadyRegisteredPlayerLogsRefundWarning(t *testing.T) {
	db := testutil.NewDB(t)
	organizer := testutil.CreateUser(t, db, common.RoleOrganizer)
	player := testutil.CreateUser(t, db, common.RolePlayer)
	tr := testutil.CreateTournament(t, db, organizer)
	require.NoError(t, registration.NewRepository(db).Create(&registration.Registration{UserID: player.ID, TournamentID: tr.ID}))

	core, logs := observer.New(zapcore.WarnLevel)
	payments := payment.NewRepository(db)
	r := payment.NewReconciler(
		newStripeProvider(),
		payments,
		user.NewRepository(db),
		tournament.NewRepository(db),
		payment.NewSettler(db, payments, registration.NewService(db, registration.NewRepository(db), tournament.NewRepository(db), zap.NewNop())),
		zap.New(core),
	)

	res := deliver(t, r, paidEvent("cs_refund", tr, player))
	assert.Equal(t, payment.OutcomeDuplicate, res.Outcome)

	warnings := logs.FilterMessage("payment captured for existing registration, refund required").All()
	require.Len(t, warnings, 1)
	fields := warnings[0].ContextMap()
	assert.Equal(t, "cs_refund", fields["session_id"])
	assert.Equal(t, "pi_cs_refund", fields["payment_intent_id"])
}

func TestReconciler_EmptySecretRejectsSelfSignedDelivery(t *testing.T) {
	db := testutil.NewDB(t)
	organizer := testutil.CreateUser(t, db, common.RoleOrganizer)
	player := testutil.CreateUser(t, db, common.RolePlayer)
	tr := testutil.CreateTournament(t, db, organizer)
	payload := paidEvent("cs_unsigned", tr, player).JSON()

	payments := payment.NewRepository(db)
	r := payment.NewReconciler(
		payment.NewStripeProvider("sk_test_unused", "", time.Second),
		payments,
		user.NewRepository(db),
		tournament.NewRepository(db),
		payment.NewSettler(db, payments, registration.NewService(db, registration.NewRepository(db), tournament.NewRepository(db), zap.NewNop())),
		zap.NewNop(),
	)

	res, err := r.HandleWebhook(context.Background(), payload, testutil.SignPayload("", payload))
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, common.KindSignature, common.KindOf(err))

	assert.Zero(t, testutil.Count(t, db, &payment.Payment{}))
	assert.Zero(t, testutil.Count(t, db, &registration.Registration{}))
	assert.Equal(t, 0, testutil.Reload(t, db, tr.ID).RegistrationCount)
}

func TestReconciler_SettlesAfterCallerHangsUp(t *testing.T) {
	db := testutil.NewDB(t)
	organizer := testutil.CreateUser(t, db, common.RoleOrganizer)
	player := testutil.CreateUser(t, db, common.RolePlayer)
	tr := testutil.CreateTournament(t, db, organizer)
	payload := paidEvent("cs_cancel", tr, player).JSON()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := newReconciler(db).HandleWebhook(ctx, payload, testutil.SignPayload(webhookSecret, payload))
	require.NoError(t, err)
	assert.Equal(t, payment.OutcomeSettled, res.Outcome, res.Reason)
	assert.Equal(t, int64(1), testutil.Count(t, db, &payment.Payment{}))
}

// stubEnroller fails after the payment row has been inserted.
type stubEnroller struct {
	err error
}

func (s stubEnroller) Enroll(*gorm.DB, uint, uint) (*registration.Registration, error) {
	return nil, s.err
}

func TestSettler_RollsBackPaymentWhenEnrollFails(t *testing.T) {
	for _, enrollErr := range []error{tournament.ErrNoSlot, registration.ErrAlreadyRegistered, errors.New("disk full")} {
		t.Run(enrollErr.Error(), func(t *testing.T) {
			db := testutil.NewDB(t)
			organizer := testutil.CreateUser(t, db, common.RoleOrganizer)
			player := testutil.CreateUser(t, db, common.RolePlayer)
			tr := testutil.CreateTournament(t, db, organizer)

			payments := payment.NewRepository(db)
			p := &payment.Payment{
				StripeSessionID: "cs_atomic",
				Amount:          decimal.NewFromInt(500),
				Currency:        "inr",
				Status:          payment.StatusSuccess,
				UserID:          player.ID,
				TournamentID:    tr.ID,
			}
			reg, err := payment.NewSettler(db, payments, stubEnroller{err: enrollErr}).Settle(context.Background(), p)
			assert.ErrorIs(t, err, enrollErr)
			assert.Nil(t, reg)
			assert.Zero(t, p.ID)

			exists, err := payments.ExistsForSession("cs_atomic")
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestReconciler_CommitFailureOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		outcome payment.Outcome
	}{
		{"slot lost at commit", tournament.ErrNoSlot, payment.OutcomeRejected},
		{"store failure", errors.New("connection refused"), payment.OutcomeFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.NewDB(t)
			organizer := testutil.CreateUser(t, db, common.RoleOrganizer)
			player := testutil.CreateUser(t, db, common.RolePlayer)
			tr := testutil.CreateTournament(t, db, organizer)

			res := deliver(t, newReconcilerWith(db, stubEnroller{err: tt.err}), paidEvent("cs_commit", tr, player))
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Nil(t, res.Payment)
			assert.Zero(t, testutil.Count(t, db, &payment.Payment{}))

			ds := deliveries(t, db)
			require.Len(t, ds, 1)
			assert.Equal(t, tt.outcome, ds[0].Outcome)
		})
	}
}

func TestRepository_PruneDeliveries(t *testing.T) {
	db := testutil.NewDB(t)
	repo := payment.NewRepository(db)
	now := time.Now().UTC()

	require.NoError(t, repo.RecordDelivery(&payment.WebhookDelivery{EventID: "evt_old", Outcome: payment.OutcomeIgnored, ProcessedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, repo.RecordDelivery(&payment.WebhookDelivery{EventID: "evt_new", Outcome: payment.OutcomeIgnored, ProcessedAt: now}))

	n, err := repo.PruneDeliveries(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ds := deliveries(t, db)
	require.Len(t, ds, 1)
	assert.Equal(t, "evt_new", ds[0].EventID)

	var all int64
	require.NoError(t, db.Unscoped().Model(&payment.WebhookDelivery{}).Count(&all).Error)
	assert.Equal(t, int64(1), all)
}
