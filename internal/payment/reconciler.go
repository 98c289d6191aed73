package payment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/tourney/internal/common"
	"github.com/DhavalSuthar-24/tourney/internal/metrics"
	"github.com/DhavalSuthar-24/tourney/internal/registration"
	"github.com/DhavalSuthar-24/tourney/internal/tournament"
	"github.com/DhavalSuthar-24/tourney/internal/user"
)

// Result is what the reconciler did with one delivery.
type Result struct {
	Outcome Outcome
	Reason  string
	Payment *Payment
}

// Reconciler turns verified checkout.session.completed notifications into a
// Payment and Registration pair, at most once per session.
type Reconciler struct {
	provider    Provider
	payments    Repository
	users       user.Repository
	tournaments tournament.Repository
	settler     *Settler
	logger      *zap.Logger
	now         func() time.Time
}

func NewReconciler(
	provider Provider,
	payments Repository,
	users user.Repository,
	tournaments tournament.Repository,
	settler *Settler,
	logger *zap.Logger,
) *Reconciler {
	return &Reconciler{
		provider:    provider,
		payments:    payments,
		users:       users,
		tournaments: tournaments,
		settler:     settler,
		logger:      logger,
		now:         time.Now,
	}
}

// HandleWebhook verifies and reconciles one delivery. An error is returned
// only when the signature or the payload is invalid; every business outcome,
// including a failed commit, comes back as a Result.
func (r *Reconciler) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) (*Result, error) {
	event, err := r.provider.ParseWebhook(payload, signatureHeader)
	if err != nil {
		metrics.WebhookEvents.WithLabelValues("invalid").Inc()
		r.logger.Warn("webhook rejected", zap.Error(err))
		return nil, err
	}

	result := r.reconcile(ctx, event)

	metrics.WebhookEvents.WithLabelValues(string(result.Outcome)).Inc()
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", event.Type),
		zap.String("outcome", string(result.Outcome)),
		zap.String("reason", result.Reason),
	}
	if event.Session != nil {
		fields = append(fields, zap.String("session_id", event.Session.ID))
	}
	if result.Outcome == OutcomeFailed {
		r.logger.Error("webhook reconciliation failed", fields...)
	} else {
		r.logger.Info("webhook reconciled", fields...)
	}

	r.record(event, result)
	return result, nil
}

func (r *Reconciler) reconcile(ctx context.Context, event *WebhookEvent) *Result {
	if event.Type != EventCheckoutSessionCompleted || event.Session == nil {
		return &Result{Outcome: OutcomeIgnored, Reason: "unhandled event type " + event.Type}
	}
	s := event.Session

	tournamentID, userID, err := s.Correlation()
	if err != nil {
		return rejected(err.Error())
	}

	exists, err := r.payments.ExistsForSession(s.ID)
	if err != nil {
		return failed("check payment", err)
	}
	if exists {
		return &Result{Outcome: OutcomeDuplicate, Reason: "payment already recorded for session"}
	}

	u, err := r.users.GetByID(userID)
	if err != nil {
		if common.IsNotFound(err) {
			return rejected("user not found")
		}
		return failed("load user", err)
	}
	if u.Role != common.RolePlayer {
		return rejected("user is not a player")
	}

	t, err := r.tournaments.GetByID(tournamentID)
	if err != nil {
		if common.IsNotFound(err) {
			return rejected("tournament not found")
		}
		return failed("load tournament", err)
	}
	if !t.IsOpen() {
		return rejected("tournament is not open for registration, status " + string(t.Status))
	}
	if !t.HasCapacity() {
		return rejected("tournament is full")
	}

	p := &Payment{
		StripeSessionID:       s.ID,
		StripePaymentIntentID: s.PaymentIntentID,
		Amount:                majorUnits(s.AmountTotal),
		Currency:              s.Currency,
		Status:                StatusSuccess,
		UserID:                u.ID,
		TournamentID:          t.ID,
	}

	// The commit must not be abandoned halfway because the provider hung up.
	reg, err := r.settler.Settle(context.WithoutCancel(ctx), p)
	switch {
	case errors.Is(err, tournament.ErrNoSlot):
		return rejected("no open slot at commit time")
	case errors.Is(err, ErrAlreadySettled):
		return &Result{Outcome: OutcomeDuplicate, Reason: "payment already recorded for session"}
	case errors.Is(err, registration.ErrAlreadyRegistered):
		// The charge went through but no Payment row was kept.
		r.logger.Warn("payment captured for existing registration, refund required",
			zap.String("session_id", s.ID),
			zap.String("payment_intent_id", s.PaymentIntentID),
			zap.Uint("tournament_id", t.ID),
			zap.Uint("user_id", u.ID),
			zap.String("amount", p.Amount.String()),
			zap.String("currency", p.Currency),
		)
		return &Result{Outcome: OutcomeDuplicate, Reason: "user already registered for tournament"}
	case err != nil:
		return failed("settle payment", err)
	}

	metrics.Registrations.WithLabelValues("paid").Inc()
	r.logger.Info("payment settled",
		zap.Uint("payment_id", p.ID),
		zap.Uint("registration_id", reg.ID),
		zap.Uint("tournament_id", t.ID),
		zap.Uint("user_id", u.ID),
		zap.String("amount", p.Amount.String()),
	)
	return &Result{Outcome: OutcomeSettled, Payment: p}
}

// record stores the delivery in the audit log. Failures are logged only.
func (r *Reconciler) record(event *WebhookEvent, result *Result) {
	d := &WebhookDelivery{
		EventID:     event.ID,
		EventType:   event.Type,
		Outcome:     result.Outcome,
		Reason:      result.Reason,
		Payload:     event.Payload,
		ProcessedAt: r.now(),
	}
	if event.Session != nil {
		d.SessionID = event.Session.ID
	}
	if err := r.payments.RecordDelivery(d); err != nil {
		r.logger.Warn("webhook delivery not recorded", zap.String("event_id", event.ID), zap.Error(err))
	}
}

func rejected(reason string) *Result {
	return &Result{Outcome: OutcomeRejected, Reason: reason}
}

func failed(op string, err error) *Result {
	return &Result{Outcome: OutcomeFailed, Reason: common.StoreFailure(op, err).Error()}
}
