package payment

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/tourney/internal/common"
	"github.com/DhavalSuthar-24/tourney/internal/metrics"
	"github.com/DhavalSuthar-24/tourney/internal/tournament"
)

// Eligibility is the registration precondition check shared with the free path.
type Eligibility interface {
	CheckEligibility(id common.Identity, tournamentID uint) (*tournament.Tournament, error)
}

type CheckoutConfig struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

// CheckoutService gates checkout requests and delegates to the provider. It
// writes nothing; the reconciler commits once the payment completes.
type CheckoutService struct {
	eligibility Eligibility
	provider    Provider
	cfg         CheckoutConfig
	logger      *zap.Logger
}

func NewCheckoutService(eligibility Eligibility, provider Provider, cfg CheckoutConfig, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{eligibility: eligibility, provider: provider, cfg: cfg, logger: logger}
}

// CreateSession validates the caller against the tournament and opens a
// hosted checkout carrying the (tournament, user) pair as metadata.
func (s *CheckoutService) CreateSession(ctx context.Context, id common.Identity, tournamentID uint) (*CheckoutSession, error) {
	t, err := s.eligibility.CheckEligibility(id, tournamentID)
	if err != nil {
		metrics.CheckoutSessions.WithLabelValues("rejected").Inc()
		return nil, err
	}

	session, err := s.provider.CreateCheckoutSession(ctx, CheckoutRequest{
		TournamentID: t.ID,
		UserID:       id.UserID,
		ProductName:  t.Title,
		UnitAmount:   minorUnits(t.EntryFee),
		Currency:     s.cfg.Currency,
		SuccessURL:   s.cfg.SuccessURL,
		CancelURL:    s.cfg.CancelURL,
	})
	if err != nil {
		metrics.CheckoutSessions.WithLabelValues("provider_error").Inc()
		s.logger.Error("checkout session creation failed",
			zap.Uint("tournament_id", t.ID),
			zap.Uint("user_id", id.UserID),
			zap.Error(err),
		)
		return nil, common.UpstreamFailure("create checkout session", err)
	}

	metrics.CheckoutSessions.WithLabelValues("created").Inc()
	s.logger.Info("checkout session created",
		zap.String("session_id", session.ID),
		zap.Uint("tournament_id", t.ID),
		zap.Uint("user_id", id.UserID),
	)
	return session, nil
}

var hundred = decimal.NewFromInt(100)

func minorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

func majorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}
