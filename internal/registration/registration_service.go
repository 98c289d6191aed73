package registration

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/internal/common"
	"github.com/DhavalSuthar-24/tourney/internal/metrics"
	"github.com/DhavalSuthar-24/tourney/internal/tournament"
)

type Service struct {
	db          *gorm.DB
	repo        Repository
	tournaments tournament.Repository
	logger      *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, tournaments tournament.Repository, logger *zap.Logger) *Service {
	return &Service{db: db, repo: repo, tournaments: tournaments, logger: logger}
}

// CheckEligibility runs the preconditions shared by direct registration and
// checkout. It only reads; the binding checks happen again in Enroll.
func (s *Service) CheckEligibility(id common.Identity, tournamentID uint) (*tournament.Tournament, error) {
	if id.Role != common.RolePlayer {
		return nil, ErrNotPlayer
	}

	t, err := s.tournaments.GetByID(tournamentID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, tournament.ErrNotFound
		}
		return nil, common.StoreFailure("load tournament", err)
	}

	if !t.IsOpen() {
		return nil, ErrRegistrationClosed
	}
	if t.OrganizerID == id.UserID {
		return nil, ErrOrganizerSelf
	}

	exists, err := s.repo.Exists(id.UserID, t.ID)
	if err != nil {
		return nil, common.StoreFailure("check registration", err)
	}
	if exists {
		return nil, ErrAlreadyRegistered
	}

	if !t.HasCapacity() {
		return nil, ErrTournamentFull
	}
	return t, nil
}

// Register joins a free tournament without a payment.
func (s *Service) Register(ctx context.Context, id common.Identity, tournamentID uint) (*Registration, error) {
	t, err := s.CheckEligibility(id, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.RequiresPayment() {
		return nil, ErrPaymentRequired
	}

	var reg *Registration
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := s.Enroll(tx, id.UserID, t.ID)
		if err != nil {
			return err
		}
		reg = r
		return nil
	})
	if errors.Is(err, tournament.ErrNoSlot) {
		return nil, s.slotError(t.ID)
	}
	if err != nil {
		return nil, err
	}

	metrics.Registrations.WithLabelValues("free").Inc()
	s.logger.Info("player registered",
		zap.Uint("registration_id", reg.ID),
		zap.Uint("tournament_id", t.ID),
		zap.Uint("user_id", id.UserID),
	)
	return reg, nil
}

// Enroll claims a slot and inserts the registration inside tx. It returns
// tournament.ErrNoSlot when the tournament closed or filled up, and
// ErrAlreadyRegistered when the pair already exists; either way the caller
// must roll tx back.
func (s *Service) Enroll(tx *gorm.DB, userID, tournamentID uint) (*Registration, error) {
	if err := s.tournaments.WithTx(tx).ClaimSlot(tournamentID); err != nil {
		return nil, err
	}

	reg := &Registration{UserID: userID, TournamentID: tournamentID}
	if err := s.repo.WithTx(tx).Create(reg); err != nil {
		if common.IsUniqueViolation(err) {
			return nil, ErrAlreadyRegistered
		}
		return nil, common.StoreFailure("create registration", err)
	}
	return reg, nil
}

// slotError explains a lost slot claim using the tournament's current state.
func (s *Service) slotError(tournamentID uint) error {
	t, err := s.tournaments.GetByID(tournamentID)
	if err != nil {
		if common.IsNotFound(err) {
			return tournament.ErrNotFound
		}
		return common.StoreFailure("load tournament", err)
	}
	if !t.IsOpen() {
		return ErrRegistrationClosed
	}
	return ErrTournamentFull
}
