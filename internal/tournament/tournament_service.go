package tournament

import (
	"strings"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/tourney/internal/common"
)

// EntrantLister loads the registrations of tournaments, keyed by tournament id.
type EntrantLister interface {
	ListEntrants(tournamentIDs ...uint) (map[uint][]Entrant, error)
}

type CreateInput struct {
	Title           string
	Description     string
	Game            string
	EntryFee        decimal.Decimal
	PrizePool       decimal.Decimal
	MaxParticipants int
}

type Service struct {
	repo     Repository
	entrants EntrantLister
	logger   *zap.Logger
}

func NewService(repo Repository, entrants EntrantLister, logger *zap.Logger) *Service {
	return &Service{repo: repo, entrants: entrants, logger: logger}
}

// Create stores a new DRAFT tournament owned by the caller.
func (s *Service) Create(id common.Identity, in CreateInput) (*Tournament, error) {
	if !id.HasRole(common.RoleOrganizer, common.RoleAdmin) {
		return nil, ErrNotOrganizer
	}

	title := strings.TrimSpace(in.Title)
	t := &Tournament{
		Title:           title,
		Slug:            slug.Make(title),
		Description:     strings.TrimSpace(in.Description),
		Game:            strings.TrimSpace(in.Game),
		EntryFee:        in.EntryFee.Round(2),
		PrizePool:       in.PrizePool.Round(2),
		MaxParticipants: in.MaxParticipants,
		Status:          StatusDraft,
		OrganizerID:     id.UserID,
	}
	if t.Slug == "" {
		return nil, ErrInvalidTitle
	}
	if t.EntryFee.IsNegative() || t.PrizePool.IsNegative() {
		return nil, ErrNegativeAmount
	}
	if t.MaxParticipants <= 0 {
		t.MaxParticipants = DefaultMaxParticipants
	}

	if err := s.repo.Create(t); err != nil {
		if common.IsUniqueViolation(err) {
			return nil, ErrDuplicateTitle
		}
		return nil, common.StoreFailure("create tournament", err)
	}

	s.logger.Info("tournament created",
		zap.Uint("tournament_id", t.ID),
		zap.Uint("organizer_id", t.OrganizerID),
		zap.String("entry_fee", t.EntryFee.String()),
	)
	return t, nil
}

// List returns tournaments visible to the caller. Players only see
// tournaments that are open for registration.
func (s *Service) List(id common.Identity) ([]Tournament, error) {
	var statuses []Status
	if id.Role == common.RolePlayer {
		statuses = []Status{StatusRegistration}
	}
	ts, err := s.repo.List(statuses...)
	if err != nil {
		return nil, common.StoreFailure("list tournaments", err)
	}
	return ts, nil
}

func (s *Service) Get(tournamentID uint) (*Tournament, error) {
	t, err := s.repo.GetByID(tournamentID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, common.StoreFailure("load tournament", err)
	}
	return t, nil
}

// Mine returns the caller's tournaments with their registrations.
func (s *Service) Mine(id common.Identity) ([]WithEntrants, error) {
	if !id.HasRole(common.RoleOrganizer, common.RoleAdmin) {
		return nil, ErrNotOrganizer
	}

	ts, err := s.repo.ListByOrganizer(id.UserID)
	if err != nil {
		return nil, common.StoreFailure("list organizer tournaments", err)
	}

	ids := make([]uint, 0, len(ts))
	for _, t := range ts {
		ids = append(ids, t.ID)
	}
	byTournament, err := s.entrants.ListEntrants(ids...)
	if err != nil {
		return nil, common.StoreFailure("list registrations", err)
	}

	out := make([]WithEntrants, 0, len(ts))
	for _, t := range ts {
		entrants := byTournament[t.ID]
		if entrants == nil {
			entrants = []Entrant{}
		}
		out = append(out, WithEntrants{Tournament: t, Registrations: entrants})
	}
	return out, nil
}

// Entrants lists registrations of a tournament the caller owns or administers.
func (s *Service) Entrants(id common.Identity, tournamentID uint) ([]Entrant, error) {
	t, err := s.Get(tournamentID)
	if err != nil {
		return nil, err
	}
	if !id.CanManage(t.OrganizerID) {
		return nil, ErrForbidden
	}

	byTournament, err := s.entrants.ListEntrants(t.ID)
	if err != nil {
		return nil, common.StoreFailure("list registrations", err)
	}
	entrants := byTournament[t.ID]
	if entrants == nil {
		entrants = []Entrant{}
	}
	return entrants, nil
}

// UpdateStatus sets any of the four statuses. Transitions are not ordered.
func (s *Service) UpdateStatus(id common.Identity, tournamentID uint, raw string) (*Tournament, error) {
	status, ok := ParseStatus(raw)
	if !ok {
		return nil, ErrInvalidStatus
	}

	t, err := s.Get(tournamentID)
	if err != nil {
		return nil, err
	}
	if !id.CanManage(t.OrganizerID) {
		return nil, ErrForbidden
	}

	if err := s.repo.UpdateStatus(t.ID, status); err != nil {
		if common.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, common.StoreFailure("update tournament status", err)
	}

	s.logger.Info("tournament status changed",
		zap.Uint("tournament_id", t.ID),
		zap.String("from", string(t.Status)),
		zap.String("to", string(status)),
		zap.Uint("by", id.UserID),
	)
	t.Status = status
	return t, nil
}
