package revenue

import (
	"github.com/shopspring/decimal"

	"github.com/DhavalSuthar-24/tourney/internal/common"
	"github.com/DhavalSuthar-24/tourney/internal/payment"
	"github.com/DhavalSuthar-24/tourney/internal/tournament"
)

const recentPaymentsLimit = 5

var (
	ErrForbidden        = common.Forbidden("Forbidden")
	ErrNotOrganizer     = common.Forbidden("Only organizers can access the dashboard")
	ErrNotPlayerHistory = common.Forbidden("Only players can access payment history")
)

// Service computes revenue views over settled payments at query time.
type Service struct {
	payments    payment.Repository
	tournaments tournament.Repository
}

func NewService(payments payment.Repository, tournaments tournament.Repository) *Service {
	return &Service{payments: payments, tournaments: tournaments}
}

// TournamentRevenue sums settled payments of one tournament for its owner or
// an admin.
func (s *Service) TournamentRevenue(id common.Identity, tournamentID uint) (*TournamentRevenue, error) {
	t, err := s.tournaments.GetByID(tournamentID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, tournament.ErrNotFound
		}
		return nil, common.StoreFailure("load tournament", err)
	}
	if !id.CanManage(t.OrganizerID) {
		return nil, ErrForbidden
	}

	ps, err := s.payments.ListSuccessfulByTournament(t.ID)
	if err != nil {
		return nil, common.StoreFailure("list payments", err)
	}

	lines := toLines(ps, withPayer)
	return &TournamentRevenue{
		TournamentID:  t.ID,
		TotalRevenue:  total(ps),
		TotalPayments: len(ps),
		Payments:      lines,
	}, nil
}

// OrganizerDashboard aggregates every tournament the caller organizes.
func (s *Service) OrganizerDashboard(id common.Identity) (*Dashboard, error) {
	if !id.HasRole(common.RoleOrganizer, common.RoleAdmin) {
		return nil, ErrNotOrganizer
	}

	ts, err := s.tournaments.ListByOrganizer(id.UserID)
	if err != nil {
		return nil, common.StoreFailure("list organizer tournaments", err)
	}
	ids := make([]uint, 0, len(ts))
	for _, t := range ts {
		ids = append(ids, t.ID)
	}

	ps, err := s.payments.ListSuccessfulByTournaments(ids)
	if err != nil {
		return nil, common.StoreFailure("list payments", err)
	}

	players := make(map[uint]struct{}, len(ps))
	for _, p := range ps {
		players[p.UserID] = struct{}{}
	}

	lines := toLines(ps, withPayer)
	recent := lines
	if len(recent) > recentPaymentsLimit {
		recent = recent[:recentPaymentsLimit]
	}

	return &Dashboard{
		TotalRevenue:     total(ps),
		TotalTournaments: len(ts),
		TotalPayments:    len(ps),
		TotalPlayers:     len(players),
		RecentPayments:   recent,
		Payments:         lines,
	}, nil
}

// PlayerHistory lists the caller's own settled payments.
func (s *Service) PlayerHistory(id common.Identity) (*History, error) {
	if id.Role != common.RolePlayer {
		return nil, ErrNotPlayerHistory
	}

	ps, err := s.payments.ListSuccessfulByUser(id.UserID)
	if err != nil {
		return nil, common.StoreFailure("list payments", err)
	}

	return &History{
		TotalSpent:    total(ps),
		TotalPayments: len(ps),
		Payments:      toLines(ps, withTournament),
	}, nil
}

func total(ps []payment.Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range ps {
		sum = sum.Add(p.Amount)
	}
	return sum
}

type lineOption func(*PaymentLine, *payment.Payment)

func withPayer(l *PaymentLine, p *payment.Payment) {
	if p.User != nil {
		l.User = &Payer{ID: p.User.ID, Email: p.User.Email}
	}
}

func withTournament(l *PaymentLine, p *payment.Payment) {
	if p.Tournament != nil {
		l.Tournament = &TournamentRef{
			ID:       p.Tournament.ID,
			Title:    p.Tournament.Title,
			Game:     p.Tournament.Game,
			EntryFee: p.Tournament.EntryFee,
		}
	}
}

func toLines(ps []payment.Payment, opts ...lineOption) []PaymentLine {
	lines := make([]PaymentLine, 0, len(ps))
	for i := range ps {
		p := &ps[i]
		l := PaymentLine{
			ID:              p.ID,
			StripeSessionID: p.StripeSessionID,
			Amount:          p.Amount,
			Currency:        p.Currency,
			Status:          string(p.Status),
			TournamentID:    p.TournamentID,
			CreatedAt:       p.CreatedAt,
		}
		for _, opt := range opts {
			opt(&l, p)
		}
		lines = append(lines, l)
	}
	return lines
}
