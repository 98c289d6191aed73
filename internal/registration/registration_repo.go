package registration

import (
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/internal/tournament"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(r *Registration) error
	Exists(userID, tournamentID uint) (bool, error)
	ListEntrants(tournamentIDs ...uint) (map[uint][]tournament.Entrant, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(reg *Registration) error {
	return r.db.Create(reg).Error
}

func (r *repository) Exists(userID, tournamentID uint) (bool, error) {
	var n int64
	err := r.db.Model(&Registration{}).
		Where("user_id = ? AND tournament_id = ?", userID, tournamentID).
		Count(&n).Error
	return n > 0, err
}

func (r *repository) ListEntrants(tournamentIDs ...uint) (map[uint][]tournament.Entrant, error) {
	out := make(map[uint][]tournament.Entrant, len(tournamentIDs))
	if len(tournamentIDs) == 0 {
		return out, nil
	}

	var regs []Registration
	err := r.db.Preload("User").
		Where("tournament_id IN ?", tournamentIDs).
		Order("created_at ASC, id ASC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}

	for i := range regs {
		out[regs[i].TournamentID] = append(out[regs[i].TournamentID], regs[i].Entrant())
	}
	return out, nil
}
