package payment

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(p *Payment) error
	ExistsForSession(sessionID string) (bool, error)
	ListSuccessfulByTournament(tournamentID uint) ([]Payment, error)
	ListSuccessfulByTournaments(tournamentIDs []uint) ([]Payment, error)
	ListSuccessfulByUser(userID uint) ([]Payment, error)

	RecordDelivery(d *WebhookDelivery) error
	PruneDeliveries(before time.Time) (int64, error)
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

func (r *repository) Create(p *Payment) error {
	return r.db.Create(p).Error
}

func (r *repository) ExistsForSession(sessionID string) (bool, error) {
	var n int64
	err := r.db.Model(&Payment{}).Where("stripe_session_id = ?", sessionID).Count(&n).Error
	return n > 0, err
}

func (r *repository) ListSuccessfulByTournament(tournamentID uint) ([]Payment, error) {
	var ps []Payment
	err := r.db.Preload("User").
		Where("tournament_id = ? AND status = ?", tournamentID, StatusSuccess).
		Order("created_at DESC, id DESC").
		Find(&ps).Error
	return ps, err
}

func (r *repository) ListSuccessfulByTournaments(tournamentIDs []uint) ([]Payment, error) {
	if len(tournamentIDs) == 0 {
		return []Payment{}, nil
	}
	var ps []Payment
	err := r.db.Preload("User").
		Where("tournament_id IN ? AND status = ?", tournamentIDs, StatusSuccess).
		Order("created_at DESC, id DESC").
		Find(&ps).Error
	return ps, err
}

func (r *repository) ListSuccessfulByUser(userID uint) ([]Payment, error) {
	var ps []Payment
	err := r.db.Preload("Tournament").
		Where("user_id = ? AND status = ?", userID, StatusSuccess).
		Order("created_at DESC, id DESC").
		Find(&ps).Error
	return ps, err
}

func (r *repository) RecordDelivery(d *WebhookDelivery) error {
	return r.db.Create(d).Error
}

// PruneDeliveries hard-deletes delivery records processed before the cutoff.
func (r *repository) PruneDeliveries(before time.Time) (int64, error) {
	res := r.db.Unscoped().Where("processed_at < ?", before).Delete(&WebhookDelivery{})
	return res.RowsAffected, res.Error
}
