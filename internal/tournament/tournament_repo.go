package tournament

import (
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/internal/common"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(t *Tournament) error
	GetByID(id uint) (*Tournament, error)
	List(statuses ...Status) ([]Tournament, error)
	ListByOrganizer(organizerID uint) ([]Tournament, error)
	UpdateStatus(id uint, status Status) error
	ClaimSlot(id uint) error
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

func (r *repository) Create(t *Tournament) error {
	return r.db.Create(t).Error
}

func (r *repository) GetByID(id uint) (*Tournament, error) {
	var t Tournament
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) List(statuses ...Status) ([]Tournament, error) {
	var ts []Tournament
	q := r.db.Order("created_at DESC, id DESC")
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if err := q.Find(&ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}

func (r *repository) ListByOrganizer(organizerID uint) ([]Tournament, error) {
	var ts []Tournament
	if err := r.db.Where("organizer_id = ?", organizerID).Order("created_at DESC, id DESC").Find(&ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}

func (r *repository) UpdateStatus(id uint, status Status) error {
	res := r.db.Model(&Tournament{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClaimSlot increments the registration count only while the tournament is
// open and below capacity. The check and the increment are one statement, so
// concurrent claims for the last slot cannot both succeed.
func (r *repository) ClaimSlot(id uint) error {
	res := r.db.Model(&Tournament{}).
		Where("id = ? AND status = ? AND registration_count < max_participants", id, StatusRegistration).
		UpdateColumn("registration_count", gorm.Expr("registration_count + ?", 1))
	if res.Error != nil {
		return common.StoreFailure("claim tournament slot", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNoSlot
	}
	return nil
}
