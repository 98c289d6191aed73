package payment

import (
	"context"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/internal/common"
	"github.com/DhavalSuthar-24/tourney/internal/registration"
)

// Enroller claims a tournament slot and inserts a registration inside tx.
type Enroller interface {
	Enroll(tx *gorm.DB, userID, tournamentID uint) (*registration.Registration, error)
}

// Settler commits a payment together with its registration.
type Settler struct {
	db       *gorm.DB
	payments Repository
	enroller Enroller
}

func NewSettler(db *gorm.DB, payments Repository, enroller Enroller) *Settler {
	return &Settler{db: db, payments: payments, enroller: enroller}
}

// Settle inserts p, claims a slot and inserts the registration in one
// transaction. On any error nothing is written. It returns ErrAlreadySettled
// for a known session, registration.ErrAlreadyRegistered for a known pair and
// tournament.ErrNoSlot when capacity or status changed.
func (s *Settler) Settle(ctx context.Context, p *Payment) (*registration.Registration, error) {
	var reg *registration.Registration
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.payments.WithTx(tx).Create(p); err != nil {
			if common.IsUniqueViolation(err) {
				return ErrAlreadySettled
			}
			return common.StoreFailure("create payment", err)
		}

		r, err := s.enroller.Enroll(tx, p.UserID, p.TournamentID)
		if err != nil {
			return err
		}
		reg = r
		return nil
	})
	if err != nil {
		// gorm already filled the primary key of the rolled back insert.
		p.ID = 0
		return nil, err
	}
	return reg, nil
}
