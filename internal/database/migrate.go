package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/internal/payment"
	"github.com/DhavalSuthar-24/tourney/internal/registration"
	"github.com/DhavalSuthar-24/tourney/internal/tournament"
	"github.com/DhavalSuthar-24/tourney/internal/user"
)

// Models lists every persisted entity in dependency order.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&tournament.Tournament{},
		&registration.Registration{},
		&payment.Payment{},
		&payment.WebhookDelivery{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
