package registration

import (
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/internal/tournament"
	"github.com/DhavalSuthar-24/tourney/internal/user"
)

// Registration is a player's seat in a tournament. A (user, tournament) pair
// appears at most once.
type Registration struct {
	gorm.Model
	UserID       uint                   `gorm:"not null;uniqueIndex:idx_registration_user_tournament,priority:1" json:"userId"`
	TournamentID uint                   `gorm:"not null;uniqueIndex:idx_registration_user_tournament,priority:2;index" json:"tournamentId"`
	User         *user.User             `json:"-"`
	Tournament   *tournament.Tournament `json:"-"`
}

func (r *Registration) Entrant() tournament.Entrant {
	e := tournament.Entrant{RegistrationID: r.ID, RegisteredAt: r.CreatedAt}
	if r.User != nil {
		e.User = r.User.Profile()
	} else {
		e.User.ID = r.UserID
	}
	return e
}
