package user

import (
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/internal/common"
)

type User struct {
	gorm.Model
	Email    string      `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string      `gorm:"not null" json:"-"`
	Role     common.Role `gorm:"size:16;not null;default:PLAYER;index" json:"role"`
}

// Identity returns the user as an operation caller.
func (u *User) Identity() common.Identity {
	return common.Identity{UserID: u.ID, Role: u.Role}
}

// Profile is the public view of a user.
type Profile struct {
	ID    uint        `json:"id"`
	Email string      `json:"email"`
	Role  common.Role `json:"role"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Email: u.Email, Role: u.Role}
}
