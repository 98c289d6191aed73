package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

type Role string

const (
	RolePlayer    Role = "PLAYER"
	RoleOrganizer Role = "ORGANIZER"
	RoleAdmin     Role = "ADMIN"
)

// ParseRole accepts any casing of a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RolePlayer, RoleOrganizer, RoleAdmin:
		return r, true
	}
	return "", false
}

// Identity is the verified caller of an operation.
type Identity struct {
	UserID uint
	Role   Role
}

// HasRole reports whether the identity holds any of roles.
func (i Identity) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanManage reports whether the identity may act on a resource owned by ownerID.
func (i Identity) CanManage(ownerID uint) bool {
	return i.IsAdmin() || i.UserID == ownerID
}

const ContextIdentityKey = "identity"

func SetIdentity(c *gin.Context, id Identity) {
	c.Set(ContextIdentityKey, id)
}

// IdentityFromContext returns the identity stored by the auth middleware.
func IdentityFromContext(c *gin.Context) (Identity, error) {
	v, exists := c.Get(ContextIdentityKey)
	if !exists {
		return Identity{}, errors.New("identity not found in context")
	}
	id, ok := v.(Identity)
	if !ok {
		return Identity{}, fmt.Errorf("identity has unexpected type: %T", v)
	}
	return id, nil
}
