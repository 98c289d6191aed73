package rmiddleware

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/tourney/internal/common"
	"github.com/DhavalSuthar-24/tourney/pkg/responses"
)

// RoleMiddleware allows the request through when the authenticated identity
// holds one of requiredRoles. It must run after middleware.AuthMiddleware.
func RoleMiddleware(requiredRoles ...common.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := common.IdentityFromContext(c)
		if err != nil {
			responses.Unauthorized(c, "Unauthorized: "+err.Error())
			return
		}

		if !id.HasRole(requiredRoles...) {
			responses.Forbidden(c, "You don't have permission to access this resource")
			return
		}

		c.Next()
	}
}

// OrganizerOrAdminMiddleware guards tournament management routes.
func OrganizerOrAdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(common.RoleOrganizer, common.RoleAdmin)
}
