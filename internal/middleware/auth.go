package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/internal/common"
	"github.com/DhavalSuthar-24/tourney/pkg/responses"
	"github.com/DhavalSuthar-24/tourney/pkg/token"
)

// AuthMiddleware verifies the bearer token and stores the caller's identity.
// The role is re-read from the users table so a demoted account loses access
// before its token expires.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.SendError(c, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			responses.SendError(c, http.StatusUnauthorized, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			responses.SendError(c, http.StatusUnauthorized, "Invalid or expired token: "+err.Error())
			return
		}

		var role string
		if err := db.Table("users").Select("role").Where("id = ? AND deleted_at IS NULL", claims.UserID).Scan(&role).Error; err != nil || role == "" {
			responses.SendError(c, http.StatusUnauthorized, "User not found or inactive")
			return
		}

		common.SetIdentity(c, common.Identity{UserID: claims.UserID, Role: common.Role(role)})
		c.Next()
	}
}

// CurrentIdentity returns the identity set by AuthMiddleware, aborting with
// 401 when absent.
func CurrentIdentity(c *gin.Context) (common.Identity, bool) {
	id, err := common.IdentityFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "Unauthorized: "+err.Error())
		return common.Identity{}, false
	}
	return id, true
}
