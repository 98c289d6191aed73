package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/config"
	"github.com/DhavalSuthar-24/tourney/internal/user"
)

func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, logger *zap.Logger) {
	authService := NewService(user.NewRepository(db), TokenConfig{
		Secret:        appConfig.JWT.AccessTokenSecret,
		Issuer:        appConfig.JWT.Issuer,
		ExpiryMinutes: appConfig.JWT.AccessTokenExpiryMinutes,
	}, logger)
	authController := NewAuthController(authService)

	authPublic := router.Group("/auth")
	{
		authPublic.POST("/register", authController.Register)
		authPublic.POST("/login", authController.Login)
	}
}
