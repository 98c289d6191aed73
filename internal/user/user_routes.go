package user

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/config"
	"github.com/DhavalSuthar-24/tourney/internal/middleware"
)

func RegisterUserRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	userController := NewUserController(NewRepository(db))

	userGroup := router.Group("/user")
	userGroup.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		userGroup.GET("/profile", userController.GetProfile)
	}
}
