package registration

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/config"
	"github.com/DhavalSuthar-24/tourney/internal/middleware"
	"github.com/DhavalSuthar-24/tourney/internal/tournament"
)

func RegisterRegistrationRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, logger *zap.Logger) {
	service := NewService(db, NewRepository(db), tournament.NewRepository(db), logger)
	registrationController := NewRegistrationController(service)

	registrations := router.Group("/registration")
	registrations.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		registrations.POST("/join", registrationController.JoinTournament)
	}
}
