package tournament

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/config"
	"github.com/DhavalSuthar-24/tourney/internal/middleware"
	"github.com/DhavalSuthar-24/tourney/pkg/rmiddleware"
)

func RegisterTournamentRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, entrants EntrantLister, logger *zap.Logger) {
	tournamentController := NewTournamentController(NewService(NewRepository(db), entrants, logger))

	tournaments := router.Group("/tournament")
	tournaments.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		tournaments.GET("", tournamentController.GetAllTournaments)
		tournaments.GET("/:id", tournamentController.GetTournamentByID)
		tournaments.GET("/:id/registrations", tournamentController.GetTournamentRegistrations)
		tournaments.PATCH("/:id/status", tournamentController.UpdateTournamentStatus)

		manage := tournaments.Group("")
		manage.Use(rmiddleware.OrganizerOrAdminMiddleware())
		{
			manage.POST("/create", tournamentController.CreateTournament)
			manage.GET("/my", tournamentController.GetMyTournaments)
		}
	}
}
