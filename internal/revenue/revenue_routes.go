package revenue

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/config"
	"github.com/DhavalSuthar-24/tourney/internal/middleware"
	"github.com/DhavalSuthar-24/tourney/internal/payment"
	"github.com/DhavalSuthar-24/tourney/internal/tournament"
)

func RegisterRevenueRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	revenueController := NewRevenueController(NewService(payment.NewRepository(db), tournament.NewRepository(db)))

	revenueGroup := router.Group("/payment")
	revenueGroup.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		revenueGroup.GET("/tournament/:id", revenueController.GetTournamentRevenue)
		revenueGroup.GET("/dashboard", revenueController.GetOrganizerDashboard)
		revenueGroup.GET("/my-history", revenueController.GetPlayerPaymentHistory)
	}
}
