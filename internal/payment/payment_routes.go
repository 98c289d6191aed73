package payment

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/tourney/config"
	"github.com/DhavalSuthar-24/tourney/internal/middleware"
	"github.com/DhavalSuthar-24/tourney/internal/registration"
	"github.com/DhavalSuthar-24/tourney/internal/tournament"
	"github.com/DhavalSuthar-24/tourney/internal/user"
)

// RegisterPaymentRoutes mounts checkout and webhook endpoints. The webhook is
// authenticated by its Stripe signature, not by a bearer token.
func RegisterPaymentRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, provider Provider, logger *zap.Logger) {
	tournaments := tournament.NewRepository(db)
	payments := NewRepository(db)
	registrations := registration.NewService(db, registration.NewRepository(db), tournaments, logger)

	checkout := NewCheckoutService(registrations, provider, CheckoutConfig{
		Currency:   appConfig.Stripe.Currency,
		SuccessURL: appConfig.Stripe.SuccessURL,
		CancelURL:  appConfig.Stripe.CancelURL,
	}, logger)
	reconciler := NewReconciler(provider, payments, user.NewRepository(db), tournaments, NewSettler(db, payments, registrations), logger)
	paymentController := NewPaymentController(checkout, reconciler)

	paymentGroup := router.Group("/payment")
	paymentGroup.POST("/webhook", paymentController.HandleWebhook)

	authenticated := paymentGroup.Group("")
	authenticated.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authenticated.POST("/create-session", paymentController.CreateCheckoutSession)
	}
}
