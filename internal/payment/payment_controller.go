package payment

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/tourney/internal/middleware"
	"github.com/DhavalSuthar-24/tourney/pkg/responses"
	"github.com/DhavalSuthar-24/tourney/pkg/validator"
)

// Stripe payloads are small; anything larger is not a genuine event.
const maxWebhookBytes = 64 << 10

type PaymentController struct {
	checkout   *CheckoutService
	reconciler *Reconciler
}

func NewPaymentController(checkout *CheckoutService, reconciler *Reconciler) *PaymentController {
	return &PaymentController{checkout: checkout, reconciler: reconciler}
}

type CreateSessionRequest struct {
	TournamentID uint `json:"tournamentId" binding:"required,min=1"`
}

// WebhookAck is the body returned for every verified delivery.
type WebhookAck struct {
	Received bool `json:"received"`
}

// CreateCheckoutSession godoc
// @Summary Start a paid registration
// @Description Validates the player against the tournament and returns a Stripe Checkout URL
// @Tags Payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateSessionRequest true "Tournament to pay for"
// @Success 200 {object} responses.SuccessResponse{data=CheckoutSession}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /payment/create-session [post]
func (pc *PaymentController) CreateCheckoutSession(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	session, err := pc.checkout.CreateSession(c.Request.Context(), id, req.TournamentID)
	if err != nil {
		responses.SendServiceError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Checkout session created", session)
}

// HandleWebhook godoc
// @Summary Stripe webhook
// @Description Verifies the Stripe-Signature header and reconciles checkout.session.completed events
// @Tags Payment
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe signature"
// @Success 200 {object} WebhookAck
// @Failure 400 {object} responses.ErrorResponse
// @Router /payment/webhook [post]
func (pc *PaymentController) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes+1))
	if err != nil {
		responses.BadRequest(c, "Webhook Error: could not read body")
		return
	}
	if len(payload) > maxWebhookBytes {
		responses.SendError(c, http.StatusRequestEntityTooLarge, "Webhook Error: payload too large")
		return
	}

	if _, err := pc.reconciler.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		responses.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, WebhookAck{Received: true})
}
