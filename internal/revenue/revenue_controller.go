package revenue

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/tourney/internal/common"
	"github.com/DhavalSuthar-24/tourney/internal/middleware"
	"github.com/DhavalSuthar-24/tourney/pkg/responses"
)

type RevenueController struct {
	service *Service
}

func NewRevenueController(service *Service) *RevenueController {
	return &RevenueController{service: service}
}

// GetTournamentRevenue godoc
// @Summary Revenue of one tournament
// @Tags Payment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse{data=TournamentRevenue}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /payment/tournament/{id} [get]
func (rc *RevenueController) GetTournamentRevenue(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return
	}
	tournamentID, err := common.ParamID(c, "id")
	if err != nil {
		responses.SendServiceError(c, err)
		return
	}

	out, err := rc.service.TournamentRevenue(id, tournamentID)
	if err != nil {
		responses.SendServiceError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Tournament revenue fetched", out)
}

// GetOrganizerDashboard godoc
// @Summary Revenue across the caller's tournaments
// @Tags Payment
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.SuccessResponse{data=Dashboard}
// @Failure 403 {object} responses.ErrorResponse
// @Router /payment/dashboard [get]
func (rc *RevenueController) GetOrganizerDashboard(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return
	}

	out, err := rc.service.OrganizerDashboard(id)
	if err != nil {
		responses.SendServiceError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Dashboard fetched", out)
}

// GetPlayerPaymentHistory godoc
// @Summary The caller's payment history
// @Tags Payment
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.SuccessResponse{data=History}
// @Failure 403 {object} responses.ErrorResponse
// @Router /payment/my-history [get]
func (rc *RevenueController) GetPlayerPaymentHistory(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return
	}

	out, err := rc.service.PlayerHistory(id)
	if err != nil {
		responses.SendServiceError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Payment history fetched", out)
}
