package registration

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/tourney/internal/middleware"
	"github.com/DhavalSuthar-24/tourney/pkg/responses"
	"github.com/DhavalSuthar-24/tourney/pkg/validator"
)

type RegistrationController struct {
	service *Service
}

func NewRegistrationController(service *Service) *RegistrationController {
	return &RegistrationController{service: service}
}

type JoinRequest struct {
	TournamentID uint `json:"tournamentId" binding:"required,min=1"`
}

// JoinTournament godoc
// @Summary Register for a free tournament
// @Tags Registration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body JoinRequest true "Tournament to join"
// @Success 201 {object} responses.SuccessResponse{data=Registration}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /registration/join [post]
func (rc *RegistrationController) JoinTournament(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	reg, err := rc.service.Register(c.Request.Context(), id, req.TournamentID)
	if err != nil {
		responses.SendServiceError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Registered successfully", reg)
}
