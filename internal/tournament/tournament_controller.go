package tournament

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/DhavalSuthar-24/tourney/internal/common"
	"github.com/DhavalSuthar-24/tourney/internal/middleware"
	"github.com/DhavalSuthar-24/tourney/pkg/responses"
	"github.com/DhavalSuthar-24/tourney/pkg/validator"
)

type TournamentController struct {
	service *Service
}

func NewTournamentController(service *Service) *TournamentController {
	return &TournamentController{service: service}
}

type CreateTournamentRequest struct {
	Title           string          `json:"title" binding:"required,min=3,max=200"`
	Description     string          `json:"description" binding:"omitempty,max=5000"`
	Game            string          `json:"game" binding:"required,max=100"`
	EntryFee        decimal.Decimal `json:"entryFee"`
	PrizePool       decimal.Decimal `json:"prizePool"`
	MaxParticipants int             `json:"maxParticipants" binding:"omitempty,min=1,max=100000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateTournament godoc
// @Summary Create a tournament
// @Description Organizers and admins create a tournament in DRAFT status
// @Tags Tournaments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tournament body CreateTournamentRequest true "Tournament"
// @Success 201 {object} responses.SuccessResponse{data=Tournament}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Router /tournament/create [post]
func (tc *TournamentController) CreateTournament(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return
	}

	var req CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	t, err := tc.service.Create(id, CreateInput{
		Title:           req.Title,
		Description:     req.Description,
		Game:            req.Game,
		EntryFee:        req.EntryFee,
		PrizePool:       req.PrizePool,
		MaxParticipants: req.MaxParticipants,
	})
	if err != nil {
		responses.SendServiceError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Tournament created", t)
}

// GetAllTournaments godoc
// @Summary List tournaments
// @Description Players only see tournaments open for registration
// @Tags Tournaments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.SuccessResponse{data=[]Tournament}
// @Router /tournament [get]
func (tc *TournamentController) GetAllTournaments(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return
	}

	ts, err := tc.service.List(id)
	if err != nil {
		responses.SendServiceError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Tournaments fetched", ts)
}

// GetTournamentByID godoc
// @Summary Get a tournament
// @Tags Tournaments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse{data=Tournament}
// @Failure 404 {object} responses.ErrorResponse
// @Router /tournament/{id} [get]
func (tc *TournamentController) GetTournamentByID(c *gin.Context) {
	tournamentID, err := common.ParamID(c, "id")
	if err != nil {
		responses.SendServiceError(c, err)
		return
	}

	t, err := tc.service.Get(tournamentID)
	if err != nil {
		responses.SendServiceError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Tournament fetched", t)
}

// GetMyTournaments godoc
// @Summary Tournaments owned by the caller
// @Tags Tournaments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.SuccessResponse{data=[]WithEntrants}
// @Failure 403 {object} responses.ErrorResponse
// @Router /tournament/my [get]
func (tc *TournamentController) GetMyTournaments(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return
	}

	ts, err := tc.service.Mine(id)
	if err != nil {
		responses.SendServiceError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Tournaments fetched", ts)
}

// GetTournamentRegistrations godoc
// @Summary Registrations of a tournament
// @Tags Tournaments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse{data=[]Entrant}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /tournament/{id}/registrations [get]
func (tc *TournamentController) GetTournamentRegistrations(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return
	}
	tournamentID, err := common.ParamID(c, "id")
	if err != nil {
		responses.SendServiceError(c, err)
		return
	}

	entrants, err := tc.service.Entrants(id, tournamentID)
	if err != nil {
		responses.SendServiceError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Registrations fetched", entrants)
}

// UpdateTournamentStatus godoc
// @Summary Change tournament status
// @Description Any of DRAFT, REGISTRATION, LIVE, COMPLETED. Owner or admin only.
// @Tags Tournaments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tournament ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} responses.SuccessResponse{data=Tournament}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /tournament/{id}/status [patch]
func (tc *TournamentController) UpdateTournamentStatus(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return
	}
	tournamentID, err := common.ParamID(c, "id")
	if err != nil {
		responses.SendServiceError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	t, err := tc.service.UpdateStatus(id, tournamentID, req.Status)
	if err != nil {
		responses.SendServiceError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Tournament status updated", t)
}
