package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/tourney/internal/common"
	"github.com/DhavalSuthar-24/tourney/internal/middleware"
	"github.com/DhavalSuthar-24/tourney/pkg/responses"
)

type UserController struct {
	repo Repository
}

func NewUserController(repo Repository) *UserController {
	return &UserController{repo: repo}
}

// GetProfile godoc
// @Summary Current user profile
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.SuccessResponse{data=Profile}
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return
	}

	u, err := uc.repo.GetByID(id.UserID)
	if err != nil {
		if common.IsNotFound(err) {
			responses.NotFound(c, "User")
			return
		}
		responses.SendServiceError(c, common.StoreFailure("load user", err))
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Profile fetched", u.Profile())
}
