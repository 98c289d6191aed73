package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/tourney/internal/user"
	"github.com/DhavalSuthar-24/tourney/pkg/responses"
	"github.com/DhavalSuthar-24/tourney/pkg/validator"
)

type AuthController struct {
	service *Service
}

func NewAuthController(service *Service) *AuthController {
	return &AuthController{service: service}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  user.Profile `json:"user"`
}

// Register godoc
// @Summary Create an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Credentials"
// @Success 201 {object} responses.SuccessResponse{data=user.Profile}
// @Failure 400 {object} responses.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	u, err := ac.service.Register(req.Email, req.Password, req.Role)
	if err != nil {
		responses.SendServiceError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "User created successfully", u.Profile())
}

// Login godoc
// @Summary Exchange credentials for an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} responses.SuccessResponse{data=LoginResponse}
// @Failure 400 {object} responses.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	signed, u, err := ac.service.Login(req.Email, req.Password)
	if err != nil {
		responses.SendServiceError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Login successful", LoginResponse{Token: signed, User: u.Profile()})
}
