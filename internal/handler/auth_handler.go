package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jskalc/vault-api/internal/dto"
	"github.com/jskalc/vault-api/internal/service"
)

// AuthHandler handles registration, login and logout requests
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration request"
// @Success 201 {object} dto.MessageDataResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
				Message: "The given data was invalid.",
				Errors:  map[string][]string{"email": {"This email is already in use."}},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, dto.MessageDataResponse{
		Message: "User was created.",
		Data:    dto.NewUserResource(user),
	})
}

// Login handles user authentication
// @Summary Authenticate and obtain a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Router /v1/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User could not be authenticated."})
		case errors.Is(err, service.ErrEmailNotVerified):
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "You first need to verify your email."})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Success: dto.TokenPayload{Token: token}})
}

// Logout revokes the caller's current bearer token
// @Summary Log out
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/logout [delete]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), principalID(c), c.GetString(ctxRawToken)); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: "User has been logged out."})
}
