package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jskalc/vault-api/internal/dto"
	"github.com/jskalc/vault-api/internal/service"
)

// PasswordHandler handles the password reset flow
type PasswordHandler struct {
	resetService service.ResetService
}

// NewPasswordHandler creates a new password handler
func NewPasswordHandler(resetService service.ResetService) *PasswordHandler {
	return &PasswordHandler{
		resetService: resetService,
	}
}

// Create starts a password reset and emails the token
// @Summary Request a password reset
// @Tags password
// @Accept json
// @Produce json
// @Param request body dto.PasswordCreateRequest true "Reset request"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Router /v1/password/create [post]
func (h *PasswordHandler) Create(c *gin.Context) {
	var req dto.PasswordCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.resetService.Request(c.Request.Context(), &req); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "We cannot find a user with that e-mail address."})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: "We have e-mailed you your password reset link!"})
}

// Reset consumes a reset token and sets the new password
// @Summary Complete a password reset
// @Tags password
// @Accept json
// @Produce json
// @Param request body dto.PasswordResetRequest true "Reset completion"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Router /v1/password/reset [post]
func (h *PasswordHandler) Reset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.resetService.Reset(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "This password reset token is invalid."})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "We cannot find a user with that e-mail address."})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: "Your password has been reset."})
}
