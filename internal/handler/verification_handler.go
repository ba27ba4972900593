package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jskalc/vault-api/internal/dto"
	"github.com/jskalc/vault-api/internal/service"
)

// VerificationHandler handles the email verification flow
type VerificationHandler struct {
	verificationService service.VerificationService
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verificationService service.VerificationService) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
	}
}

// RequestUpdate starts an email change and mails the verification token to
// the new address
// @Summary Request an email change
// @Tags email
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EmailUpdateRequest true "New address"
// @Success 200 {object} dto.SuccessResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Router /v1/email/update [post]
func (h *VerificationHandler) RequestUpdate(c *gin.Context) {
	var req dto.EmailUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.verificationService.RequestChange(c.Request.Context(), principalID(c), req.EmailUpdate); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
				Message: "The given data was invalid.",
				Errors:  map[string][]string{"email_update": {"This email is already in use."}},
			})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Resource does not exist."})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: "We have e-mailed you your e-mail verification link!"})
}

// Verify consumes a verification token from the emailed link
// @Summary Verify an email address
// @Tags email
// @Produce json
// @Param token path string true "Verification token"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/email/verify/{token} [get]
func (h *VerificationHandler) Verify(c *gin.Context) {
	if err := h.verificationService.Verify(c.Request.Context(), c.Param("token")); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "This e-mail verification token is invalid."})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "This email is already in use."})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Resource does not exist."})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: "Your e-mail has been verified. Proceed to login."})
}
