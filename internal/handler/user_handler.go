package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jskalc/vault-api/internal/dto"
	"github.com/jskalc/vault-api/internal/service"
)

// UserHandler handles self-service account requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Show returns the caller's account
// @Summary Get own account
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DataResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/user [get]
func (h *UserHandler) Show(c *gin.Context) {
	user, err := h.userService.Show(c.Request.Context(), principalID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Resource does not exist."})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.DataResponse{Data: dto.NewUserResource(user)})
}

// Update edits the caller's profile
// @Summary Update own account
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateUserRequest true "Profile update"
// @Success 200 {object} dto.MessageDataResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Router /v1/user [put]
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), principalID(c), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Resource does not exist."})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageDataResponse{
		Message: "User was updated.",
		Data:    dto.NewUserResource(user),
	})
}

// Delete removes the caller's account and everything it owns
// @Summary Delete own account
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/user [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), principalID(c)); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Resource does not exist."})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: "User was deleted successfully."})
}
