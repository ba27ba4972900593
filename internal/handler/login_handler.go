package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jskalc/vault-api/internal/dto"
	"github.com/jskalc/vault-api/internal/service"
)

// LoginHandler handles credential record requests
type LoginHandler struct {
	loginService service.LoginService
	pageSize     int
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(loginService service.LoginService, pageSize int) *LoginHandler {
	return &LoginHandler{
		loginService: loginService,
		pageSize:     pageSize,
	}
}

// respondError maps business errors on credential records to HTTP responses
func (h *LoginHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Resource does not exist."})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "You cannot access this resource."})
	case errors.Is(err, service.ErrNoLogins):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "User does not own any logins."})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	}
}

// List returns one page of the caller's credential records
// @Summary List own logins
// @Tags logins
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, starting at 1"
// @Success 200 {object} dto.LoginPage
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/logins [get]
func (h *LoginHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	logins, total, err := h.loginService.List(c.Request.Context(), principalID(c), page, h.pageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewLoginPage(logins, total, page, h.pageSize))
}

// Create stores a new credential record for the caller
// @Summary Create a login
// @Tags logins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLoginRequest true "Credential record"
// @Success 201 {object} dto.MessageDataResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Router /v1/logins [post]
func (h *LoginHandler) Create(c *gin.Context) {
	var req dto.CreateLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	login, err := h.loginService.Create(c.Request.Context(), principalID(c), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MessageDataResponse{
		Message: "Login was created.",
		Data:    dto.NewLoginResource(login),
	})
}

// Show returns a single owned credential record
// @Summary Get a login
// @Tags logins
// @Produce json
// @Security BearerAuth
// @Param id path string true "Login id"
// @Success 200 {object} dto.DataResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /v1/logins/{id} [get]
func (h *LoginHandler) Show(c *gin.Context) {
	login, err := h.loginService.Get(c.Request.Context(), principalID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DataResponse{Data: dto.NewLoginResource(login)})
}

// Update edits an owned credential record
// @Summary Update a login
// @Tags logins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Login id"
// @Param request body dto.UpdateLoginRequest true "Partial update"
// @Success 200 {object} dto.MessageDataResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /v1/logins/{id} [put]
func (h *LoginHandler) Update(c *gin.Context) {
	var req dto.UpdateLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	login, err := h.loginService.Update(c.Request.Context(), principalID(c), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageDataResponse{
		Message: "Login was updated.",
		Data:    dto.NewLoginResource(login),
	})
}

// Delete removes an owned credential record
// @Summary Delete a login
// @Tags logins
// @Produce json
// @Security BearerAuth
// @Param id path string true "Login id"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /v1/logins/{id} [delete]
func (h *LoginHandler) Delete(c *gin.Context) {
	if err := h.loginService.Delete(c.Request.Context(), principalID(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: "Login was deleted successfully."})
}
