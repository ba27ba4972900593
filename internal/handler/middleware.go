package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jskalc/vault-api/internal/dto"
	"github.com/jskalc/vault-api/internal/service"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	ctxUserID   = "user_id"
	ctxEmail    = "email"
	ctxClaims   = "claims"
	ctxRawToken = "raw_token"
)

// AuthMiddleware validates the bearer token and adds the principal to the
// request context. The raw token is kept so logout can revoke it.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User could not be authenticated."})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User could not be authenticated."})
			c.Abort()
			return
		}
		token := parts[1]

		claims, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "User could not be authenticated."})
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxClaims, claims)
		c.Set(ctxRawToken, token)

		c.Next()
	}
}

// principalID returns the authenticated user id set by AuthMiddleware
func principalID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}
