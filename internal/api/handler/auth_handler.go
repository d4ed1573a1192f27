package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/solosphere/server/internal/api/dto"
	"github.com/solosphere/server/internal/auth"
)

// IssueToken handles POST /jwt
// Signs a session token for the given email and sets it as an httpOnly cookie
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req dto.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	token, err := h.tokens.Issue(req.Email)
	if err != nil {
		h.logger.Error("Failed to issue token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to issue token",
		})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, token, int(h.tokens.TTL().Seconds()), "/", "", h.secureCookie, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// Logout handles POST /logout
// Clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.secureCookie, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
