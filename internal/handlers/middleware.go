package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ctxUserID is the gin context key holding the authenticated operator ID.
const ctxUserID = "userId"

const (
	errNoAuthHeader  = "missing Authorization header"
	errBadAuthHeader = "invalid Authorization header format"
	errBadToken      = "invalid or expired token"
)

// userIdMiddleware guards /api/v1: every rig command needs an operator token.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errNoAuthHeader})
		return
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || strings.TrimSpace(token) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errBadAuthHeader})
		return
	}

	userID, err := h.services.ParseToken(strings.TrimSpace(token))
	if err != nil {
		h.log.Infow("auth_token_rejected", "path", c.FullPath(), "err", err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errBadToken})
		return
	}

	c.Set(ctxUserID, userID)
	c.Next()
}
