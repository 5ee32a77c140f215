package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"bookstore/models"
	"bookstore/repository"
	"bookstore/utils/token"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	CtxUserID   = "userId"
	CtxRole     = "role"
	CtxToken    = "token"
	CtxTokenExp = "tokenExp"
)

// AuthMiddleware accepts "Bearer <jwt>" (or a bare token) and rejects tokens
// that were revoked by logout.
func AuthMiddleware(tokens *token.Manager, blacklist repository.TokenBlacklist, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication token required"})
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		revoked, err := blacklist.Contains(ctx, raw)
		if err != nil {
			log.Error().Err(err).Msg("blacklist lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token has been revoked"})
			return
		}

		c.Set(CtxUserID, claims.UserID())
		c.Set(CtxRole, claims.Role)
		c.Set(CtxToken, raw)
		if claims.ExpiresAt != nil {
			c.Set(CtxTokenExp, claims.ExpiresAt.Time)
		}
		c.Next()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied: admin only"})
			return
		}
		c.Next()
	}
}
