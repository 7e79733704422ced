package middleware

import (
	"errors"
	"net/http"
	"strings"

	"asha-backend/internal/models"
	"asha-backend/internal/services"
	"asha-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	userIDKey = "userID"
	actorKey  = "actor"
)

// AuthMiddleware verifies the bearer token and stores the user id.
func AuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Header must be "Bearer <token>"
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			utils.APIError(c, http.StatusUnauthorized, "UNAUTHORIZED", "No token provided")
			c.Abort()
			return
		}

		// 2. Verify signature, expiry and payload
		subject, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			message := "Invalid token"
			switch {
			case errors.Is(err, utils.ErrTokenExpired):
				message = "Token expired"
			case errors.Is(err, utils.ErrTokenInvalidPayload):
				message = "Invalid token payload"
			}
			utils.APIError(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
			c.Abort()
			return
		}

		// 3. Subject is always a user_id
		userID := utils.StringToUint64(subject)
		if userID == 0 {
			utils.APIError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token payload")
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// RequireRole resolves the caller and lets it through only with one of
// roles. No roles means any resolvable user.
func RequireRole(identity *services.IdentityService, logger zerolog.Logger, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			utils.APIError(c, http.StatusUnauthorized, "UNAUTHORIZED", "No token provided")
			c.Abort()
			return
		}

		actor, err := identity.Authorize(c.Request.Context(), userID, roles...)
		if err != nil {
			utils.RespondError(c, logger, err)
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

func CurrentUserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok && id != 0
}

func CurrentActor(c *gin.Context) (services.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return services.Actor{}, false
	}
	actor, ok := v.(services.Actor)
	return actor, ok
}
