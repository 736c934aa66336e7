package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/security"
)

// Authenticator turns a bearer token into the acting user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (security.Actor, error)
}

// Auth middleware validates the bearer token and puts the actor on the request context.
func Auth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		actor, err := authenticator.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		ctx := appctx.WithActor(c.Request.Context(), actor)
		c.Request = c.Request.WithContext(ctx)
		c.Set("actor_id", actor.ID)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
