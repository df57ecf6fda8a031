package middleware

import (
	"context"
	"net/http"
	"strings"

	domainUser "contacts-api/internal/domain/user"
	"contacts-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	CurrentUserKey = "currentUser"
)

// CurrentUserResolver resolves an access token to its user.
type CurrentUserResolver interface {
	GetCurrentUser(ctx context.Context, accessToken string) (*domainUser.User, error)
}

// AuthMiddleware extracts the bearer access token and resolves the current
// user. Every failure mode answers the same way so callers cannot distinguish
// a bad signature from an unknown user.
func AuthMiddleware(resolver CurrentUserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
			c.Abort()
			return
		}

		user, err := resolver.GetCurrentUser(c.Request.Context(), parts[1])
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, user)

		c.Next()
	}
}

// GetCurrentUser retrieves the authenticated user from the Gin context.
func GetCurrentUser(c *gin.Context) (*domainUser.User, bool) {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domainUser.User)
	return user, ok
}
