package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	domainUser "contacts-api/internal/domain/user"
	appErrors "contacts-api/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubResolver struct {
	user *domainUser.User
	err  error

	gotToken string
}

func (r *stubResolver) GetCurrentUser(_ context.Context, accessToken string) (*domainUser.User, error) {
	r.gotToken = accessToken
	if r.err != nil {
		return nil, r.err
	}
	return r.user, nil
}

func setupAuthRouter(resolver CurrentUserResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(resolver))
	router.GET("/protected", func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, user.Username)
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		resolver       *stubResolver
		expectedStatus int
	}{
		{
			name:           "missing header",
			authHeader:     "",
			resolver:       &stubResolver{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "not a bearer scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			resolver:       &stubResolver{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "resolver rejects the token",
			authHeader:     "Bearer bad-token",
			resolver:       &stubResolver{err: appErrors.ErrUnauthorized},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "valid token",
			authHeader:     "Bearer good-token",
			resolver:       &stubResolver{user: &domainUser.User{ID: 1, Username: "nick"}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bearer scheme is case-insensitive",
			authHeader:     "bearer good-token",
			resolver:       &stubResolver{user: &domainUser.User{ID: 1, Username: "nick"}},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupAuthRouter(tt.resolver)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "nick", w.Body.String())
				assert.Equal(t, "good-token", tt.resolver.gotToken)
			} else {
				assert.Contains(t, w.Body.String(), "Could not validate credentials")
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setup := func(user *domainUser.User) *gin.Engine {
		router := gin.New()
		router.Use(AuthMiddleware(&stubResolver{user: user}))
		router.GET("/admin", AdminOnly(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	doRequest := func(router *gin.Engine) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("admin passes", func(t *testing.T) {
		w := doRequest(setup(&domainUser.User{ID: 1, Username: "root", Role: domainUser.RoleAdmin}))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		w := doRequest(setup(&domainUser.User{ID: 2, Username: "nick", Role: domainUser.RoleUser}))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Insufficient access rights")
	})
}
