package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/classhub-id/academic-eval-api/internal/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, role models.UserRole, expiresIn time.Duration) string {
	t.Helper()
	claims := &models.JWTClaims{
		UserID: "user-1",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func buildProtectedRouter(roles ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("", JWT(testSecret))
	if len(roles) > 0 {
		group.Use(RequireRoles(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		claims, _ := c.Get(ContextUserKey)
		typed := claims.(*models.JWTClaims)
		c.JSON(http.StatusOK, gin.H{"user_id": typed.UserID})
	})
	return router
}

func serve(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestJWTMiddleware(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		resp := serve(buildProtectedRouter(), signToken(t, models.RoleTeacher, time.Hour))
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), "user-1")
	})

	t.Run("missing header", func(t *testing.T) {
		resp := serve(buildProtectedRouter(), "")
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		resp := serve(buildProtectedRouter(), signToken(t, models.RoleTeacher, -time.Hour))
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := serve(buildProtectedRouter(), "not.a.token")
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	t.Run("allowed role", func(t *testing.T) {
		resp := serve(buildProtectedRouter(models.RoleAdmin, models.RoleTeacher), signToken(t, models.RoleTeacher, time.Hour))
		require.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("forbidden role", func(t *testing.T) {
		resp := serve(buildProtectedRouter(models.RoleAdmin), signToken(t, models.RoleStudent, time.Hour))
		require.Equal(t, http.StatusForbidden, resp.Code)
	})
}
