package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/praxis-events/registration-api/internal/dto"
	"github.com/praxis-events/registration-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	authSvc := service.NewAuthService(service.AuthConfig{
		AdminEmail:        "admin@example.com",
		AdminPasswordHash: string(hash),
		TokenSecret:       "test-secret",
		TokenExpiry:       time.Hour,
	})

	resp, err := authSvc.Login(dto.LoginRequest{Email: "admin@example.com", Password: "s3cret"})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected", JWT(authSvc), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, resp.Token
}

func TestJWTAllowsValidToken(t *testing.T) {
	r, token := newProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestJWTRejectsMissingHeader(t *testing.T) {
	r, _ := newProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTRejectsMalformedHeader(t *testing.T) {
	r, token := newProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTRejectsForgedToken(t *testing.T) {
	r, _ := newProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
