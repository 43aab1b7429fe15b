package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souma9830/travel-agency-website/internal/services"
)

func newProtectedRouter(tokens services.TokenService) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	var reached int
	r := gin.New()
	r.GET("/protected", UserAuth(tokens), func(c *gin.Context) {
		reached++
		userID, _ := c.Get(ContextUserID)
		c.JSON(http.StatusOK, gin.H{"success": true, "user_id": userID})
	})
	return r, &reached
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("token", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserAuthMissingHeader(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	r, reached := newProtectedRouter(tokens)

	w := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Zero(t, *reached, "protected handler must not run")
}

func TestUserAuthGarbageToken(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	r, reached := newProtectedRouter(tokens)

	w := doGet(r, "definitely-not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, *reached)
}

func TestUserAuthWrongSecret(t *testing.T) {
	r, reached := newProtectedRouter(services.NewTokenService("test-secret"))

	foreign, err := services.NewTokenService("other-secret").Issue(42)
	require.NoError(t, err)

	w := doGet(r, foreign)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, *reached)
}

func TestUserAuthExpiredToken(t *testing.T) {
	r, reached := newProtectedRouter(services.NewTokenService("test-secret"))

	claims := &services.SessionClaims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	w := doGet(r, expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, *reached)
}

func TestUserAuthValidToken(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	r, reached := newProtectedRouter(tokens)

	token, err := tokens.Issue(42)
	require.NoError(t, err)

	w := doGet(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *reached)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}
