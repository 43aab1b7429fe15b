package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souma9830/travel-agency-website/internal/models"
	"github.com/souma9830/travel-agency-website/internal/services"
)

type fakeOAuthService struct {
	authURL     string
	authErr     error
	callbackErr error
	user        *models.User
	token       string
}

func (f *fakeOAuthService) AuthURL(ctx context.Context) (string, error) {
	return f.authURL, f.authErr
}

func (f *fakeOAuthService) HandleCallback(ctx context.Context, code, state string) (*models.User, string, error) {
	if f.callbackErr != nil {
		return nil, "", f.callbackErr
	}
	return f.user, f.token, nil
}

const frontend = "http://localhost:5500"

func newOAuthRouter(svc services.OAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewOAuthHandler(svc, frontend)
	r.GET("/api/oauth/google", h.GoogleAuth)
	r.GET("/api/oauth/callback/google", h.GoogleCallback)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGoogleAuthRedirectsToProvider(t *testing.T) {
	r := newOAuthRouter(&fakeOAuthService{authURL: "https://accounts.google.com/o/oauth2/v2/auth?x=1"})
	w := get(r, "/api/oauth/google")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/v2/auth?x=1", w.Header().Get("Location"))
}

func TestGoogleCallbackErrorRedirects(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{services.ErrOAuthCodeMissing, "oauth_code_missing"},
		{services.ErrOAuthStateMismatch, "oauth_state_mismatch"},
		{services.ErrOAuthTokenExchange, "oauth_token_failed"},
		{services.ErrOAuthUserinfo, "oauth_userinfo_failed"},
		{assert.AnError, "oauth_server_error"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			r := newOAuthRouter(&fakeOAuthService{callbackErr: tc.err})
			w := get(r, "/api/oauth/callback/google?code=c&state=s")

			// always a redirect, never a JSON body
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, frontend+"?error="+tc.code, w.Header().Get("Location"))
		})
	}
}

func TestGoogleCallbackSuccessRedirect(t *testing.T) {
	svc := &fakeOAuthService{
		user:  &models.User{ID: 7, Name: "Alice", Email: "alice@x.com"},
		token: "signed-token",
	}
	r := newOAuthRouter(svc)
	w := get(r, "/api/oauth/callback/google?code=c&state=s")

	assert.Equal(t, http.StatusFound, w.Code)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	q := loc.Query()
	assert.Equal(t, "signed-token", q.Get("token"))

	var user map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(q.Get("user")), &user))
	assert.Equal(t, float64(7), user["id"])
	assert.Equal(t, "alice@x.com", user["email"])
}
