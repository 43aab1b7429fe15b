package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/souma9830/travel-agency-website/internal/services"
)

// OAuthHandler drives the two-step Google federation flow. The user-agent is
// mid-navigation on both steps, so every outcome — including failure — is a
// redirect, never a JSON body.
type OAuthHandler struct {
	oauth       services.OAuthService
	frontendURL string
}

func NewOAuthHandler(oauth services.OAuthService, frontendURL string) *OAuthHandler {
	return &OAuthHandler{oauth: oauth, frontendURL: frontendURL}
}

func (h *OAuthHandler) GoogleAuth(c *gin.Context) {
	authURL, err := h.oauth.AuthURL(c.Request.Context())
	if err != nil {
		log.Printf("[oauth][google] auth url failed: %v", err)
		h.redirectError(c, "oauth_server_error")
		return
	}
	c.Redirect(http.StatusFound, authURL)
}

func (h *OAuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")

	user, token, err := h.oauth.HandleCallback(c.Request.Context(), code, state)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOAuthCodeMissing):
			h.redirectError(c, "oauth_code_missing")
		case errors.Is(err, services.ErrOAuthStateMismatch):
			h.redirectError(c, "oauth_state_mismatch")
		case errors.Is(err, services.ErrOAuthTokenExchange):
			h.redirectError(c, "oauth_token_failed")
		case errors.Is(err, services.ErrOAuthUserinfo):
			h.redirectError(c, "oauth_userinfo_failed")
		default:
			log.Printf("[oauth][google] callback failed: %v", err)
			h.redirectError(c, "oauth_server_error")
		}
		return
	}

	userObj, err := json.Marshal(gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
	if err != nil {
		h.redirectError(c, "oauth_server_error")
		return
	}

	q := url.Values{}
	q.Set("token", token)
	q.Set("user", string(userObj))
	c.Redirect(http.StatusFound, h.frontendURL+"?"+q.Encode())
}

func (h *OAuthHandler) redirectError(c *gin.Context, code string) {
	c.Redirect(http.StatusFound, h.frontendURL+"?error="+code)
}
