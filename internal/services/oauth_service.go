package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/souma9830/travel-agency-website/internal/models"
	"github.com/souma9830/travel-agency-website/internal/repositories"
	"github.com/souma9830/travel-agency-website/internal/utils"
)

var (
	ErrOAuthCodeMissing   = errors.New("oauth code missing")
	ErrOAuthStateMismatch = errors.New("oauth state mismatch")
	ErrOAuthTokenExchange = errors.New("oauth token exchange failed")
	ErrOAuthUserinfo      = errors.New("oauth userinfo fetch failed")
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	oauthStateTTL    = 10 * time.Minute
	oauthHTTPTimeout = 10 * time.Second
)

// OAuthService drives the Google authorization-code exchange and reconciles
// the provider identity to a local account.
type OAuthService interface {
	// AuthURL builds the provider-authorization redirect, registering a
	// one-shot CSRF state nonce for the flow.
	AuthURL(ctx context.Context) (string, error)
	// HandleCallback redeems the code, fetches the profile, finds or creates
	// the local user, and issues a session token.
	HandleCallback(ctx context.Context, code, state string) (*models.User, string, error)
}

type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	APIBaseURL   string
}

type oauthService struct {
	cfg    OAuthConfig
	users  repositories.UserRepository
	states repositories.OAuthStateRepository
	auth   AuthService
	tokens TokenService
	client *http.Client

	// provider endpoints, overridable in tests
	authEndpoint     string
	tokenEndpoint    string
	userinfoEndpoint string
}

func NewOAuthService(
	cfg OAuthConfig,
	users repositories.UserRepository,
	states repositories.OAuthStateRepository,
	auth AuthService,
	tokens TokenService,
) OAuthService {
	return &oauthService{
		cfg:              cfg,
		users:            users,
		states:           states,
		auth:             auth,
		tokens:           tokens,
		client:           &http.Client{Timeout: oauthHTTPTimeout},
		authEndpoint:     googleAuthURL,
		tokenEndpoint:    googleTokenURL,
		userinfoEndpoint: googleUserinfoURL,
	}
}

func (s *oauthService) redirectURI() string {
	return s.cfg.APIBaseURL + "/api/oauth/callback/google"
}

func (s *oauthService) AuthURL(ctx context.Context) (string, error) {
	state := uuid.NewString()
	if err := s.states.Save(ctx, state, oauthStateTTL); err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("redirect_uri", s.redirectURI())
	q.Set("client_id", s.cfg.ClientID)
	q.Set("access_type", "offline")
	q.Set("response_type", "code")
	q.Set("prompt", "consent")
	q.Set("scope", strings.Join([]string{
		"https://www.googleapis.com/auth/userinfo.profile",
		"https://www.googleapis.com/auth/userinfo.email",
	}, " "))
	q.Set("state", state)

	return s.authEndpoint + "?" + q.Encode(), nil
}

type oauthTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type oauthProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *oauthService) HandleCallback(ctx context.Context, code, state string) (*models.User, string, error) {
	// a missing code fails before any network call
	if code == "" {
		return nil, "", ErrOAuthCodeMissing
	}
	if err := s.states.Consume(ctx, state); err != nil {
		if errors.Is(err, repositories.ErrStateNotFound) {
			return nil, "", ErrOAuthStateMismatch
		}
		return nil, "", err
	}

	accessToken, err := s.exchangeCode(ctx, code)
	if err != nil {
		return nil, "", err
	}

	profile, err := s.fetchProfile(ctx, accessToken)
	if err != nil {
		return nil, "", err
	}

	user, err := s.reconcile(profile)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *oauthService) exchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", s.cfg.ClientID)
	form.Set("client_secret", s.cfg.ClientSecret)
	form.Set("redirect_uri", s.redirectURI())
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOAuthTokenExchange, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOAuthTokenExchange, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("[oauth][google] token exchange failed: status=%d body=%s", resp.StatusCode, body)
		return "", ErrOAuthTokenExchange
	}

	var tok oauthTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil || tok.AccessToken == "" {
		return "", ErrOAuthTokenExchange
	}
	return tok.AccessToken, nil
}

func (s *oauthService) fetchProfile(ctx context.Context, accessToken string) (*oauthProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userinfoEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOAuthUserinfo, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOAuthUserinfo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[oauth][google] userinfo fetch failed: status=%d", resp.StatusCode)
		return nil, ErrOAuthUserinfo
	}

	var profile oauthProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil || profile.Email == "" {
		return nil, ErrOAuthUserinfo
	}
	return &profile, nil
}

func newPlaceholderPassword() (string, error) {
	return utils.NewRandomSecret(16)
}

// reconcile maps the provider identity onto a local account, creating one
// with a random, never-transmitted placeholder password when absent.
func (s *oauthService) reconcile(profile *oauthProfile) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(profile.Email))

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	placeholder, err := newPlaceholderPassword()
	if err != nil {
		return nil, err
	}
	hash, err := s.auth.HashPassword(placeholder)
	if err != nil {
		return nil, err
	}

	user = &models.User{
		Name:         profile.Name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(user); err != nil {
		// a concurrent callback for the same identity may win the create
		if errors.Is(err, repositories.ErrEmailTaken) {
			return s.users.GetByEmail(email)
		}
		return nil, err
	}
	log.Printf("[oauth][google] federated user created id=%d", user.ID)
	return user, nil
}
