package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	sharedauth "lagscope-backend/internal/shared/auth"
	"lagscope-backend/internal/shared/config"
	"lagscope-backend/internal/shared/server/middleware"
	"lagscope-backend/internal/shared/server/respond"
	"lagscope-backend/internal/shared/telemetry"
)

const (
	loginStateTTL = 5 * time.Minute
	userinfoURL   = "https://openidconnect.googleapis.com/v1/userinfo"
)

// GoogleService runs the Google OAuth login flow and redirects back to the UI
// with a signed first-party token. Subjects are namespaced "google:<sub>" so
// they can never collide with guest identities.
type GoogleService struct {
	conf       *oauth2.Config
	uiRedirect string
	states     *loginStates
}

// NewGoogleService builds a GoogleService from application config.
func NewGoogleService(cfg config.Config) *GoogleService {
	return &GoogleService{
		conf: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		uiRedirect: cfg.UIRedirectURL,
		states:     newLoginStates(),
	}
}

// RegisterRoutes attaches the login flow routes.
func (s *GoogleService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/google/start", s.start)
	rg.GET("/auth/google/callback", s.callback)
}

func (s *GoogleService) configured() bool {
	return s.conf.ClientID != "" && s.conf.ClientSecret != "" && s.conf.RedirectURL != "" && s.uiRedirect != ""
}

func (s *GoogleService) start(c *gin.Context) {
	if !s.configured() {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "Google auth not configured", nil)
		return
	}

	state := uuid.NewString()
	s.states.issue(state)

	telemetry.Info("auth.login.start", map[string]any{
		"request_id": middleware.RequestIDFromContext(c),
	})
	c.Redirect(http.StatusFound, s.conf.AuthCodeURL(state))
}

func (s *GoogleService) callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}
	if !s.states.consume(state) {
		telemetry.Warn("auth.login.rejected", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"reason":     "unknown or expired state",
		})
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid or expired state", nil)
		return
	}

	ctx := c.Request.Context()
	token, err := s.conf.Exchange(ctx, code)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to exchange code", nil)
		return
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil || profile.Sub == "" {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to fetch user profile", nil)
		return
	}

	signed, err := sharedauth.SignJWT(sharedauth.Claims{
		Sub:     "google:" + profile.Sub,
		Email:   profile.Email,
		Name:    profile.Name,
		Picture: profile.Picture,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}

	target, err := redirectWithToken(s.uiRedirect, signed)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to redirect", nil)
		return
	}

	telemetry.Info("auth.login.complete", map[string]any{
		"request_id": middleware.RequestIDFromContext(c),
		"user_id":    "google:" + profile.Sub,
	})
	c.Redirect(http.StatusFound, target)
}

type googleProfile struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *GoogleService) fetchProfile(ctx context.Context, token *oauth2.Token) (googleProfile, error) {
	resp, err := s.conf.Client(ctx, token).Get(userinfoURL)
	if err != nil {
		return googleProfile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return googleProfile{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}
	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return googleProfile{}, err
	}
	return profile, nil
}

// loginStates holds one-shot OAuth state nonces. Stale entries are pruned
// whenever a new one is issued, so abandoned logins do not accumulate.
type loginStates struct {
	mu      sync.Mutex
	pending map[string]time.Time
}

func newLoginStates() *loginStates {
	return &loginStates{pending: make(map[string]time.Time)}
}

func (l *loginStates) issue(state string) {
	now := time.Now()
	l.mu.Lock()
	for pending, deadline := range l.pending {
		if now.After(deadline) {
			delete(l.pending, pending)
		}
	}
	l.pending[state] = now.Add(loginStateTTL)
	l.mu.Unlock()
}

func (l *loginStates) consume(state string) bool {
	l.mu.Lock()
	deadline, ok := l.pending[state]
	delete(l.pending, state)
	l.mu.Unlock()
	return ok && time.Now().Before(deadline)
}

func redirectWithToken(rawURL, token string) (string, error) {
	if rawURL == "" {
		return "", errors.New("redirect url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
