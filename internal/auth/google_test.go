package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"lagscope-backend/internal/shared/config"
)

func newGoogleRouter(cfg config.Config) (*gin.Engine, *GoogleService) {
	gin.SetMode(gin.TestMode)
	svc := NewGoogleService(cfg)
	router := gin.New()
	svc.RegisterRoutes(router.Group("/api/v1"))
	return router, svc
}

func configuredGoogle() config.Config {
	return config.Config{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURL:  "http://localhost:8080/api/v1/auth/google/callback",
		UIRedirectURL:      "http://localhost:3000/login",
	}
}

func TestStartRedirectsToGoogleWithState(t *testing.T) {
	router, svc := newGoogleRouter(configuredGoogle())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", rec.Code, rec.Body.String())
	}
	location, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	if location.Host != "accounts.google.com" {
		t.Fatalf("expected redirect to Google, got %s", location.Host)
	}
	query := location.Query()
	if query.Get("client_id") != "client-id" {
		t.Fatalf("expected client id in redirect, got %q", query.Get("client_id"))
	}
	state := query.Get("state")
	if state == "" {
		t.Fatalf("expected a state nonce in the redirect")
	}
	if !svc.states.consume(state) {
		t.Fatalf("issued state must be pending until the callback")
	}
}

func TestStartFailsWhenUnconfigured(t *testing.T) {
	router, _ := newGoogleRouter(config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without OAuth config, got %d", rec.Code)
	}
}

func TestCallbackRejectsMissingParams(t *testing.T) {
	router, _ := newGoogleRouter(configuredGoogle())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?code=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a missing state, got %d", rec.Code)
	}
}

func TestCallbackRejectsUnknownState(t *testing.T) {
	router, _ := newGoogleRouter(configuredGoogle())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=nope&code=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown state, got %d", rec.Code)
	}
}

func TestLoginStatesAreOneShot(t *testing.T) {
	states := newLoginStates()
	states.issue("abc")

	if !states.consume("abc") {
		t.Fatalf("fresh state must be consumable")
	}
	if states.consume("abc") {
		t.Fatalf("a state must not be consumable twice")
	}
}

func TestLoginStatesExpire(t *testing.T) {
	states := newLoginStates()
	states.pending["stale"] = time.Now().Add(-time.Second)

	if states.consume("stale") {
		t.Fatalf("expired state must be rejected")
	}
}

func TestRedirectWithTokenAppendsQuery(t *testing.T) {
	target, err := redirectWithToken("http://localhost:3000/login?next=%2Fdashboards", "tok-123")
	if err != nil {
		t.Fatalf("redirectWithToken: %v", err)
	}
	u, err := url.Parse(target)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if u.Query().Get("token") != "tok-123" || u.Query().Get("next") != "/dashboards" {
		t.Fatalf("unexpected redirect %s", target)
	}

	if _, err := redirectWithToken("", "tok"); err == nil {
		t.Fatalf("expected an error for an empty redirect url")
	}
}
