package dashboards

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newPostgrestTestRepo(t *testing.T, handler http.HandlerFunc) *PostgrestRepo {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	repo, err := NewPostgrestRepo(srv.URL, "anon-key", "test-jwt-secret")
	if err != nil {
		t.Fatalf("NewPostgrestRepo: %v", err)
	}
	return repo
}

func TestPostgrestGetByIDDecodesRow(t *testing.T) {
	var gotAuth, gotAPIKey string
	repo := newPostgrestTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"dash-1","user_id":"google:alice","title":"Raid night","data":{"overallScore":72},"created_at":"2024-05-01T10:00:00Z"}]`))
	})

	got, err := repo.GetByID(context.Background(), "dash-1", "google:alice")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ID != "dash-1" || got.Title != "Raid night" {
		t.Fatalf("unexpected dashboard %+v", got)
	}
	if !strings.HasPrefix(gotAuth, "Bearer ") {
		t.Fatalf("expected a bearer token on the request, got %q", gotAuth)
	}
	if gotAPIKey != "anon-key" {
		t.Fatalf("expected the anon key header, got %q", gotAPIKey)
	}
}

func TestPostgrestGetByIDEmptyResultIsNotFound(t *testing.T) {
	repo := newPostgrestTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := repo.GetByID(context.Background(), "dash-1", "google:alice")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for an empty result, got %v", err)
	}
}

func TestPostgrestGetByIDOutageIsNotNotFound(t *testing.T) {
	repo := newPostgrestTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"message":"service unavailable"}`))
	})

	_, err := repo.GetByID(context.Background(), "dash-1", "google:alice")
	if err == nil {
		t.Fatalf("expected an error from the failing store")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("a store outage must not read as not-found: %v", err)
	}
}

func TestPostgrestListByUserDecodesRows(t *testing.T) {
	repo := newPostgrestTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"dash-2","user_id":"google:alice","title":"Second","created_at":"2024-05-02T10:00:00Z"},
			{"id":"dash-1","user_id":"google:alice","title":"First","created_at":"2024-05-01T10:00:00Z"}
		]`))
	})

	list, err := repo.ListByUser(context.Background(), "google:alice")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 || list[0].ID != "dash-2" || list[1].ID != "dash-1" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestPostgrestAnonymousGetsNoToken(t *testing.T) {
	var gotAuth string
	repo := newPostgrestTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	if _, err := repo.ListByUser(context.Background(), ""); err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if strings.HasPrefix(gotAuth, "Bearer ") {
		t.Fatalf("anonymous calls must not carry a minted token, got %q", gotAuth)
	}
}
