package session_test

import (
	"encoding/json"
	"testing"

	"lagscope-backend/internal/session"
)

func TestStoreLifecycle(t *testing.T) {
	store := session.NewStore()
	const user = "google:123"

	store.StartAnalyzing(user)
	state := store.Get(user)
	if !state.IsAnalyzing {
		t.Fatalf("expected analyzing flag set")
	}
	if state.Result != nil || state.CurrentDashboardID != "" {
		t.Fatalf("starting an analysis must clear the previous result")
	}

	store.SetResult(user, "dash-1", json.RawMessage(`{"overallScore":80}`))
	state = store.Get(user)
	if state.IsAnalyzing {
		t.Fatalf("expected analyzing flag cleared")
	}
	if state.CurrentDashboardID != "dash-1" {
		t.Fatalf("expected dashboard id dash-1, got %s", state.CurrentDashboardID)
	}
	if string(state.Result) != `{"overallScore":80}` {
		t.Fatalf("unexpected result %s", state.Result)
	}

	store.SetTitle(user, "Raid night")
	if got := store.Get(user).DashboardTitle; got != "Raid night" {
		t.Fatalf("unexpected title %q", got)
	}

	store.Clear(user)
	if state := store.Get(user); state.Result != nil || state.DashboardTitle != "" {
		t.Fatalf("expected cleared session, got %+v", state)
	}
}

func TestStoreReplacesResultWholesale(t *testing.T) {
	store := session.NewStore()
	const user = "guest:abc"

	store.SetResult(user, "dash-1", json.RawMessage(`{"overallScore":10}`))
	store.StartAnalyzing(user)
	store.SetResult(user, "dash-2", json.RawMessage(`{"overallScore":90}`))

	state := store.Get(user)
	if state.CurrentDashboardID != "dash-2" {
		t.Fatalf("expected dash-2, got %s", state.CurrentDashboardID)
	}
	if string(state.Result) != `{"overallScore":90}` {
		t.Fatalf("unexpected result %s", state.Result)
	}
}

func TestStoreCopiesResultBytes(t *testing.T) {
	store := session.NewStore()
	raw := json.RawMessage(`{"overallScore":50}`)
	store.SetResult("u1", "d1", raw)

	raw[2] = 'X'
	if string(store.Get("u1").Result) != `{"overallScore":50}` {
		t.Fatalf("stored result aliases caller bytes")
	}
}

func TestStoreIgnoresEmptyUser(t *testing.T) {
	store := session.NewStore()
	store.SetResult("", "d1", json.RawMessage(`{}`))
	store.SetTitle("", "x")
	if state := store.Get(""); state.Result != nil || state.DashboardTitle != "" {
		t.Fatalf("anonymous callers must not accumulate session state")
	}
}
