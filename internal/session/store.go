package session

import (
	"encoding/json"
	"sync"
)

// State is the per-user upload-to-dashboard state: the last analysis result,
// the dashboard id minted for it, and the coarse in-flight flag. There is no
// real progress signal from the model call, only the boolean.
type State struct {
	CurrentDashboardID string          `json:"currentDashboardId"`
	Result             json.RawMessage `json:"result,omitempty"`
	IsAnalyzing        bool            `json:"isAnalyzing"`
	DashboardTitle     string          `json:"dashboardTitle"`
}

// Store holds session state per user. It is passed explicitly to the handlers
// that need it; there is no ambient global.
type Store struct {
	mu       sync.Mutex
	sessions map[string]State
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]State)}
}

// StartAnalyzing clears any previous result and marks the session in-flight.
func (s *Store) StartAnalyzing(userID string) {
	if userID == "" {
		return
	}
	s.mu.Lock()
	state := s.sessions[userID]
	state.IsAnalyzing = true
	state.Result = nil
	state.CurrentDashboardID = ""
	s.sessions[userID] = state
	s.mu.Unlock()
}

// FinishAnalyzing clears the in-flight flag after a failed analysis.
func (s *Store) FinishAnalyzing(userID string) {
	if userID == "" {
		return
	}
	s.mu.Lock()
	state := s.sessions[userID]
	state.IsAnalyzing = false
	s.sessions[userID] = state
	s.mu.Unlock()
}

// SetResult replaces the session result wholesale and stores the dashboard id
// minted for it. Results are never partially mutated.
func (s *Store) SetResult(userID, dashboardID string, result json.RawMessage) {
	if userID == "" {
		return
	}
	snapshot := make(json.RawMessage, len(result))
	copy(snapshot, result)
	s.mu.Lock()
	state := s.sessions[userID]
	state.Result = snapshot
	state.CurrentDashboardID = dashboardID
	state.IsAnalyzing = false
	s.sessions[userID] = state
	s.mu.Unlock()
}

// SetTitle stores the working dashboard title.
func (s *Store) SetTitle(userID, title string) {
	if userID == "" {
		return
	}
	s.mu.Lock()
	state := s.sessions[userID]
	state.DashboardTitle = title
	s.sessions[userID] = state
	s.mu.Unlock()
}

// SetCurrentDashboardID points the session at a dashboard.
func (s *Store) SetCurrentDashboardID(userID, dashboardID string) {
	if userID == "" {
		return
	}
	s.mu.Lock()
	state := s.sessions[userID]
	state.CurrentDashboardID = dashboardID
	s.sessions[userID] = state
	s.mu.Unlock()
}

// Get returns a snapshot of the user's session state.
func (s *Store) Get(userID string) State {
	s.mu.Lock()
	state := s.sessions[userID]
	s.mu.Unlock()
	return state
}

// Clear drops the user's session state.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}
