package dashboards

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for dev and tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Dashboard
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Dashboard)}
}

// Insert stores a dashboard; duplicate ids fail like a key violation would.
func (r *MemoryRepo) Insert(ctx context.Context, dashboard Dashboard) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[dashboard.ID]; exists {
		return fmt.Errorf("dashboard %s already exists", dashboard.ID)
	}
	if dashboard.CreatedAt.IsZero() {
		dashboard.CreatedAt = time.Now().UTC()
	}
	dashboard.Data = cloneRaw(dashboard.Data)
	r.items[dashboard.ID] = dashboard
	return nil
}

// GetByID returns the dashboard matching both id and owner.
func (r *MemoryRepo) GetByID(ctx context.Context, id, userID string) (Dashboard, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	dashboard, ok := r.items[id]
	if !ok || dashboard.UserID != userID {
		return Dashboard{}, ErrNotFound
	}
	dashboard.Data = cloneRaw(dashboard.Data)
	return dashboard, nil
}

// ListByUser returns the user's dashboards, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Dashboard, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Dashboard, 0)
	for _, dashboard := range r.items {
		if dashboard.UserID != userID {
			continue
		}
		dashboard.Data = cloneRaw(dashboard.Data)
		out = append(out, dashboard)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}
