package dashboards

import (
	"encoding/json"
	"time"
)

// Dashboard is a persisted, user-owned, named analysis result. Data is stored
// as an opaque structured blob and shape-checked before it is served.
type Dashboard struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Title     string          `json:"title"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
