package dashboards

import "context"

// Repo defines persistence operations for dashboards. Every read filters on
// the owning user; there is no cross-user lookup path.
type Repo interface {
	Insert(ctx context.Context, dashboard Dashboard) error
	GetByID(ctx context.Context, id, userID string) (Dashboard, error)
	ListByUser(ctx context.Context, userID string) ([]Dashboard, error)
}
