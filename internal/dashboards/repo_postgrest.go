package dashboards

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/supabase-community/postgrest-go"
)

// PostgrestRepo implements Repo against a Supabase PostgREST endpoint. Each
// call mints a short-lived user-scoped token so row-level security on the
// dashboards table sees the real owner, not a service identity.
type PostgrestRepo struct {
	BaseURL   string
	AnonKey   string
	JWTSecret string
	TokenTTL  time.Duration
}

// NewPostgrestRepo constructs a PostgrestRepo.
func NewPostgrestRepo(baseURL, anonKey, jwtSecret string) (*PostgrestRepo, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if strings.TrimSpace(jwtSecret) == "" {
		return nil, fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	return &PostgrestRepo{
		BaseURL:   strings.TrimRight(baseURL, "/") + "/rest/v1",
		AnonKey:   anonKey,
		JWTSecret: jwtSecret,
		TokenTTL:  time.Minute,
	}, nil
}

type dashboardRow struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Title     string          `json:"title"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Insert stores a new dashboard.
func (r *PostgrestRepo) Insert(ctx context.Context, dashboard Dashboard) error {
	_ = ctx
	client, err := r.client(dashboard.UserID)
	if err != nil {
		return err
	}
	row := dashboardRow{
		ID:        dashboard.ID,
		UserID:    dashboard.UserID,
		Title:     dashboard.Title,
		Data:      dashboard.Data,
		CreatedAt: dashboard.CreatedAt,
	}
	if _, _, err := client.From("dashboards").Insert(row, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("insert dashboard: %w", err)
	}
	return nil
}

// GetByID returns the dashboard matching both id and owner.
func (r *PostgrestRepo) GetByID(ctx context.Context, id, userID string) (Dashboard, error) {
	_ = ctx
	client, err := r.client(userID)
	if err != nil {
		return Dashboard{}, err
	}
	data, _, err := client.From("dashboards").
		Select("*", "", false).
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		// Transport and upstream failures stay distinguishable from a
		// missing record; only an empty result set maps to ErrNotFound.
		return Dashboard{}, fmt.Errorf("fetch dashboard: %w", err)
	}

	var rows []dashboardRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return Dashboard{}, fmt.Errorf("decode dashboard: %w", err)
	}
	if len(rows) == 0 {
		return Dashboard{}, ErrNotFound
	}
	return rows[0].toDashboard(), nil
}

// ListByUser returns the user's dashboards, newest first.
func (r *PostgrestRepo) ListByUser(ctx context.Context, userID string) ([]Dashboard, error) {
	_ = ctx
	client, err := r.client(userID)
	if err != nil {
		return nil, err
	}
	data, _, err := client.From("dashboards").
		Select("id,user_id,title,created_at", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("list dashboards: %w", err)
	}

	var rows []dashboardRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode dashboards: %w", err)
	}
	out := make([]Dashboard, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDashboard())
	}
	return out, nil
}

// client builds a fresh PostgREST client carrying a per-call token for the
// given user. Anonymous callers get the bare anon key and therefore no rows.
func (r *PostgrestRepo) client(userID string) (*postgrest.Client, error) {
	headers := map[string]string{"apikey": r.AnonKey}
	client := postgrest.NewClient(r.BaseURL, "", headers)

	if strings.TrimSpace(userID) == "" {
		return client, nil
	}

	token, err := r.mintToken(userID)
	if err != nil {
		return nil, err
	}
	return client.SetAuthToken(token), nil
}

func (r *PostgrestRepo) mintToken(userID string) (string, error) {
	ttl := r.TokenTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": "authenticated",
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(r.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("mint supabase token: %w", err)
	}
	return signed, nil
}

func (row dashboardRow) toDashboard() Dashboard {
	return Dashboard{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Data:      row.Data,
		CreatedAt: row.CreatedAt,
	}
}
