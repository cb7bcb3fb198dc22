package dashboards

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"lagscope-backend/internal/analysis"
)

// Service implements the dashboard persistence operations: one insert per
// save, owner-filtered reads, no update path.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Save inserts one dashboard record. The data blob must satisfy the analysis
// result shape before it is accepted. Returns the record id.
func (s *Service) Save(ctx context.Context, id, userID, title string, data json.RawMessage) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("%w: user is required", ErrInvalidInput)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if err := analysis.CheckShape(data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}

	err := s.Repo.Insert(ctx, Dashboard{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Get returns the stored result for one dashboard. A missing id and a record
// owned by another user fail identically. Stored data is shape-checked before
// it is served.
func (s *Service) Get(ctx context.Context, id, userID string) (Dashboard, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(userID) == "" {
		return Dashboard{}, ErrNotFound
	}
	dashboard, err := s.Repo.GetByID(ctx, id, userID)
	if err != nil {
		return Dashboard{}, err
	}
	if err := analysis.CheckShape(dashboard.Data); err != nil {
		return Dashboard{}, fmt.Errorf("stored dashboard %s: %w", id, err)
	}
	return dashboard, nil
}

// Result decodes the stored blob into the analysis result type.
func (s *Service) Result(ctx context.Context, id, userID string) (analysis.AnalysisResult, error) {
	dashboard, err := s.Get(ctx, id, userID)
	if err != nil {
		return analysis.AnalysisResult{}, err
	}
	var result analysis.AnalysisResult
	if err := json.Unmarshal(dashboard.Data, &result); err != nil {
		return analysis.AnalysisResult{}, fmt.Errorf("decode dashboard %s: %w", id, err)
	}
	return result, nil
}

// List returns the caller's dashboards. Callers without an identity see no
// rows rather than a distinct unauthenticated error.
func (s *Service) List(ctx context.Context, userID string) ([]Dashboard, error) {
	if strings.TrimSpace(userID) == "" {
		return []Dashboard{}, nil
	}
	return s.Repo.ListByUser(ctx, userID)
}
