package http

import (
	"context"
	"fmt"
	"time"

	"github.com/protrack-dev/protrack-backend/internal/tasks/domain"
)

// Store is what the handlers need from persistence; the pgx repository
// implements it, tests use an in-memory fake.
type Store interface {
	Create(ctx context.Context, ownerUID, projectID string, in domain.CreateInput) (*domain.Task, error)
	ListByProject(ctx context.Context, ownerUID, projectID string) ([]domain.Task, error)
	Get(ctx context.Context, ownerUID, projectID, taskID string) (*domain.Task, error)
	Update(ctx context.Context, ownerUID, projectID, taskID string, patch domain.UpdatePatch) (*domain.Task, error)
	Delete(ctx context.Context, ownerUID, projectID, taskID string) error
}

// Handler bundles the dependencies for the task endpoints.
type Handler struct {
	store Store
}

func New(store Store) *Handler {
	return &Handler{store: store}
}

type createReq struct {
	Name    string `json:"name"`
	DueDate string `json:"dueDate"`
}

type updateReq struct {
	Name    *string `json:"name"`
	DueDate *string `json:"dueDate"`
}

func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("dueDate must be YYYY-MM-DD")
	}
	return &t, nil
}
