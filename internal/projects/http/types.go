package http

import (
	"fmt"
	"time"

	"github.com/protrack-dev/protrack-backend/internal/projects/service"
)

// Handler bundles the dependencies for the project endpoints.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

type createReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	DueDate     string `json:"dueDate"`
}

// updateReq uses pointers so "field omitted" and "field sent empty" stay
// distinguishable: omitted keeps the stored value, sent replaces it.
type updateReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	DueDate     *string `json:"dueDate"`
}

// parseDueDate accepts the date-input format the client sends, or RFC3339.
// An empty string means "clear the date" in updates.
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
