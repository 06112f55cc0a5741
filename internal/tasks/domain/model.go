package domain

import (
	"errors"
	"time"
)

// Task belongs to exactly one project and is reachable only through it,
// so every task operation inherits the project's ownership guard.
type Task struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"projectId"`
	Name      string     `json:"name"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CreateInput struct {
	Name    string
	DueDate *time.Time
}

// UpdatePatch mirrors the project patch semantics: nil keeps, non-nil sets.
type UpdatePatch struct {
	Name       *string
	SetDueDate bool
	DueDate    *time.Time
}

func (p UpdatePatch) Empty() bool {
	return p.Name == nil && !p.SetDueDate
}

var (
	// ErrProjectNotFound also covers a project owned by someone else.
	ErrProjectNotFound = errors.New("project not found")
	ErrNotFound        = errors.New("task not found")
	ErrNameRequired    = errors.New("name is required")
)
