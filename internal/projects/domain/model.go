package domain

import "time"

// Project is a single tracked project owned by exactly one user.
// It is storage-agnostic and shared across repository, service and HTTP layers.
type Project struct {
	ID          string       `json:"id"`
	OwnerUID    string       `json:"owner"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Attachment records one uploaded file. FilePath points at the stored
// object (generated key), FileName is the display name the client sent.
type Attachment struct {
	FileName string `json:"fileName"`
	FilePath string `json:"filePath"`
}

// Project categories. CategoryOthers is the default for new projects.
const (
	CategoryCollege    = "college"
	CategoryInternship = "internship"
	CategoryWork       = "work"
	CategoryOthers     = "others"
)

// ValidCategory reports whether s is one of the known categories.
func ValidCategory(s string) bool {
	switch s {
	case CategoryCollege, CategoryInternship, CategoryWork, CategoryOthers:
		return true
	}
	return false
}

// CreateInput carries the client-supplied fields for a new project.
// The owner is never part of it; it always comes from the authenticated
// principal.
type CreateInput struct {
	Name        string
	Description string
	Category    string
	DueDate     *time.Time
}

// UpdatePatch is a presence-aware patch: a nil field is left unchanged,
// a non-nil field replaces the stored value even when it is empty. DueDate
// uses the extra SetDueDate flag so the date can be cleared explicitly.
type UpdatePatch struct {
	Name        *string
	Description *string
	Category    *string
	SetDueDate  bool
	DueDate     *time.Time
}

// Empty reports whether the patch changes nothing.
func (p UpdatePatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil && !p.SetDueDate
}
