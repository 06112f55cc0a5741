package domain

import "errors"

var (
	// ErrNotFound covers both a missing project and a project owned by
	// someone else. The two are deliberately indistinguishable so the API
	// never reveals that a resource exists under another owner.
	ErrNotFound = errors.New("project not found")

	ErrNameRequired    = errors.New("name is required")
	ErrInvalidCategory = errors.New("category must be one of college, internship, work, others")
)
