package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/protrack-dev/protrack-backend/internal/projects/domain"
	"github.com/protrack-dev/protrack-backend/internal/storage/uploads"
)

// Store is the persistence contract the service needs. The pgx repository
// implements it; tests use in-memory fakes. Implementations must collapse
// "absent" and "owned by someone else" into domain.ErrNotFound.
type Store interface {
	Create(ctx context.Context, ownerUID string, in domain.CreateInput) (*domain.Project, error)
	ListByOwner(ctx context.Context, ownerUID string) ([]domain.Project, error)
	GetOwned(ctx context.Context, ownerUID, id string) (*domain.Project, error)
	Update(ctx context.Context, ownerUID, id string, patch domain.UpdatePatch) (*domain.Project, error)
	Delete(ctx context.Context, ownerUID, id string) error
	AppendAttachment(ctx context.Context, ownerUID, id string, att domain.Attachment) (*domain.Project, error)
}

// StorageWriteError wraps upload-store failures so handlers can map them
// to a server error distinct from not-found.
type StorageWriteError struct {
	Err error
}

func (e *StorageWriteError) Error() string { return "attachment write failed: " + e.Err.Error() }
func (e *StorageWriteError) Unwrap() error { return e.Err }

// Service composes the ownership-guarded store with the upload store.
type Service struct {
	store Store
	files uploads.Store
}

func New(store Store, files uploads.Store) *Service {
	return &Service{store: store, files: files}
}

func (s *Service) Create(ctx context.Context, ownerUID string, in domain.CreateInput) (*domain.Project, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.ErrNameRequired
	}
	if in.Category != "" && !domain.ValidCategory(in.Category) {
		return nil, domain.ErrInvalidCategory
	}
	return s.store.Create(ctx, ownerUID, in)
}

func (s *Service) List(ctx context.Context, ownerUID string) ([]domain.Project, error) {
	return s.store.ListByOwner(ctx, ownerUID)
}

func (s *Service) Get(ctx context.Context, ownerUID, id string) (*domain.Project, error) {
	return s.store.GetOwned(ctx, ownerUID, id)
}

func (s *Service) Update(ctx context.Context, ownerUID, id string, patch domain.UpdatePatch) (*domain.Project, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, domain.ErrNameRequired
		}
		patch.Name = &trimmed
	}
	if patch.Category != nil && !domain.ValidCategory(*patch.Category) {
		return nil, domain.ErrInvalidCategory
	}
	if patch.Empty() {
		// No-op patch still goes through the guarded fetch so a non-owner
		// gets not-found instead of a silent success.
		return s.store.GetOwned(ctx, ownerUID, id)
	}
	return s.store.Update(ctx, ownerUID, id, patch)
}

func (s *Service) Delete(ctx context.Context, ownerUID, id string) error {
	return s.store.Delete(ctx, ownerUID, id)
}

// Attach stores the file, then records the attachment. The metadata append
// is sequenced strictly after the confirmed write: a failed write returns a
// StorageWriteError and leaves the project untouched.
func (s *Service) Attach(ctx context.Context, ownerUID, id, fileName string, r io.Reader) (*domain.Project, domain.Attachment, error) {
	if _, err := s.store.GetOwned(ctx, ownerUID, id); err != nil {
		return nil, domain.Attachment{}, err
	}

	if s.files == nil {
		return nil, domain.Attachment{}, &StorageWriteError{Err: fmt.Errorf("no upload store configured")}
	}

	key := uploads.NewKey(fileName)
	path, err := s.files.Save(ctx, key, r)
	if err != nil {
		return nil, domain.Attachment{}, &StorageWriteError{Err: err}
	}

	att := domain.Attachment{FileName: fileName, FilePath: path}
	p, err := s.store.AppendAttachment(ctx, ownerUID, id, att)
	if err != nil {
		return nil, domain.Attachment{}, err
	}
	return p, att, nil
}
