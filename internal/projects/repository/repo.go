package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/protrack-dev/protrack-backend/internal/projects/domain"
)

// Repo provides persistence for projects. Every read and write is scoped
// to the owner in the query itself: a row that exists under another owner
// and a row that does not exist both come back as domain.ErrNotFound.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const projectCols = `id, owner_uid, name, description, category, due_date, attachments, created_at, updated_at`

func (r *Repo) Create(ctx context.Context, ownerUID string, in domain.CreateInput) (*domain.Project, error) {
	if ownerUID == "" {
		return nil, fmt.Errorf("owner uid required")
	}

	category := in.Category
	if category == "" {
		category = domain.CategoryOthers
	}

	const q = `
insert into projects (id, owner_uid, name, description, category, due_date)
values ($1, $2, $3, $4, $5, $6)
returning ` + projectCols + `;
`
	row := r.db.QueryRow(ctx, q, uuid.New().String(), ownerUID, in.Name, in.Description, category, in.DueDate)
	return scanProject(row)
}

func (r *Repo) ListByOwner(ctx context.Context, ownerUID string) ([]domain.Project, error) {
	const q = `
select ` + projectCols + `
from projects
where owner_uid = $1
order by created_at;
`
	rows, err := r.db.Query(ctx, q, ownerUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// GetOwned is the guarded fetch: id and owner must both match.
func (r *Repo) GetOwned(ctx context.Context, ownerUID, id string) (*domain.Project, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}

	const q = `
select ` + projectCols + `
from projects
where id = $1 and owner_uid = $2;
`
	p, err := scanProject(r.db.QueryRow(ctx, q, id, ownerUID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Update applies a presence-aware patch under the guarded predicate.
// nil fields keep their stored value; due_date is only touched when the
// patch says so, so it can be cleared to null.
func (r *Repo) Update(ctx context.Context, ownerUID, id string, patch domain.UpdatePatch) (*domain.Project, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}

	const q = `
update projects
set name        = coalesce($3, name),
    description = coalesce($4, description),
    category    = coalesce($5, category),
    due_date    = case when $6::bool then $7 else due_date end,
    updated_at  = now()
where id = $1 and owner_uid = $2
returning ` + projectCols + `;
`
	p, err := scanProject(r.db.QueryRow(ctx, q,
		id, ownerUID,
		patch.Name, patch.Description, patch.Category,
		patch.SetDueDate, patch.DueDate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes the project permanently. Tasks go with it via the
// cascade on tasks.project_id.
func (r *Repo) Delete(ctx context.Context, ownerUID, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}

	const q = `delete from projects where id = $1 and owner_uid = $2;`
	ct, err := r.db.Exec(ctx, q, id, ownerUID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendAttachment adds one attachment record to the project's jsonb
// sequence. Callers invoke this only after the file write is confirmed.
func (r *Repo) AppendAttachment(ctx context.Context, ownerUID, id string, att domain.Attachment) (*domain.Project, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}

	entry, err := json.Marshal(att)
	if err != nil {
		return nil, err
	}

	const q = `
update projects
set attachments = attachments || $3::jsonb,
    updated_at  = now()
where id = $1 and owner_uid = $2
returning ` + projectCols + `;
`
	p, err := scanProject(r.db.QueryRow(ctx, q, id, ownerUID, string(entry)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var (
		p       domain.Project
		due     *time.Time
		attJSON []byte
	)
	if err := row.Scan(&p.ID, &p.OwnerUID, &p.Name, &p.Description, &p.Category, &due, &attJSON, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.DueDate = due
	p.Attachments = []domain.Attachment{}
	if len(attJSON) > 0 {
		if err := json.Unmarshal(attJSON, &p.Attachments); err != nil {
			return nil, fmt.Errorf("decode attachments: %w", err)
		}
	}
	return &p, nil
}

// validID rejects ids that cannot be uuids before they hit the database,
// so a malformed id surfaces as not-found instead of a cast error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
