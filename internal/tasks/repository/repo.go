package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/protrack-dev/protrack-backend/internal/tasks/domain"
)

// Repo persists tasks. Every operation re-checks that the parent project
// belongs to the caller before touching task rows, so tasks under someone
// else's project are as invisible as the project itself.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const taskCols = `id, project_id, name, due_date, created_at, updated_at`

func (r *Repo) Create(ctx context.Context, ownerUID, projectID string, in domain.CreateInput) (*domain.Task, error) {
	if err := r.checkProject(ctx, ownerUID, projectID); err != nil {
		return nil, err
	}

	const q = `
insert into tasks (id, project_id, name, due_date)
values ($1, $2, $3, $4)
returning ` + taskCols + `;
`
	return scanTask(r.db.QueryRow(ctx, q, uuid.New().String(), projectID, in.Name, in.DueDate))
}

func (r *Repo) ListByProject(ctx context.Context, ownerUID, projectID string) ([]domain.Task, error) {
	if err := r.checkProject(ctx, ownerUID, projectID); err != nil {
		return nil, err
	}

	const q = `
select ` + taskCols + `
from tasks
where project_id = $1
order by created_at;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Task, 0, 16)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, ownerUID, projectID, taskID string) (*domain.Task, error) {
	if err := r.checkProject(ctx, ownerUID, projectID); err != nil {
		return nil, err
	}
	if !validID(taskID) {
		return nil, domain.ErrNotFound
	}

	const q = `
select ` + taskCols + `
from tasks
where id = $1 and project_id = $2;
`
	t, err := scanTask(r.db.QueryRow(ctx, q, taskID, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *Repo) Update(ctx context.Context, ownerUID, projectID, taskID string, patch domain.UpdatePatch) (*domain.Task, error) {
	if err := r.checkProject(ctx, ownerUID, projectID); err != nil {
		return nil, err
	}
	if !validID(taskID) {
		return nil, domain.ErrNotFound
	}

	const q = `
update tasks
set name       = coalesce($3, name),
    due_date   = case when $4::bool then $5 else due_date end,
    updated_at = now()
where id = $1 and project_id = $2
returning ` + taskCols + `;
`
	t, err := scanTask(r.db.QueryRow(ctx, q, taskID, projectID, patch.Name, patch.SetDueDate, patch.DueDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *Repo) Delete(ctx context.Context, ownerUID, projectID, taskID string) error {
	if err := r.checkProject(ctx, ownerUID, projectID); err != nil {
		return err
	}
	if !validID(taskID) {
		return domain.ErrNotFound
	}

	const q = `delete from tasks where id = $1 and project_id = $2;`
	ct, err := r.db.Exec(ctx, q, taskID, projectID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// checkProject is the guarded fetch against the parent project.
func (r *Repo) checkProject(ctx context.Context, ownerUID, projectID string) error {
	if !validID(projectID) {
		return domain.ErrProjectNotFound
	}

	const q = `select 1 from projects where id = $1 and owner_uid = $2;`
	var one int
	if err := r.db.QueryRow(ctx, q, projectID, ownerUID).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProjectNotFound
		}
		return err
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		t   domain.Task
		due *time.Time
	)
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Name, &due, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.DueDate = due
	return &t, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
