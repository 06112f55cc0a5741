package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate applies the schema. All statements are idempotent so this runs
// unconditionally at startup.
//
// Attachments live in a jsonb column on projects: a project is one row, so
// attachment appends share the row's single-document atomicity. Tasks
// cascade with their project.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`create table if not exists projects (
			id          uuid primary key,
			owner_uid   text not null,
			name        text not null,
			description text not null default '',
			category    text not null default 'others',
			due_date    date,
			attachments jsonb not null default '[]'::jsonb,
			created_at  timestamptz not null default now(),
			updated_at  timestamptz not null default now()
		)`,
		`create index if not exists projects_owner_created_idx
			on projects (owner_uid, created_at)`,
		`create table if not exists tasks (
			id         uuid primary key,
			project_id uuid not null references projects(id) on delete cascade,
			name       text not null,
			due_date   date,
			created_at timestamptz not null default now(),
			updated_at timestamptz not null default now()
		)`,
		`create index if not exists tasks_project_created_idx
			on tasks (project_id, created_at)`,
	}

	for _, q := range stmts {
		if _, err := pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
