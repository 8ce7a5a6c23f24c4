package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound запись не найдена
var ErrNotFound = errors.New("not found")

// Repository содержит все репозитории
type Repository struct {
	Plan        *PlanRepository
	Constraints *ConstraintsRepository
	Validation  *ValidationRepository
}

// New создаёт новый экземпляр Repository
func New(db *sql.DB) *Repository {
	return &Repository{
		Plan:        NewPlanRepository(db),
		Constraints: NewConstraintsRepository(db),
		Validation:  NewValidationRepository(db),
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS public.plan_weeks (
	user_id     TEXT NOT NULL,
	week_number INTEGER NOT NULL,
	document    JSONB NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (user_id, week_number)
);

CREATE TABLE IF NOT EXISTS public.user_constraints (
	user_id    TEXT PRIMARY KEY,
	document   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS public.plan_validations (
	id         UUID PRIMARY KEY,
	user_id    TEXT NOT NULL,
	is_valid   BOOLEAN NOT NULL,
	violations TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS plan_validations_user_created_idx
	ON public.plan_validations (user_id, created_at DESC);
`

// Migrate создаёт таблицы, если их ещё нет
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ошибка миграции: %w", err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
