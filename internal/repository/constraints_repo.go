package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"runplan/internal/models"
)

// ConstraintsRepository работает с ограничениями пользователей
type ConstraintsRepository struct {
	db *sql.DB
}

// NewConstraintsRepository создаёт репозиторий ограничений
func NewConstraintsRepository(db *sql.DB) *ConstraintsRepository {
	return &ConstraintsRepository{db: db}
}

// Save сохраняет ограничения пользователя
func (r *ConstraintsRepository) Save(ctx context.Context, userID string, c models.UserConstraints) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO public.user_constraints (user_id, document, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()`,
		userID, string(doc),
	)
	return err
}

// Get возвращает ограничения пользователя или ErrNotFound
func (r *ConstraintsRepository) Get(ctx context.Context, userID string) (models.UserConstraints, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT document
		FROM public.user_constraints
		WHERE user_id = $1`, userID).Scan(&doc)
	if err != nil {
		return models.UserConstraints{}, notFound(err)
	}

	var c models.UserConstraints
	if err := json.Unmarshal(doc, &c); err != nil {
		return models.UserConstraints{}, fmt.Errorf("повреждённые ограничения: %w", err)
	}
	return c, nil
}
