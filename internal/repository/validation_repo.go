package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"runplan/internal/validation"
)

// ValidationRecord сохранённый результат проверки
type ValidationRecord struct {
	ID        uuid.UUID
	UserID    string
	Result    validation.Result
	CreatedAt time.Time
}

// ValidationRepository история проверок планов
type ValidationRepository struct {
	db *sql.DB
}

// NewValidationRepository создаёт репозиторий истории проверок
func NewValidationRepository(db *sql.DB) *ValidationRepository {
	return &ValidationRepository{db: db}
}

// Save сохраняет результат проверки и возвращает его ID
func (r *ValidationRepository) Save(ctx context.Context, userID string, result validation.Result) (uuid.UUID, error) {
	id := uuid.New()
	violations := result.Violations
	if violations == nil {
		violations = []string{}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO public.plan_validations (id, user_id, is_valid, violations, created_at)
		VALUES ($1, $2, $3, $4, NOW())`,
		id, userID, result.IsValid, pq.Array(violations),
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Latest возвращает последнюю проверку пользователя
func (r *ValidationRepository) Latest(ctx context.Context, userID string) (*ValidationRecord, error) {
	rec := &ValidationRecord{}
	var violations []string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, is_valid, violations, created_at
		FROM public.plan_validations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, userID).Scan(
		&rec.ID, &rec.UserID, &rec.Result.IsValid, pq.Array(&violations), &rec.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	if violations == nil {
		violations = []string{}
	}
	rec.Result.Violations = violations
	return rec, nil
}
