package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"runplan/internal/models"
)

// PlanRepository хранит недели плана как документы с ключом (user_id, week_number)
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository создаёт репозиторий планов
func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// SaveWeeks сохраняет недели плана (upsert по номеру недели)
func (r *PlanRepository) SaveWeeks(ctx context.Context, userID string, weeks []models.Week) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := upsertWeeks(ctx, tx, userID, weeks); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplacePlan заменяет план пользователя целиком в одной транзакции
func (r *PlanRepository) ReplacePlan(ctx context.Context, userID string, plan *models.Plan) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM public.plan_weeks WHERE user_id = $1", userID); err != nil {
		return err
	}
	if err := upsertWeeks(ctx, tx, userID, plan.Weeks); err != nil {
		return err
	}
	return tx.Commit()
}

func upsertWeeks(ctx context.Context, tx *sql.Tx, userID string, weeks []models.Week) error {
	for _, week := range weeks {
		doc, err := json.Marshal(week)
		if err != nil {
			return fmt.Errorf("неделя %d: %w", week.WeekNumber, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO public.plan_weeks (user_id, week_number, document, updated_at)
			VALUES ($1, $2, $3::jsonb, NOW())
			ON CONFLICT (user_id, week_number)
			DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()`,
			userID, week.WeekNumber, string(doc),
		); err != nil {
			return fmt.Errorf("неделя %d: %w", week.WeekNumber, err)
		}
	}
	return nil
}

// GetPlan возвращает план пользователя, недели по возрастанию номера
func (r *PlanRepository) GetPlan(ctx context.Context, userID string) (*models.Plan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT document
		FROM public.plan_weeks
		WHERE user_id = $1
		ORDER BY week_number`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plan := &models.Plan{Weeks: []models.Week{}}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var week models.Week
		if err := json.Unmarshal(doc, &week); err != nil {
			return nil, fmt.Errorf("повреждённый документ недели: %w", err)
		}
		plan.Weeks = append(plan.Weeks, week)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(plan.Weeks) == 0 {
		return nil, ErrNotFound
	}
	return plan, nil
}

// GetWeek возвращает одну неделю плана
func (r *PlanRepository) GetWeek(ctx context.Context, userID string, weekNumber int) (*models.Week, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT document
		FROM public.plan_weeks
		WHERE user_id = $1 AND week_number = $2`, userID, weekNumber).Scan(&doc)
	if err != nil {
		return nil, notFound(err)
	}

	week := &models.Week{}
	if err := json.Unmarshal(doc, week); err != nil {
		return nil, fmt.Errorf("повреждённый документ недели: %w", err)
	}
	return week, nil
}

// ListUserIDs возвращает пользователей, у которых есть сохранённый план
func (r *PlanRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT user_id
		FROM public.plan_weeks
		ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteWeeks удаляет план пользователя
func (r *PlanRepository) DeleteWeeks(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM public.plan_weeks WHERE user_id = $1", userID)
	return err
}
