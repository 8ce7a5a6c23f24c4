package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"runplan/internal/models"
	"runplan/internal/repository"
	"runplan/internal/validation"
)

// ErrNoConstraints у пользователя ещё нет сохранённых ограничений
var ErrNoConstraints = errors.New("constraints are not set")

// PlanStore хранилище недель плана
type PlanStore interface {
	ReplacePlan(ctx context.Context, userID string, plan *models.Plan) error
}

// ConstraintsStore хранилище ограничений
type ConstraintsStore interface {
	Save(ctx context.Context, userID string, c models.UserConstraints) error
	Get(ctx context.Context, userID string) (models.UserConstraints, error)
}

// ResultStore история проверок
type ResultStore interface {
	Save(ctx context.Context, userID string, result validation.Result) (uuid.UUID, error)
	Latest(ctx context.Context, userID string) (*repository.ValidationRecord, error)
}

// Check результат проверки присланного плана
type Check struct {
	ID          uuid.UUID
	Plan        *models.Plan // nil если структура сломана
	Constraints models.UserConstraints
	Result      validation.Result
}

// PlanChecker связывает хранилища и валидатор, без зависимости от Telegram
type PlanChecker struct {
	plans       PlanStore
	constraints ConstraintsStore
	results     ResultStore
}

// NewPlanChecker создаёт проверяющего
func NewPlanChecker(plans PlanStore, constraints ConstraintsStore, results ResultStore) *PlanChecker {
	return &PlanChecker{plans: plans, constraints: constraints, results: results}
}

// SetConstraints разбирает и сохраняет ограничения пользователя
func (c *PlanChecker) SetConstraints(ctx context.Context, userID string, raw []byte) (models.UserConstraints, error) {
	constraints, err := validation.ParseConstraints(raw)
	if err != nil {
		return models.UserConstraints{}, err
	}
	if err := c.constraints.Save(ctx, userID, constraints); err != nil {
		return models.UserConstraints{}, fmt.Errorf("ошибка сохранения ограничений: %w", err)
	}
	return constraints, nil
}

// Constraints возвращает сохранённые ограничения или ErrNoConstraints
func (c *PlanChecker) Constraints(ctx context.Context, userID string) (models.UserConstraints, error) {
	constraints, err := c.constraints.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.UserConstraints{}, ErrNoConstraints
	}
	return constraints, err
}

// CheckPlan проверяет присланный план. Корректный по структуре план сохраняется
// по неделям, результат проверки пишется в историю в любом случае
func (c *PlanChecker) CheckPlan(ctx context.Context, userID string, raw []byte) (*Check, error) {
	constraints, err := c.Constraints(ctx, userID)
	if err != nil {
		return nil, err
	}

	check := &Check{Constraints: constraints}
	if plan, err := validation.ParsePlan(raw); err == nil {
		check.Plan = plan
		if err := c.plans.ReplacePlan(ctx, userID, plan); err != nil {
			return nil, fmt.Errorf("ошибка сохранения плана: %w", err)
		}
	}
	check.Result = validation.ValidatePlan(check.Plan, constraints)

	id, err := c.results.Save(ctx, userID, check.Result)
	if err != nil {
		return nil, fmt.Errorf("ошибка сохранения проверки: %w", err)
	}
	check.ID = id
	return check, nil
}

// Latest последняя проверка пользователя
func (c *PlanChecker) Latest(ctx context.Context, userID string) (*repository.ValidationRecord, error) {
	return c.results.Latest(ctx, userID)
}
