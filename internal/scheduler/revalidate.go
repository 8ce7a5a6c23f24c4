package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron"

	"runplan/internal/models"
	"runplan/internal/repository"
	"runplan/internal/validation"
)

// PlanStore источник сохранённых планов
type PlanStore interface {
	ListUserIDs(ctx context.Context) ([]string, error)
	GetPlan(ctx context.Context, userID string) (*models.Plan, error)
}

// ConstraintsStore источник ограничений пользователей
type ConstraintsStore interface {
	Get(ctx context.Context, userID string) (models.UserConstraints, error)
}

// ResultStore история проверок
type ResultStore interface {
	Save(ctx context.Context, userID string, result validation.Result) (uuid.UUID, error)
}

// Notifier доставляет сообщение пользователю (например, через Telegram)
type Notifier interface {
	Notify(userID string, text string) error
}

// Summary итог одного прогона
type Summary struct {
	Checked int
	Invalid int
	Skipped int
	Failed  int
}

// Revalidator периодически перепроверяет сохранённые планы
type Revalidator struct {
	plans       PlanStore
	constraints ConstraintsStore
	results     ResultStore
	notifier    Notifier

	mu   sync.Mutex // один прогон за раз
	cron *cron.Cron
}

// NewRevalidator создаёт планировщик. notifier может быть nil
func NewRevalidator(plans PlanStore, constraints ConstraintsStore, results ResultStore, notifier Notifier) *Revalidator {
	return &Revalidator{
		plans:       plans,
		constraints: constraints,
		results:     results,
		notifier:    notifier,
	}
}

// RunOnce проверяет планы всех пользователей
func (r *Revalidator) RunOnce(ctx context.Context) (Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var summary Summary

	userIDs, err := r.plans.ListUserIDs(ctx)
	if err != nil {
		return summary, fmt.Errorf("ошибка получения пользователей: %w", err)
	}

	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := r.revalidateUser(ctx, userID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			summary.Skipped++
			continue
		case err != nil:
			summary.Failed++
			log.Printf("⚠️ Перепроверка плана %s: %v", userID, err)
			continue
		}

		summary.Checked++
		if result.IsValid {
			continue
		}
		summary.Invalid++

		if r.notifier != nil {
			text := "🔁 Плановая проверка\n\n" + validation.FormatResult(result)
			if err := r.notifier.Notify(userID, text); err != nil {
				log.Printf("⚠️ Не удалось уведомить %s: %v", userID, err)
			}
		}
	}

	return summary, nil
}

func (r *Revalidator) revalidateUser(ctx context.Context, userID string) (validation.Result, error) {
	constraints, err := r.constraints.Get(ctx, userID)
	if err != nil {
		return validation.Result{}, err
	}
	plan, err := r.plans.GetPlan(ctx, userID)
	if err != nil {
		return validation.Result{}, err
	}

	result := validation.ValidatePlan(plan, constraints)
	if _, err := r.results.Save(ctx, userID, result); err != nil {
		return result, fmt.Errorf("ошибка сохранения результата: %w", err)
	}
	return result, nil
}

// Start регистрирует RunOnce по расписанию (формат robfig/cron, например "@daily")
func (r *Revalidator) Start(ctx context.Context, spec string) error {
	if _, err := cron.Parse(spec); err != nil {
		return fmt.Errorf("неверное расписание %q: %w", spec, err)
	}

	c := cron.New()
	if err := c.AddFunc(spec, func() {
		summary, err := r.RunOnce(ctx)
		if err != nil {
			log.Printf("⚠️ Плановая проверка прервана: %v", err)
			return
		}
		log.Printf("🔁 Плановая проверка: проверено %d, с нарушениями %d, пропущено %d, ошибок %d",
			summary.Checked, summary.Invalid, summary.Skipped, summary.Failed)
	}); err != nil {
		return err
	}

	c.Start()
	r.cron = c
	log.Printf("⏰ Плановая проверка запущена (%s)", spec)
	return nil
}

// Stop останавливает расписание
func (r *Revalidator) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}
