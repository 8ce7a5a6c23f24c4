package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TrainingTypeRunningOnly запрещает силовые и функциональные тренировки
const TrainingTypeRunningOnly = "running_only"

// ErrInvalidConstraints ограничения пользователя не прошли проверку на входе
var ErrInvalidConstraints = errors.New("invalid user constraints")

var constraintsValidate *validator.Validate

func init() {
	constraintsValidate = validator.New()
	_ = constraintsValidate.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return Day(fl.Field().String()).IsValid()
	})
}

// UserConstraints жёсткие ограничения пользователя для плана
type UserConstraints struct {
	TrainingType    string  `json:"trainingType,omitempty"`
	SessionsPerWeek int     `json:"sessionsPerWeek" validate:"gte=0,lte=7"`
	AvailableDays   []Day   `json:"availableDays" validate:"required,dive,weekday"`
	BlockedDays     []Day   `json:"blockedDays" validate:"dive,weekday"`
	CurrentWeeklyKm float64 `json:"currentWeeklyKm" validate:"gte=0"`
}

// Validate проверяет ограничения один раз на границе системы,
// чтобы правила валидации плана работали с уже корректными данными.
// availableDays обязателен, но может быть пустым
func (c *UserConstraints) Validate() error {
	err := constraintsValidate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConstraints, err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConstraints, strings.Join(problems, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "weekday":
		return fmt.Sprintf("unknown day %q in %s", fe.Value(), fe.Field())
	case "gte", "lte":
		return fmt.Sprintf("%s is out of range: %v", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// AllowedDays доступные дни минус заблокированные, в порядке AvailableDays.
// Возвращает новый срез, исходные не меняются
func (c UserConstraints) AllowedDays() []Day {
	blocked := make(map[Day]bool, len(c.BlockedDays))
	for _, d := range c.BlockedDays {
		blocked[d] = true
	}

	allowed := make([]Day, 0, len(c.AvailableDays))
	for _, d := range c.AvailableDays {
		if !blocked[d] {
			allowed = append(allowed, d)
		}
	}
	return allowed
}

// IsBlocked проверяет, заблокирован ли день
func (c UserConstraints) IsBlocked(day Day) bool {
	for _, d := range c.BlockedDays {
		if d == day {
			return true
		}
	}
	return false
}
