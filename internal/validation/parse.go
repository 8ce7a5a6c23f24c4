package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"runplan/internal/models"
)

// ErrInvalidStructure документ плана не удалось привести к Plan
var ErrInvalidStructure = errors.New("plan structure is invalid")

// ParsePlan разбирает JSON от AI в строгую структуру.
// Это единственное место, где проверяется форма документа
func ParsePlan(raw []byte) (*models.Plan, error) {
	var doc struct {
		Weeks json.RawMessage `json:"weeks"`
	}
	if !isJSONKind(raw, '{') {
		return nil, fmt.Errorf("%w: document is not an object", ErrInvalidStructure)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	if !isJSONKind(doc.Weeks, '[') {
		return nil, fmt.Errorf("%w: missing weeks array", ErrInvalidStructure)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(doc.Weeks, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}

	plan := &models.Plan{Weeks: make([]models.Week, 0, len(items))}
	for i, item := range items {
		if !isJSONKind(item, '{') {
			return nil, fmt.Errorf("%w: week #%d is not an object", ErrInvalidStructure, i+1)
		}
		var week models.Week
		if err := json.Unmarshal(item, &week); err != nil {
			return nil, fmt.Errorf("%w: week #%d: %v", ErrInvalidStructure, i+1, err)
		}
		plan.Weeks = append(plan.Weeks, week)
	}

	return plan, nil
}

// ParseConstraints разбирает настройки пользователя.
// sessionsPerWeek и availableDays обязательны, остальное со значениями по умолчанию
func ParseConstraints(raw []byte) (models.UserConstraints, error) {
	var doc struct {
		TrainingType    string       `json:"trainingType"`
		SessionsPerWeek *int         `json:"sessionsPerWeek"`
		AvailableDays   []models.Day `json:"availableDays"`
		BlockedDays     []models.Day `json:"blockedDays"`
		CurrentWeeklyKm *float64     `json:"currentWeeklyKm"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.UserConstraints{}, fmt.Errorf("%w: %v", models.ErrInvalidConstraints, err)
	}
	if doc.SessionsPerWeek == nil {
		return models.UserConstraints{}, fmt.Errorf("%w: sessionsPerWeek is required", models.ErrInvalidConstraints)
	}

	c := models.UserConstraints{
		TrainingType:    doc.TrainingType,
		SessionsPerWeek: *doc.SessionsPerWeek,
		AvailableDays:   doc.AvailableDays,
		BlockedDays:     doc.BlockedDays,
	}
	if c.BlockedDays == nil {
		c.BlockedDays = []models.Day{}
	}
	if doc.CurrentWeeklyKm != nil {
		c.CurrentWeeklyKm = *doc.CurrentWeeklyKm
	}

	if err := c.Validate(); err != nil {
		return models.UserConstraints{}, err
	}
	return c, nil
}

// isJSONKind проверяет первый значимый символ JSON значения
func isJSONKind(raw []byte, kind byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == kind
}
