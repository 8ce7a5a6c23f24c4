package validation

import (
	"runplan/internal/models"
)

// InvalidStructureMessage единственное нарушение при сломанной структуре плана
const InvalidStructureMessage = "Plan structure is invalid - missing weeks array"

// Result результат проверки плана
type Result struct {
	IsValid    bool     `json:"isValid"`    // true = нарушений нет
	Violations []string `json:"violations"` // все найденные нарушения по порядку
}

// ValidatePlan проверяет план против ограничений пользователя.
// Сначала правила по каждой неделе, затем прогрессия объёма между неделями.
// Функция чистая: входные данные не меняются, можно вызывать конкурентно
func ValidatePlan(plan *models.Plan, constraints models.UserConstraints) Result {
	if plan == nil || plan.Weeks == nil {
		return invalidStructure()
	}

	violations := []string{}

	// 1. Правила внутри недели
	for _, week := range plan.Weeks {
		violations = append(violations, ValidateWeek(week, constraints)...)
	}

	// 2. Прогрессия объёма между неделями
	violations = append(violations, ValidateVolumeProgression(plan.Weeks, constraints.CurrentWeeklyKm)...)

	return Result{
		IsValid:    len(violations) == 0,
		Violations: violations,
	}
}

// ValidateDocument разбирает JSON плана и проверяет его.
// Любая ошибка разбора даёт результат "структура невалидна"
func ValidateDocument(raw []byte, constraints models.UserConstraints) Result {
	plan, err := ParsePlan(raw)
	if err != nil {
		return invalidStructure()
	}
	return ValidatePlan(plan, constraints)
}

func invalidStructure() Result {
	return Result{
		IsValid:    false,
		Violations: []string{InvalidStructureMessage},
	}
}
