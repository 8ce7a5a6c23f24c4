package validation

import (
	"fmt"
	"strings"

	"runplan/internal/models"
)

// forbiddenForRunningOnly типы, запрещённые при trainingType=running_only
var forbiddenForRunningOnly = map[models.SessionType]bool{
	models.SessionHyrox:    true,
	models.SessionCrossfit: true,
	models.SessionStrength: true,
}

// ValidateWeek проверяет одну неделю. Все пять правил выполняются всегда,
// порядок нарушений совпадает с порядком правил
func ValidateWeek(week models.Week, constraints models.UserConstraints) []string {
	violations := []string{}
	allowedDays := constraints.AllowedDays()

	violations = append(violations, checkTrainingType(week, constraints)...)
	violations = append(violations, checkSessionCount(week, constraints)...)
	violations = append(violations, checkBlockedDays(week, constraints)...)
	violations = append(violations, checkMissingDays(week)...)
	violations = append(violations, checkAllowedDays(week, allowedDays)...)

	return violations
}

// checkTrainingType правило 1: только бег
func checkTrainingType(week models.Week, constraints models.UserConstraints) []string {
	if constraints.TrainingType != models.TrainingTypeRunningOnly {
		return nil
	}

	var violations []string
	for _, s := range week.Sessions {
		if forbiddenForRunningOnly[s.Type] {
			violations = append(violations,
				fmt.Sprintf("Week %d: Found %s session \"%s\" but trainingType is running_only",
					week.WeekNumber, s.Type, s.Title))
		}
	}
	return violations
}

// checkSessionCount правило 2: количество тренировок без отдыха
func checkSessionCount(week models.Week, constraints models.UserConstraints) []string {
	count := week.NonRestCount()
	if count == constraints.SessionsPerWeek {
		return nil
	}
	return []string{
		fmt.Sprintf("Week %d: Expected %d sessions but found %d",
			week.WeekNumber, constraints.SessionsPerWeek, count),
	}
}

// checkBlockedDays правило 3
func checkBlockedDays(week models.Week, constraints models.UserConstraints) []string {
	var violations []string
	for _, s := range week.Sessions {
		if s.Type.IsRest() {
			continue
		}
		if constraints.IsBlocked(s.Day) {
			violations = append(violations,
				fmt.Sprintf("Week %d: Session \"%s\" scheduled on blocked day %s",
					week.WeekNumber, s.Title, s.Day))
		}
	}
	return violations
}

// checkMissingDays правило 4: каждый день недели должен быть в плане, отдых тоже считается
func checkMissingDays(week models.Week) []string {
	present := make(map[models.Day]bool, len(week.Sessions))
	for _, s := range week.Sessions {
		present[s.Day] = true
	}

	var missing []string
	for _, d := range models.WeekDays {
		if !present[d] {
			missing = append(missing, string(d))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return []string{
		fmt.Sprintf("Week %d: Missing days: %s", week.WeekNumber, strings.Join(missing, ", ")),
	}
}

// checkAllowedDays правило 5
func checkAllowedDays(week models.Week, allowedDays []models.Day) []string {
	allowed := make(map[models.Day]bool, len(allowedDays))
	names := make([]string, 0, len(allowedDays))
	for _, d := range allowedDays {
		allowed[d] = true
		names = append(names, string(d))
	}

	var violations []string
	for _, s := range week.Sessions {
		if s.Type.IsRest() || allowed[s.Day] {
			continue
		}
		violations = append(violations,
			fmt.Sprintf("Week %d: Session \"%s\" on %s but only %s allowed",
				week.WeekNumber, s.Title, s.Day, strings.Join(names, ", ")))
	}
	return violations
}
