package validation

import (
	"fmt"
	"strconv"

	"runplan/internal/models"
)

// Правило 10%: рост объёма бега неделя к неделе не больше 10% (+0.5 п.п. допуск)
const (
	MaxWeeklyIncreasePercent = 10.0
	increaseTolerance        = 0.5
)

// ValidateVolumeProgression сравнивает соседние недели по running_km.
// Снижение объёма считается разгрузкой и не проверяется.
//
// startKm (объём до начала плана) принимается, но с первой неделей не сравнивается:
// проверяются только пары недель внутри плана
func ValidateVolumeProgression(weeks []models.Week, startKm float64) []string {
	var violations []string
	for i := 0; i+1 < len(weeks); i++ {
		current := weeks[i].TotalLoad.RunningKm
		next := weeks[i+1].TotalLoad.RunningKm
		weekNum := weeks[i+1].WeekNumber

		// Deload
		if next < current {
			continue
		}

		if current == 0 {
			// 0 -> 0 без изменений, 0 -> X рост из ниоткуда
			if next > 0 {
				violations = append(violations,
					fmt.Sprintf("Week %d: Volume increased from 0km to %skm, exceeds 10%% rule",
						weekNum, formatKm(next)))
			}
			continue
		}

		increase := (next - current) / current * 100
		if increase > MaxWeeklyIncreasePercent+increaseTolerance {
			violations = append(violations,
				fmt.Sprintf("Week %d: Volume increased by %.1f%% (%skm → %skm), exceeds 10%% rule",
					weekNum, increase, formatKm(current), formatKm(next)))
		}
	}
	return violations
}

// formatKm печатает километры без лишних нулей: 50 -> "50", 52.5 -> "52.5"
func formatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}
