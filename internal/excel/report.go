package excel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"runplan/internal/models"
	"runplan/internal/validation"
)

// Excel sheet names
const (
	SheetSummary    = "Сводка"
	SheetViolations = "Нарушения"
	SheetWeeks      = "Недели"
)

var weekPrefix = regexp.MustCompile(`^Week (\d+):`)

// WeekOfViolation достаёт номер недели из сообщения "Week N: ...", 0 если его нет
func WeekOfViolation(msg string) int {
	m := weekPrefix.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// ExportReport создаёт отчёт о проверке плана. plan может быть nil,
// если документ не удалось разобрать
func ExportReport(plan *models.Plan, constraints models.UserConstraints, result validation.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetViolations); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetWeeks); err != nil {
		return nil, err
	}

	if err := createSummarySheet(f, constraints, result); err != nil {
		return nil, fmt.Errorf("ошибка создания сводки: %w", err)
	}
	if err := createViolationsSheet(f, result); err != nil {
		return nil, fmt.Errorf("ошибка создания листа нарушений: %w", err)
	}
	if err := createWeeksSheet(f, plan); err != nil {
		return nil, fmt.Errorf("ошибка создания листа недель: %w", err)
	}

	f.SetActiveSheet(0)
	return f, nil
}

func createSummarySheet(f *excelize.File, c models.UserConstraints, result validation.Result) error {
	sheet := SheetSummary

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	verdictColor := "C6EFCE"
	verdict := "План соответствует ограничениям"
	if !result.IsValid {
		verdictColor = "FFC7CE"
		verdict = "План требует доработки"
	}
	verdictStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{verdictColor}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "ПРОВЕРКА ТРЕНИРОВОЧНОГО ПЛАНА")
	f.MergeCell(sheet, "A1", "B1")
	f.SetCellStyle(sheet, "A1", "B1", headerStyle)
	f.SetRowHeight(sheet, 1, 26)

	trainingType := c.TrainingType
	if trainingType == "" {
		trainingType = "—"
	}

	info := [][]interface{}{
		{"Результат:", verdict},
		{"Нарушений:", len(result.Violations)},
		{"Тип тренировок:", trainingType},
		{"Тренировок в неделю:", c.SessionsPerWeek},
		{"Доступные дни:", joinDays(c.AvailableDays)},
		{"Заблокированные дни:", joinDays(c.BlockedDays)},
		{"Текущий объём, км:", c.CurrentWeeklyKm},
	}
	for i, row := range info {
		r := i + 3
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row[1])
	}
	f.SetCellStyle(sheet, "B3", "B3", verdictStyle)

	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "B", 48)
	return nil
}

func createViolationsSheet(f *excelize.File, result validation.Result) error {
	sheet := SheetViolations

	headers := []string{"№", "Неделя", "Нарушение"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, v := range result.Violations {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		if week := WeekOfViolation(v); week > 0 {
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), week)
		}
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), v)
	}

	f.SetColWidth(sheet, "A", "B", 8)
	f.SetColWidth(sheet, "C", "C", 100)
	return f.AutoFilter(sheet, fmt.Sprintf("A1:C%d", len(result.Violations)+1), nil)
}

func createWeeksSheet(f *excelize.File, plan *models.Plan) error {
	sheet := SheetWeeks

	headers := []string{"Неделя", "День", "Тип", "Название", "Мин", "Км сессии", "Км за неделю"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	if plan == nil {
		return nil
	}

	row := 2
	for _, week := range plan.Weeks {
		for _, s := range week.Sessions {
			values := []interface{}{
				week.WeekNumber, s.Day.NameRu(), string(s.Type), s.Title,
				s.DurationMin, s.DistanceKm, week.TotalLoad.RunningKm,
			}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values); err != nil {
				return err
			}
			row++
		}
	}

	f.SetColWidth(sheet, "D", "D", 40)
	return nil
}

func joinDays(days []models.Day) string {
	if len(days) == 0 {
		return "—"
	}
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}
