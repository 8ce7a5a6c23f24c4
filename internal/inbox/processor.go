package inbox

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"runplan/internal/excel"
	"runplan/internal/models"
	"runplan/internal/validation"
)

const resultSuffix = ".result.json"

// Envelope файл, который кладут во входящую папку
type Envelope struct {
	UserID      string          `json:"userId"`
	Constraints json.RawMessage `json:"constraints"`
	Plan        json.RawMessage `json:"plan"`
}

// ResultSaver сохраняет результат проверки (например, в БД)
type ResultSaver interface {
	Save(ctx context.Context, userID string, result validation.Result) (uuid.UUID, error)
}

// Processor проверяет файлы планов и пишет отчёты
type Processor struct {
	reportsDir string
	saver      ResultSaver
}

// NewProcessor создаёт обработчик. saver может быть nil
func NewProcessor(reportsDir string, saver ResultSaver) *Processor {
	return &Processor{reportsDir: reportsDir, saver: saver}
}

// ProcessFile проверяет один файл и пишет <имя>.result.json и <имя>.xlsx.
// Ошибка возвращается только если файл не удалось прочитать или ограничения некорректны;
// сломанный план это обычный результат с нарушением структуры
func (p *Processor) ProcessFile(ctx context.Context, path string) (validation.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return validation.Result{}, fmt.Errorf("не удалось прочитать файл: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return validation.Result{}, fmt.Errorf("ошибка парсинга конверта: %w", err)
	}

	constraints, err := validation.ParseConstraints(env.Constraints)
	if err != nil {
		return validation.Result{}, err
	}

	// plan остаётся nil при сломанной структуре, ValidatePlan вернёт одно нарушение
	var plan *models.Plan
	if parsed, err := validation.ParsePlan(env.Plan); err == nil {
		plan = parsed
	}
	result := validation.ValidatePlan(plan, constraints)

	if err := os.MkdirAll(p.reportsDir, 0755); err != nil {
		return result, fmt.Errorf("ошибка создания папки отчётов: %w", err)
	}

	base := reportBase(path)
	resultJSON, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return result, err
	}
	if err := os.WriteFile(filepath.Join(p.reportsDir, base+resultSuffix), resultJSON, 0644); err != nil {
		return result, fmt.Errorf("ошибка записи результата: %w", err)
	}

	f, err := excel.ExportReport(plan, constraints, result)
	if err != nil {
		return result, err
	}
	defer f.Close()
	if err := f.SaveAs(filepath.Join(p.reportsDir, base+".xlsx")); err != nil {
		return result, fmt.Errorf("ошибка сохранения отчёта: %w", err)
	}

	if p.saver != nil && env.UserID != "" {
		if _, err := p.saver.Save(ctx, env.UserID, result); err != nil {
			return result, fmt.Errorf("ошибка сохранения проверки: %w", err)
		}
	}

	return result, nil
}

// isPlanFile входящий файл плана, а не наш собственный результат
func isPlanFile(path string) bool {
	name := filepath.Base(path)
	return strings.HasSuffix(name, ".json") && !strings.HasSuffix(name, resultSuffix) && !strings.HasPrefix(name, ".")
}

func reportBase(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".json")
}
