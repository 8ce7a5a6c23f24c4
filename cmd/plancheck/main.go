package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"runplan/internal/excel"
	"runplan/internal/models"
	"runplan/internal/validation"
)

func main() {
	planPath := flag.String("plan", "", "Путь к JSON файлу с планом")
	constraintsPath := flag.String("constraints", "", "Путь к JSON файлу с ограничениями")
	xlsxPath := flag.String("xlsx", "", "Сохранить отчёт в Excel (путь к .xlsx)")
	asJSON := flag.Bool("json", false, "Вывести результат в JSON вместо текста")
	flag.Parse()

	if *planPath == "" || *constraintsPath == "" {
		fmt.Fprintln(os.Stderr, "Использование: plancheck -plan plan.json -constraints constraints.json [-xlsx report.xlsx] [-json]")
		os.Exit(2)
	}

	constraintsData, err := os.ReadFile(*constraintsPath)
	if err != nil {
		log.Fatalf("Ошибка чтения ограничений: %v", err)
	}
	constraints, err := validation.ParseConstraints(constraintsData)
	if err != nil {
		log.Fatalf("Некорректные ограничения: %v", err)
	}

	planData, err := os.ReadFile(*planPath)
	if err != nil {
		log.Fatalf("Ошибка чтения плана: %v", err)
	}

	// Сломанный план даёт результат с нарушением структуры, а не ошибку
	var plan *models.Plan
	if parsed, err := validation.ParsePlan(planData); err == nil {
		plan = parsed
	}
	result := validation.ValidatePlan(plan, constraints)

	if *asJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("Ошибка сериализации результата: %v", err)
		}
		fmt.Println(string(out))
	} else {
		fmt.Println(validation.FormatResult(result))
	}

	if *xlsxPath != "" {
		f, err := excel.ExportReport(plan, constraints, result)
		if err != nil {
			log.Fatalf("Ошибка формирования отчёта: %v", err)
		}
		if err := f.SaveAs(*xlsxPath); err != nil {
			log.Fatalf("Ошибка сохранения отчёта: %v", err)
		}
		f.Close()
		log.Printf("📊 Отчёт сохранён: %s", *xlsxPath)
	}

	if !result.IsValid {
		os.Exit(1)
	}
}
