package validation

import (
	"fmt"
	"strings"
)

// FormatResult форматирует результат проверки для вывода пользователю
func FormatResult(result Result) string {
	var sb strings.Builder

	if result.IsValid {
		sb.WriteString("✅ План соответствует ограничениям\n")
		return sb.String()
	}

	sb.WriteString("❌ План требует доработки\n\n")
	sb.WriteString(fmt.Sprintf("🚫 НАРУШЕНИЯ (%d):\n", len(result.Violations)))
	for _, v := range result.Violations {
		sb.WriteString(fmt.Sprintf("  • %s\n", v))
	}

	return sb.String()
}

// RetryHints возвращает подсказки для AI при перегенерации плана
func RetryHints(result Result) string {
	if result.IsValid || len(result.Violations) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("FIX THE FOLLOWING CONSTRAINT VIOLATIONS:\n")
	for _, v := range result.Violations {
		sb.WriteString(fmt.Sprintf("- %s\n", v))
	}
	return sb.String()
}
