package bot

import (
	"strings"
	"testing"
	"unicode/utf8"

	"runplan/internal/models"
)

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		limit     int
		wantParts int
	}{
		{"short", "hello", 10, 1},
		{"exact limit", "0123456789", 10, 1},
		{"split on lines", "aaaa\nbbbb\ncccc\n", 10, 2},
		{"long single line", strings.Repeat("я", 25), 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := splitMessage(tt.text, tt.limit)
			if len(parts) != tt.wantParts {
				t.Fatalf("splitMessage() returned %d parts, want %d: %q", len(parts), tt.wantParts, parts)
			}
			if strings.Join(parts, "") != tt.text {
				t.Errorf("parts do not add up to the original text: %q", parts)
			}
			for _, p := range parts {
				if utf8.RuneCountInString(p) > tt.limit {
					t.Errorf("part %q is longer than %d", p, tt.limit)
				}
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `{"weeks": []}`, `{"weeks": []}`},
		{"spaces", "  {\"weeks\": []}\n", `{"weeks": []}`},
		{"code block", "```json\n{\"weeks\": []}\n```", `{"weeks": []}`},
		{"code block without lang", "```\n{}\n```", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.input); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLooksLikeJSON(t *testing.T) {
	if !looksLikeJSON("```json\n{\"weeks\": []}```") {
		t.Error("code block with object should look like JSON")
	}
	if looksLikeJSON("привет") {
		t.Error("plain text should not look like JSON")
	}
}

func TestFormatConstraints(t *testing.T) {
	got := formatConstraints(models.UserConstraints{
		SessionsPerWeek: 3,
		AvailableDays:   []models.Day{models.Monday},
		BlockedDays:     []models.Day{},
	})
	for _, want := range []string{`"sessionsPerWeek": 3`, `"availableDays": [`, `"monday"`} {
		if !strings.Contains(got, want) {
			t.Errorf("formatConstraints() = %q, missing %q", got, want)
		}
	}
}

func TestNotify_InvalidUserID(t *testing.T) {
	b := &Bot{}
	if err := b.Notify("not-a-chat", "text"); err == nil {
		t.Error("Notify() with non-numeric user ID should fail")
	}
}
