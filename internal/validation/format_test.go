package validation

import (
	"strings"
	"testing"
)

func TestFormatResult(t *testing.T) {
	valid := FormatResult(Result{IsValid: true, Violations: []string{}})
	if !strings.Contains(valid, "✅") {
		t.Errorf("FormatResult(valid) = %q, want ✅ marker", valid)
	}

	invalid := FormatResult(Result{IsValid: false, Violations: []string{
		"Week 1: Expected 5 sessions but found 4",
		"Week 1: Missing days: sunday",
	}})
	if !strings.Contains(invalid, "❌") {
		t.Errorf("FormatResult(invalid) = %q, want ❌ marker", invalid)
	}
	if !strings.Contains(invalid, "НАРУШЕНИЯ (2)") {
		t.Errorf("FormatResult(invalid) = %q, want violation count", invalid)
	}
	if !strings.Contains(invalid, "  • Week 1: Missing days: sunday\n") {
		t.Errorf("FormatResult(invalid) = %q, want bullet per violation", invalid)
	}
}

func TestRetryHints(t *testing.T) {
	if got := RetryHints(Result{IsValid: true}); got != "" {
		t.Errorf("RetryHints(valid) = %q, want empty", got)
	}

	got := RetryHints(Result{Violations: []string{"Week 2: Missing days: monday"}})
	want := "FIX THE FOLLOWING CONSTRAINT VIOLATIONS:\n- Week 2: Missing days: monday\n"
	if got != want {
		t.Errorf("RetryHints() = %q, want %q", got, want)
	}
}
