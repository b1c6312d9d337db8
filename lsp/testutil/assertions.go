package testutil

import (
	"strings"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// AssertFormattingApplied checks that formatting edits were returned.
func AssertFormattingApplied(t *testing.T, edits []protocol.TextEdit) {
	t.Helper()

	if len(edits) == 0 {
		t.Error("expected formatting edits, got none")
	}
}

// AssertNoFormattingNeeded checks that no formatting edits were needed.
func AssertNoFormattingNeeded(t *testing.T, edits []protocol.TextEdit) {
	t.Helper()

	if len(edits) > 0 {
		t.Errorf("expected no formatting edits, got %d", len(edits))
	}
}

// AssertDiagnosticCount checks that a specific number of diagnostics were published.
func AssertDiagnosticCount(t *testing.T, diags []protocol.Diagnostic, expectedCount int) {
	t.Helper()

	if len(diags) != expectedCount {
		t.Errorf("diagnostic count = %d; want %d", len(diags), expectedCount)
	}
}

// AssertDiagnosticContains checks that a diagnostic whose message contains
// substr exists.
func AssertDiagnosticContains(t *testing.T, diags []protocol.Diagnostic, substr string) {
	t.Helper()

	for _, d := range diags {
		if strings.Contains(d.Message, substr) {
			return
		}
	}
	t.Errorf("no diagnostic message containing %q found", substr)
}

// AssertDiagnosticSeverity checks that a diagnostic with the expected
// severity exists.
func AssertDiagnosticSeverity(t *testing.T, diags []protocol.Diagnostic, expected protocol.DiagnosticSeverity) {
	t.Helper()

	for _, d := range diags {
		if d.Severity != nil && *d.Severity == expected {
			return
		}
	}
	t.Errorf("no diagnostic with severity %v found", expected)
}
