package view

import "testing"

func TestGradeForReport(t *testing.T) {
	tests := []struct {
		name   string
		issues []IssueRecord
		want   Grade
	}{
		{name: "no issues", want: Good},
		{
			name:   "warnings only",
			issues: []IssueRecord{{Severity: SeverityWarning, Description: "low contrast"}},
			want:   Acceptable,
		},
		{
			name: "any error",
			issues: []IssueRecord{
				{Severity: SeverityWarning, Description: "low contrast"},
				{Severity: SeverityError, Description: "broken link"},
			},
			want: Bad,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GradeForReport(ValidationReport{Issues: tt.issues}); got != tt.want {
				t.Errorf("GradeForReport() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDeriveScore(t *testing.T) {
	if got := DeriveScore(nil); got != 100 {
		t.Errorf("DeriveScore(nil) = %d, want 100", got)
	}
	three := make([]IssueRecord, 3)
	if got := DeriveScore(three); got != 85 {
		t.Errorf("DeriveScore(3 issues) = %d, want 85", got)
	}
	many := make([]IssueRecord, 40)
	if got := DeriveScore(many); got != 0 {
		t.Errorf("DeriveScore(40 issues) = %d, want 0 (floored)", got)
	}
}

func TestIssueCounts(t *testing.T) {
	report := ValidationReport{Issues: []IssueRecord{
		{Severity: SeverityError, Description: "a"},
		{Severity: SeverityWarning, Description: "b"},
		{Severity: SeverityError, Description: "c"},
	}}
	if report.ErrorCount() != 2 {
		t.Errorf("ErrorCount() = %d, want 2", report.ErrorCount())
	}
	if report.WarningCount() != 1 {
		t.Errorf("WarningCount() = %d, want 1", report.WarningCount())
	}
}
