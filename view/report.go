package view

// ValidationReport is the aggregate verdict for one validation pass.
// A report is created fresh on every pass and superseded, never mutated.
type ValidationReport struct {
	Passed bool          `json:"passed"`
	Issues []IssueRecord `json:"issues"` // insertion order = detection order
	Score  int           `json:"score"`  // 0-100, advisory only
}

func (r ValidationReport) ErrorCount() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			count++
		}
	}
	return count
}

func (r ValidationReport) WarningCount() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			count++
		}
	}
	return count
}

// DeriveScore is used when the validation collaborator does not supply a score.
func DeriveScore(issues []IssueRecord) int {
	score := 100 - len(issues)*5
	if score < 0 {
		score = 0
	}
	return score
}
