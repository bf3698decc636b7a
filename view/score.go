package view

type Grade string

const Good Grade = "Good"
const Acceptable Grade = "Acceptable"
const Bad Grade = "Bad"

// GradeForReport rolls the issue list up to a single grade: any error makes
// the report Bad, warnings alone make it Acceptable.
func GradeForReport(report ValidationReport) Grade {
	grade := Good
	for _, issue := range report.Issues {
		if issue.Severity == SeverityError {
			return Bad
		}
		if issue.Severity == SeverityWarning {
			grade = Acceptable
		}
	}
	return grade
}
