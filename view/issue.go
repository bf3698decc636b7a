package view

type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

func ValidIssueSeverity(s IssueSeverity) bool {
	switch s {
	case SeverityError, SeverityWarning:
		return true
	}
	return false
}

// IssueRecord describes a single defect found by the validation collaborator.
// Records are never mutated after creation.
type IssueRecord struct {
	Severity    IssueSeverity `json:"severity" jsonschema:"enum=error,enum=warning"`
	Description string        `json:"description"`
	Location    string        `json:"location,omitempty"`
	Suggestion  string        `json:"suggestion,omitempty"`
}
