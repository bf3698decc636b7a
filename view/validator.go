package view

// ValidateSiteRequest is the payload sent to the external validation service.
// Artifacts are passed by content so the validator does not need access to
// the session output directory.
type ValidateSiteRequest struct {
	SessionId   string         `json:"sessionId"`
	Framework   Framework      `json:"framework,omitempty"`
	Artifacts   []CodeArtifact `json:"artifacts"`
	Breakpoints []int          `json:"breakpoints,omitempty"`
}

// ValidatorReport is the raw response of the validation service before
// boundary checks coerce it into a ValidationReport.
type ValidatorReport struct {
	Passed *bool         `json:"passed"`
	Issues []IssueRecord `json:"issues"`
	Score  *int          `json:"score,omitempty"`
}
