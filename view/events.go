package view

// SiteGeneratedNotification is published by the generation pipeline when a
// fresh set of code artifacts is ready for the validate-refine loop.
type SiteGeneratedNotification struct {
	SessionId   string    `json:"sessionId"`
	ProjectName string    `json:"projectName"`
	Framework   Framework `json:"framework,omitempty"`
	OutputDir   string    `json:"outputDir"`
}
