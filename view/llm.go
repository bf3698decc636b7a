package view

// Structured-output shapes for the LLM refinement collaborator. The client
// reflects these into JSON schemas, so field tags define the wire contract.

type PatchSetOutput struct {
	Patches     []FilePatchOutput `json:"patches"`
	Explanation string            `json:"explanation"`
}

type FilePatchOutput struct {
	FilePath  string `json:"file_path"`
	FixedCode string `json:"fixed_code"`
}

type AuditIssuesOutput struct {
	Issues []IssueRecord `json:"issues"`
}

type UpdatePromptReq struct {
	Prompt string `json:"prompt"`
}

type UpdateModelReq struct {
	Model string `json:"model"`
}
