package view

// FilePatch is a whole-file content replacement. The refinement collaborator
// must supply the complete new content, partial diffs are not accepted.
type FilePatch struct {
	FilePath   string `json:"filePath"`
	NewContent string `json:"newContent"`
}

type PatchSet struct {
	Patches     []FilePatch `json:"patches"`
	Explanation string      `json:"explanation"`
}

type ApplyStatus string

const (
	ApplySuccess        ApplyStatus = "success"
	ApplyPartialSuccess ApplyStatus = "partial_success"
	ApplyError          ApplyStatus = "error"
)

type FileApplyResult struct {
	FilePath string `json:"filePath"` // path as requested by the collaborator
	Written  string `json:"written,omitempty"`
	Success  bool   `json:"success"`
	Details  string `json:"details,omitempty"`
}

type ApplyResult struct {
	Status ApplyStatus       `json:"status"`
	Files  []FileApplyResult `json:"files"`
}

func (a ApplyResult) FailedCount() int {
	count := 0
	for _, f := range a.Files {
		if !f.Success {
			count++
		}
	}
	return count
}
