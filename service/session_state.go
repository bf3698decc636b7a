package service

import (
	"sort"

	"github.com/Netcracker/qubership-site-refinement-service/view"
)

// SessionState is the mutable state of one refinement session: the code
// artifacts, the latest validation report and the refinement counter.
// State is owned by a single loop run at a time, sessions never share it.
type SessionState struct {
	SessionId   string
	ProjectName string
	Framework   view.Framework
	OutputRoot  string

	// Artifacts are keyed by path relative to OutputRoot.
	Artifacts map[string]view.CodeArtifact

	LatestReport *view.ValidationReport

	// RefinementCount is telemetry only, the loop exit decision never reads it.
	RefinementCount int
}

func NewSessionState(sessionId string, projectName string, framework view.Framework, outputRoot string) *SessionState {
	if framework == "" {
		framework = view.FrameworkHTML
	}
	return &SessionState{
		SessionId:   sessionId,
		ProjectName: projectName,
		Framework:   framework,
		OutputRoot:  outputRoot,
		Artifacts:   make(map[string]view.CodeArtifact),
	}
}

func (s *SessionState) SetArtifact(relPath string, content string) {
	s.Artifacts[relPath] = view.CodeArtifact{
		FileName: relPath,
		Kind:     view.ArtifactKindForFile(relPath),
		Content:  content,
	}
}

// OrderedArtifacts returns the well-known files first (index.html,
// styles.css, scripts.js), then the rest sorted by name, so collaborators
// always see a stable ordering.
func (s *SessionState) OrderedArtifacts() []view.CodeArtifact {
	var result []view.CodeArtifact
	for _, name := range []string{view.IndexHTMLFile, view.StylesCSSFile, view.ScriptsJSFile} {
		if artifact, ok := s.Artifacts[name]; ok {
			result = append(result, artifact)
		}
	}
	var rest []string
	for name := range s.Artifacts {
		if !view.IsWellKnownArtifact(name) {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		result = append(result, s.Artifacts[name])
	}
	return result
}
