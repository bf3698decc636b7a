package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Netcracker/qubership-site-refinement-service/view"
	log "github.com/sirupsen/logrus"
)

// PatchApplier commits a PatchSet to the session output directory. Every
// patch is a whole-file replacement. Files are applied independently: a bad
// path is recorded per-file and does not abort the remaining patches, so
// there is no cross-file atomicity guarantee.
type PatchApplier interface {
	Apply(patchSet view.PatchSet, state *SessionState) (view.ApplyResult, error)
}

func NewPatchApplier() PatchApplier {
	return &patchApplierImpl{}
}

type patchApplierImpl struct{}

func (p patchApplierImpl) Apply(patchSet view.PatchSet, state *SessionState) (view.ApplyResult, error) {
	result := view.ApplyResult{}

	if info, err := os.Stat(state.OutputRoot); err != nil || !info.IsDir() {
		result.Status = view.ApplyError
		for _, patch := range patchSet.Patches {
			result.Files = append(result.Files, view.FileApplyResult{
				FilePath: patch.FilePath,
				Success:  false,
				Details:  fmt.Sprintf("output directory %s is not accessible", state.OutputRoot),
			})
		}
		return result, fmt.Errorf("output directory %s is not accessible", state.OutputRoot)
	}

	succeeded := 0
	for _, patch := range patchSet.Patches {
		fileResult := view.FileApplyResult{FilePath: patch.FilePath}

		relPath, err := NormalizePatchPath(patch.FilePath)
		if err == nil {
			err = p.writePatch(state, relPath, patch.NewContent)
		}
		if err != nil {
			fileResult.Success = false
			fileResult.Details = err.Error()
			log.Errorf("Session %s: failed to apply patch for %s: %s", state.SessionId, patch.FilePath, err)
		} else {
			fileResult.Success = true
			fileResult.Written = relPath
			succeeded++
		}
		result.Files = append(result.Files, fileResult)
	}

	switch {
	case succeeded == len(patchSet.Patches):
		result.Status = view.ApplySuccess
	case succeeded > 0:
		result.Status = view.ApplyPartialSuccess
	default:
		result.Status = view.ApplyPartialSuccess
		if len(patchSet.Patches) > 0 {
			log.Warnf("Session %s: no file of the patch set could be applied", state.SessionId)
		}
	}

	// one increment per patch set, not per file
	state.RefinementCount++

	return result, nil
}

func (p patchApplierImpl) writePatch(state *SessionState, relPath string, content string) error {
	target := filepath.Join(state.OutputRoot, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("error creating directory for %s: %s", relPath, err)
	}
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return fmt.Errorf("error writing %s: %s", relPath, err)
	}

	// refresh in-memory artifacts so the next validation pass reads memory,
	// not disk
	state.SetArtifact(relPath, content)
	return nil
}

const outputRootMarker = "generated_website"
const legacyOutputMarker = "output"

// NormalizePatchPath maps a collaborator-supplied path onto the session
// output directory. Refinement collaborators regularly prefix paths with a
// hallucinated root ("output/generated_website/index.html", absolute paths),
// so everything up to and including a recognized marker is stripped. A path
// that still escapes the output root after cleaning is rejected, not
// redirected.
func NormalizePatchPath(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("empty file path")
	}

	cleaned := strings.ReplaceAll(filePath, "\\", "/")
	segments := strings.Split(cleaned, "/")

	markerIdx := -1
	for i, segment := range segments {
		if segment == outputRootMarker {
			markerIdx = i
		}
	}
	if markerIdx == -1 {
		for i, segment := range segments {
			if segment == legacyOutputMarker {
				markerIdx = i
			}
		}
	}
	if markerIdx >= 0 {
		segments = segments[markerIdx+1:]
	}

	relPath := strings.TrimPrefix(strings.Join(segments, "/"), "/")
	if relPath == "" {
		return "", fmt.Errorf("path %s does not contain a file name", filePath)
	}

	relPath = filepath.ToSlash(filepath.Clean(filepath.FromSlash(relPath)))
	if relPath == "." || relPath == ".." || strings.HasPrefix(relPath, "../") || filepath.IsAbs(relPath) {
		return "", fmt.Errorf("path %s resolves outside of the output directory", filePath)
	}
	return relPath, nil
}
