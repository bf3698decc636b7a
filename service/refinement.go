package service

import (
	"context"
	"fmt"

	"github.com/Netcracker/qubership-site-refinement-service/client"
	"github.com/Netcracker/qubership-site-refinement-service/view"
	log "github.com/sirupsen/logrus"
)

// RefinementService asks the LLM refinement collaborator for a patch set
// addressing the issues of a validation report. The proposal is checked at
// this boundary before the applier ever sees it.
type RefinementService interface {
	RefinementPhase
}

func NewRefinementService(llmClient client.LLMClient) RefinementService {
	return &refinementServiceImpl{llmClient: llmClient}
}

type refinementServiceImpl struct {
	llmClient client.LLMClient
}

func (r refinementServiceImpl) ProposePatchSet(ctx context.Context, state *SessionState, report view.ValidationReport) (*view.PatchSet, error) {
	patchSet, err := r.llmClient.ProposePatches(ctx, state.OrderedArtifacts(), report)
	if err != nil {
		return nil, fmt.Errorf("refinement collaborator failed: %w", err)
	}
	if err := checkPatchSet(patchSet); err != nil {
		return nil, fmt.Errorf("refinement collaborator returned malformed patch set: %w", err)
	}
	if len(patchSet.Patches) == 0 {
		log.Warnf("Session %s: refinement collaborator proposed no patches for %d open issue(s)",
			state.SessionId, len(report.Issues))
	}
	return patchSet, nil
}

func checkPatchSet(patchSet *view.PatchSet) error {
	if patchSet == nil {
		return fmt.Errorf("patch set is empty")
	}
	for i, patch := range patchSet.Patches {
		if patch.FilePath == "" {
			return fmt.Errorf("patch %d has no file path", i)
		}
	}
	return nil
}
