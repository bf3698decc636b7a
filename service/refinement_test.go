package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Netcracker/qubership-site-refinement-service/view"
)

type fakeLLMClient struct {
	patchSet *view.PatchSet
	err      error

	gotArtifacts []view.CodeArtifact
	gotReport    view.ValidationReport
}

func (f *fakeLLMClient) ProposePatches(ctx context.Context, artifacts []view.CodeArtifact, report view.ValidationReport) (*view.PatchSet, error) {
	f.gotArtifacts = artifacts
	f.gotReport = report
	return f.patchSet, f.err
}

func (f *fakeLLMClient) AuditArtifacts(ctx context.Context, artifacts []view.CodeArtifact) ([]view.IssueRecord, error) {
	return nil, nil
}

func (f *fakeLLMClient) UpdateRefinePrompt(prompt string) {}

func (f *fakeLLMClient) UpdateModel(model string) error { return nil }

func TestProposePatchSetPassesContext(t *testing.T) {
	cl := &fakeLLMClient{patchSet: &view.PatchSet{
		Patches: []view.FilePatch{{FilePath: "index.html", NewContent: "<html></html>"}},
	}}
	svc := NewRefinementService(cl)

	state := NewSessionState("s1", "demo", view.FrameworkHTML, t.TempDir())
	state.SetArtifact("index.html", "<html>old</html>")
	report := view.ValidationReport{
		Issues: []view.IssueRecord{{Severity: view.SeverityError, Description: "broken"}},
	}

	patchSet, err := svc.ProposePatchSet(context.Background(), state, report)
	if err != nil {
		t.Fatalf("ProposePatchSet() error = %v", err)
	}
	if len(patchSet.Patches) != 1 {
		t.Errorf("patches = %d, want 1", len(patchSet.Patches))
	}
	if len(cl.gotArtifacts) != 1 || cl.gotArtifacts[0].FileName != "index.html" {
		t.Errorf("collaborator did not receive the session artifacts: %+v", cl.gotArtifacts)
	}
	if len(cl.gotReport.Issues) != 1 {
		t.Errorf("collaborator did not receive the report")
	}
}

func TestProposePatchSetRejectsMalformedProposal(t *testing.T) {
	tests := []struct {
		name     string
		patchSet *view.PatchSet
		err      error
		wantErr  bool
	}{
		{
			name:     "patch without file path",
			patchSet: &view.PatchSet{Patches: []view.FilePatch{{NewContent: "x"}}},
			wantErr:  true,
		},
		{
			name:    "nil proposal",
			wantErr: true,
		},
		{
			name:     "empty patch list is allowed",
			patchSet: &view.PatchSet{Explanation: "nothing to fix"},
		},
		{
			name:    "collaborator failure",
			err:     errors.New("quota exceeded"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRefinementService(&fakeLLMClient{patchSet: tt.patchSet, err: tt.err})
			state := NewSessionState("s1", "demo", view.FrameworkHTML, t.TempDir())
			_, err := svc.ProposePatchSet(context.Background(), state, view.ValidationReport{})
			if (err != nil) != tt.wantErr {
				t.Errorf("ProposePatchSet() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
