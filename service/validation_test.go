package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Netcracker/qubership-site-refinement-service/view"
)

type fakeValidatorClient struct {
	report *view.ValidatorReport
	err    error

	gotRequest view.ValidateSiteRequest
}

func (f *fakeValidatorClient) ValidateSite(ctx context.Context, req view.ValidateSiteRequest) (*view.ValidatorReport, error) {
	f.gotRequest = req
	return f.report, f.err
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

func TestValidateSessionCoercesReport(t *testing.T) {
	tests := []struct {
		name      string
		raw       *view.ValidatorReport
		wantErr   bool
		wantScore int
	}{
		{
			name:      "well formed",
			raw:       &view.ValidatorReport{Passed: boolPtr(true), Score: intPtr(95)},
			wantScore: 95,
		},
		{
			name: "score clamped high",
			raw:  &view.ValidatorReport{Passed: boolPtr(true), Score: intPtr(250)},

			wantScore: 100,
		},
		{
			name:      "score clamped low",
			raw:       &view.ValidatorReport{Passed: boolPtr(false), Score: intPtr(-5)},
			wantScore: 0,
		},
		{
			name: "score derived from issues",
			raw: &view.ValidatorReport{
				Passed: boolPtr(false),
				Issues: []view.IssueRecord{
					{Severity: view.SeverityError, Description: "a"},
					{Severity: view.SeverityWarning, Description: "b"},
				},
			},
			wantScore: 90,
		},
		{
			name:    "missing verdict",
			raw:     &view.ValidatorReport{Score: intPtr(50)},
			wantErr: true,
		},
		{
			name: "unknown severity",
			raw: &view.ValidatorReport{
				Passed: boolPtr(false),
				Issues: []view.IssueRecord{{Severity: "critical", Description: "a"}},
			},
			wantErr: true,
		},
		{
			name: "issue without description",
			raw: &view.ValidatorReport{
				Passed: boolPtr(false),
				Issues: []view.IssueRecord{{Severity: view.SeverityError}},
			},
			wantErr: true,
		},
		{
			name:    "nil report",
			raw:     nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl := &fakeValidatorClient{report: tt.raw}
			svc := NewValidationService(cl)
			state := NewSessionState("s1", "demo", view.FrameworkHTML, t.TempDir())
			state.SetArtifact("index.html", "<html></html>")

			report, err := svc.ValidateSession(context.Background(), state)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateSession() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if report.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", report.Score, tt.wantScore)
			}
		})
	}
}

func TestValidateSessionRequestShape(t *testing.T) {
	cl := &fakeValidatorClient{report: &view.ValidatorReport{Passed: boolPtr(true)}}
	svc := NewValidationService(cl)

	state := NewSessionState("s1", "demo", view.FrameworkVue, t.TempDir())
	state.SetArtifact("scripts.js", "x")
	state.SetArtifact("index.html", "y")
	state.SetArtifact("components/nav.vue", "z")

	if _, err := svc.ValidateSession(context.Background(), state); err != nil {
		t.Fatalf("ValidateSession() error = %v", err)
	}
	req := cl.gotRequest
	if req.SessionId != "s1" || req.Framework != view.FrameworkVue {
		t.Errorf("request header fields wrong: %+v", req)
	}
	if len(req.Artifacts) != 3 {
		t.Fatalf("artifacts = %d, want 3", len(req.Artifacts))
	}
	// well-known files come first, in canonical order
	if req.Artifacts[0].FileName != "index.html" || req.Artifacts[1].FileName != "scripts.js" {
		t.Errorf("artifact ordering wrong: %s, %s", req.Artifacts[0].FileName, req.Artifacts[1].FileName)
	}
	if req.Artifacts[2].Kind != view.ArtifactComponent {
		t.Errorf("component kind = %s, want %s", req.Artifacts[2].Kind, view.ArtifactComponent)
	}
	if len(req.Breakpoints) == 0 {
		t.Error("request must carry viewport breakpoints")
	}
}

func TestValidateSessionClientFailure(t *testing.T) {
	cl := &fakeValidatorClient{err: errors.New("connection refused")}
	svc := NewValidationService(cl)
	state := NewSessionState("s1", "demo", view.FrameworkHTML, t.TempDir())

	if _, err := svc.ValidateSession(context.Background(), state); err == nil {
		t.Error("ValidateSession() expected error when the collaborator is down")
	}
}
