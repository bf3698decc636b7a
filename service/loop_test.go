package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Netcracker/qubership-site-refinement-service/view"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name   string
		report view.ValidationReport
		want   bool
	}{
		{
			name:   "passed with no issues",
			report: view.ValidationReport{Passed: true},
			want:   true,
		},
		{
			name: "passed flag wins even with errors listed",
			report: view.ValidationReport{
				Passed: true,
				Issues: []view.IssueRecord{{Severity: view.SeverityError, Description: "broken link"}},
			},
			want: true,
		},
		{
			name: "warnings only",
			report: view.ValidationReport{
				Passed: false,
				Issues: []view.IssueRecord{
					{Severity: view.SeverityWarning, Description: "missing alt text"},
					{Severity: view.SeverityWarning, Description: "low contrast"},
				},
			},
			want: true,
		},
		{
			name: "single error blocks exit",
			report: view.ValidationReport{
				Passed: false,
				Issues: []view.IssueRecord{
					{Severity: view.SeverityWarning, Description: "missing alt text"},
					{Severity: view.SeverityError, Description: "undefined selector"},
				},
			},
			want: false,
		},
		{
			name:   "not passed with empty issue list",
			report: view.ValidationReport{Passed: false},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.report); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

type fakeValidation struct {
	reports []view.ValidationReport
	errs    []error
	calls   int
}

func (f *fakeValidation) ValidateSession(ctx context.Context, state *SessionState) (*view.ValidationReport, error) {
	idx := f.calls
	f.calls++
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	if idx >= len(f.reports) {
		idx = len(f.reports) - 1
	}
	report := f.reports[idx]
	return &report, nil
}

type fakeRefinement struct {
	patchSet *view.PatchSet
	err      error
	calls    int
}

func (f *fakeRefinement) ProposePatchSet(ctx context.Context, state *SessionState, report view.ValidationReport) (*view.PatchSet, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.patchSet != nil {
		return f.patchSet, nil
	}
	return &view.PatchSet{
		Patches:     []view.FilePatch{{FilePath: "index.html", NewContent: "<html></html>"}},
		Explanation: fmt.Sprintf("fix attempt %d", f.calls),
	}, nil
}

type fakeApplier struct {
	result view.ApplyResult
	err    error
	calls  int
}

func (f *fakeApplier) Apply(patchSet view.PatchSet, state *SessionState) (view.ApplyResult, error) {
	f.calls++
	state.RefinementCount++
	if f.err != nil {
		return view.ApplyResult{Status: view.ApplyError}, f.err
	}
	if f.result.Status == "" {
		return view.ApplyResult{Status: view.ApplySuccess}, nil
	}
	return f.result, nil
}

func failingReport() view.ValidationReport {
	return view.ValidationReport{
		Passed: false,
		Issues: []view.IssueRecord{{Severity: view.SeverityError, Description: "undefined selector"}},
	}
}

func passingReport() view.ValidationReport {
	return view.ValidationReport{Passed: true, Score: 100}
}

func TestLoopConvergesWithoutRefinement(t *testing.T) {
	validation := &fakeValidation{reports: []view.ValidationReport{passingReport()}}
	refinement := &fakeRefinement{}
	applier := &fakeApplier{}
	loop := NewRefinementLoopService(validation, refinement, applier)

	state := NewSessionState("s1", "demo", view.FrameworkHTML, t.TempDir())
	outcome, records, err := loop.Run(context.Background(), state, 3)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome.Kind != view.OutcomeConverged {
		t.Errorf("outcome = %s, want %s", outcome.Kind, view.OutcomeConverged)
	}
	if outcome.Iterations != 0 {
		t.Errorf("iterations = %d, want 0", outcome.Iterations)
	}
	if refinement.calls != 0 {
		t.Errorf("refinement called %d times after convergence, want 0", refinement.calls)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1", len(records))
	}
	if state.RefinementCount != 0 {
		t.Errorf("refinement count = %d, want 0", state.RefinementCount)
	}
}

func TestLoopConvergesOnWarningsOnly(t *testing.T) {
	warningsOnly := view.ValidationReport{
		Passed: false,
		Issues: []view.IssueRecord{{Severity: view.SeverityWarning, Description: "low contrast"}},
	}
	validation := &fakeValidation{reports: []view.ValidationReport{warningsOnly}}
	refinement := &fakeRefinement{}
	loop := NewRefinementLoopService(validation, refinement, &fakeApplier{})

	state := NewSessionState("s1", "demo", view.FrameworkHTML, t.TempDir())
	outcome, _, err := loop.Run(context.Background(), state, 3)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome.Kind != view.OutcomeConverged {
		t.Errorf("outcome = %s, want %s", outcome.Kind, view.OutcomeConverged)
	}
	if refinement.calls != 0 {
		t.Errorf("refinement called %d times for a warnings-only report", refinement.calls)
	}
	if len(outcome.FinalReport.Issues) != 1 {
		t.Errorf("final report lost the warning")
	}
}

func TestLoopConvergesAfterRefinement(t *testing.T) {
	validation := &fakeValidation{reports: []view.ValidationReport{failingReport(), passingReport()}}
	refinement := &fakeRefinement{}
	applier := &fakeApplier{}
	loop := NewRefinementLoopService(validation, refinement, applier)

	state := NewSessionState("s1", "demo", view.FrameworkHTML, t.TempDir())
	outcome, records, err := loop.Run(context.Background(), state, 3)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome.Kind != view.OutcomeConverged {
		t.Errorf("outcome = %s, want %s", outcome.Kind, view.OutcomeConverged)
	}
	if outcome.Iterations != 1 {
		t.Errorf("iterations = %d, want 1", outcome.Iterations)
	}
	if refinement.calls != 1 || applier.calls != 1 {
		t.Errorf("refinement/applier calls = %d/%d, want 1/1", refinement.calls, applier.calls)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Explanation == "" {
		t.Errorf("first record should carry the patch set explanation")
	}
	if !outcome.FinalReport.Passed {
		t.Errorf("final report must be the passing one")
	}
}

func TestLoopExhaustsBudget(t *testing.T) {
	// budget of one: one refinement, two validations, freshest report returned
	first := failingReport()
	second := view.ValidationReport{
		Passed: false,
		Issues: []view.IssueRecord{{Severity: view.SeverityError, Description: "still broken", Location: "index.html"}},
	}
	validation := &fakeValidation{reports: []view.ValidationReport{first, second}}
	refinement := &fakeRefinement{}
	applier := &fakeApplier{}
	loop := NewRefinementLoopService(validation, refinement, applier)

	state := NewSessionState("s1", "demo", view.FrameworkHTML, t.TempDir())
	outcome, records, err := loop.Run(context.Background(), state, 1)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome.Kind != view.OutcomeExhaustedBudget {
		t.Errorf("outcome = %s, want %s", outcome.Kind, view.OutcomeExhaustedBudget)
	}
	if validation.calls != 2 {
		t.Errorf("validation calls = %d, want 2", validation.calls)
	}
	if refinement.calls != 1 {
		t.Errorf("refinement calls = %d, want 1", refinement.calls)
	}
	if outcome.Iterations != 1 {
		t.Errorf("iterations = %d, want 1", outcome.Iterations)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if outcome.FinalReport.Issues[0].Description != "still broken" {
		t.Errorf("outcome must carry the report of the final validation, got %+v", outcome.FinalReport.Issues)
	}
}

func TestLoopSurfacesValidationFailure(t *testing.T) {
	validation := &fakeValidation{
		reports: []view.ValidationReport{failingReport()},
		errs:    []error{nil, errors.New("validator unreachable")},
	}
	loop := NewRefinementLoopService(validation, &fakeRefinement{}, &fakeApplier{})

	state := NewSessionState("s1", "demo", view.FrameworkHTML, t.TempDir())
	_, records, err := loop.Run(context.Background(), state, 3)
	if err == nil {
		t.Fatal("Run() expected error")
	}
	var phaseErr *PhaseError
	if !errors.As(err, &phaseErr) {
		t.Fatalf("error %v is not a PhaseError", err)
	}
	if phaseErr.Phase != view.PhaseValidating {
		t.Errorf("phase = %s, want %s", phaseErr.Phase, view.PhaseValidating)
	}
	if phaseErr.Iteration != 2 {
		t.Errorf("iteration = %d, want 2", phaseErr.Iteration)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1 (the completed cycle)", len(records))
	}
	// the last good report stays available for diagnostics
	if state.LatestReport == nil || state.LatestReport.ErrorCount() != 1 {
		t.Errorf("latest report not preserved: %+v", state.LatestReport)
	}
}

func TestLoopSurfacesRefinementFailure(t *testing.T) {
	validation := &fakeValidation{reports: []view.ValidationReport{failingReport()}}
	refinement := &fakeRefinement{err: errors.New("llm quota exceeded")}
	loop := NewRefinementLoopService(validation, refinement, &fakeApplier{})

	state := NewSessionState("s1", "demo", view.FrameworkHTML, t.TempDir())
	_, _, err := loop.Run(context.Background(), state, 3)
	var phaseErr *PhaseError
	if !errors.As(err, &phaseErr) {
		t.Fatalf("error %v is not a PhaseError", err)
	}
	if phaseErr.Phase != view.PhaseRefining {
		t.Errorf("phase = %s, want %s", phaseErr.Phase, view.PhaseRefining)
	}
	if phaseErr.Iteration != 1 {
		t.Errorf("iteration = %d, want 1", phaseErr.Iteration)
	}
}

func TestLoopSurfacesApplyFailure(t *testing.T) {
	validation := &fakeValidation{reports: []view.ValidationReport{failingReport()}}
	applier := &fakeApplier{err: errors.New("output directory gone")}
	loop := NewRefinementLoopService(validation, &fakeRefinement{}, applier)

	state := NewSessionState("s1", "demo", view.FrameworkHTML, t.TempDir())
	_, _, err := loop.Run(context.Background(), state, 3)
	var phaseErr *PhaseError
	if !errors.As(err, &phaseErr) {
		t.Fatalf("error %v is not a PhaseError", err)
	}
	if phaseErr.Phase != view.PhaseApplying {
		t.Errorf("phase = %s, want %s", phaseErr.Phase, view.PhaseApplying)
	}
}

func TestLoopRejectsNonPositiveBudget(t *testing.T) {
	loop := NewRefinementLoopService(&fakeValidation{reports: []view.ValidationReport{passingReport()}}, &fakeRefinement{}, &fakeApplier{})
	state := NewSessionState("s1", "demo", view.FrameworkHTML, t.TempDir())
	if _, _, err := loop.Run(context.Background(), state, 0); err == nil {
		t.Error("Run() with zero budget expected error")
	}
	if _, _, err := loop.Run(context.Background(), state, -1); err == nil {
		t.Error("Run() with negative budget expected error")
	}
}
