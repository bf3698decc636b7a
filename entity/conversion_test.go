package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Netcracker/qubership-site-refinement-service/view"
)

func TestMakeSessionStatusView(t *testing.T) {
	report := view.ValidationReport{
		Passed: false,
		Issues: []view.IssueRecord{{Severity: view.SeverityWarning, Description: "low contrast"}},
		Score:  95,
	}
	reportBytes, err := json.Marshal(report)
	if err != nil {
		t.Fatal(err)
	}

	ent := RefinementSession{
		Id:              "s1",
		Status:          view.SessionStatusSuccess,
		Outcome:         view.OutcomeConverged,
		Iterations:      2,
		RefinementCount: 2,
		FinalReport:     reportBytes,
	}

	resp := MakeSessionStatusView(ent)
	if resp.Grade != view.Acceptable {
		t.Errorf("grade = %s, want %s", resp.Grade, view.Acceptable)
	}
	if resp.FinalReport == nil || resp.FinalReport.Score != 95 {
		t.Errorf("final report not exposed: %+v", resp.FinalReport)
	}
	if resp.Outcome != view.OutcomeConverged || resp.Iterations != 2 {
		t.Errorf("outcome fields wrong: %+v", resp)
	}
}

func TestMakeSessionStatusViewWithoutReport(t *testing.T) {
	resp := MakeSessionStatusView(RefinementSession{Id: "s1", Status: view.SessionStatusProcessing})
	if resp.Grade != "" || resp.FinalReport != nil {
		t.Errorf("unfinished session must not carry a grade or report: %+v", resp)
	}
}

func TestMakeIterationView(t *testing.T) {
	report := view.ValidationReport{Passed: true, Score: 100}
	reportBytes, _ := json.Marshal(report)

	ent := RefinementIteration{
		SessionId:    "s1",
		Number:       3,
		Report:       reportBytes,
		Explanation:  "fixed broken selector",
		ApplyStatus:  view.ApplyPartialSuccess,
		ApplyDetails: "1 of 2 file(s) failed to apply",
		StartedAt:    time.Now(),
	}

	result := MakeIterationView(ent)
	if result.Number != 3 || !result.Report.Passed {
		t.Errorf("iteration view wrong: %+v", result)
	}
	if result.ApplyStatus != view.ApplyPartialSuccess || result.ApplyDetails == "" {
		t.Errorf("apply fields not carried over: %+v", result)
	}
}
