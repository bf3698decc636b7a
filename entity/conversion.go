package entity

import (
	"encoding/json"

	"github.com/Netcracker/qubership-site-refinement-service/view"
)

func MakeSessionStatusView(ent RefinementSession) view.SessionStatusResponse {
	resp := view.SessionStatusResponse{
		SessionId:       ent.Id,
		Status:          ent.Status,
		Details:         ent.Details,
		Outcome:         ent.Outcome,
		Iterations:      ent.Iterations,
		RefinementCount: ent.RefinementCount,
	}
	if len(ent.FinalReport) > 0 {
		var report view.ValidationReport
		if err := json.Unmarshal(ent.FinalReport, &report); err == nil {
			resp.Grade = view.GradeForReport(report)
			resp.FinalReport = &report
		}
	}
	return resp
}

func MakeIterationView(ent RefinementIteration) view.IterationView {
	result := view.IterationView{
		Number:       ent.Number,
		Explanation:  ent.Explanation,
		ApplyStatus:  ent.ApplyStatus,
		ApplyDetails: ent.ApplyDetails,
		StartedAt:    ent.StartedAt,
	}
	if len(ent.Report) > 0 {
		var report view.ValidationReport
		if err := json.Unmarshal(ent.Report, &report); err == nil {
			result.Report = report
		}
	}
	return result
}
