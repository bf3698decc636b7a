package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Netcracker/qubership-site-refinement-service/view"
	log "github.com/sirupsen/logrus"
)

// Decide is the loop exit rule: a report passes when the validator says so,
// or when it carries no error-severity issues. Warnings alone never block
// completion.
func Decide(report view.ValidationReport) bool {
	if report.Passed {
		return true
	}
	return report.ErrorCount() == 0
}

// PhaseError reports which stage of which iteration failed. Collaborator
// errors are surfaced immediately, the loop never continues on a stale report.
type PhaseError struct {
	Phase     view.LoopPhase
	Iteration int
	Err       error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("refinement loop failed in phase %s at iteration %d: %s", e.Phase, e.Iteration, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// IterationRecord captures one validate-refine cycle for persistence.
type IterationRecord struct {
	Number       int
	Report       view.ValidationReport
	Explanation  string
	ApplyStatus  view.ApplyStatus
	ApplyDetails string
	StartedAt    time.Time
}

type ValidationPhase interface {
	ValidateSession(ctx context.Context, state *SessionState) (*view.ValidationReport, error)
}

type RefinementPhase interface {
	ProposePatchSet(ctx context.Context, state *SessionState, report view.ValidationReport) (*view.PatchSet, error)
}

type RefinementLoopService interface {
	Run(ctx context.Context, state *SessionState, maxIterations int) (*view.LoopOutcome, []IterationRecord, error)
}

func NewRefinementLoopService(validation ValidationPhase, refinement RefinementPhase, applier PatchApplier) RefinementLoopService {
	return &refinementLoopServiceImpl{
		validation: validation,
		refinement: refinement,
		applier:    applier,
	}
}

type refinementLoopServiceImpl struct {
	validation ValidationPhase
	refinement RefinementPhase
	applier    PatchApplier
}

// Run drives at most maxIterations refinement cycles. Each cycle validates,
// decides, and only then refines; the budget is checked before refinement is
// invoked so a doomed cycle never wastes a collaborator call. The validation
// that follows the last permitted refinement still runs, so an exhausted
// budget is reported with the freshest report.
func (l refinementLoopServiceImpl) Run(ctx context.Context, state *SessionState, maxIterations int) (*view.LoopOutcome, []IterationRecord, error) {
	if maxIterations < 1 {
		return nil, nil, fmt.Errorf("maxIterations must be positive, got %d", maxIterations)
	}

	var records []IterationRecord
	iteration := 0

	for {
		cycleStart := time.Now()

		report, err := l.validation.ValidateSession(ctx, state)
		if err != nil {
			return nil, records, &PhaseError{Phase: view.PhaseValidating, Iteration: iteration + 1, Err: err}
		}
		state.LatestReport = report

		record := IterationRecord{
			Number:    iteration + 1,
			Report:    *report,
			StartedAt: cycleStart,
		}

		if Decide(*report) {
			records = append(records, record)
			log.Infof("Session %s converged after %d refinement cycle(s)", state.SessionId, iteration)
			return &view.LoopOutcome{
				Kind:        view.OutcomeConverged,
				FinalReport: *report,
				Iterations:  iteration,
			}, records, nil
		}

		if iteration >= maxIterations {
			records = append(records, record)
			log.Infof("Session %s exhausted iteration budget of %d", state.SessionId, maxIterations)
			return &view.LoopOutcome{
				Kind:        view.OutcomeExhaustedBudget,
				FinalReport: *report,
				Iterations:  iteration,
			}, records, nil
		}
		iteration++

		patchSet, err := l.refinement.ProposePatchSet(ctx, state, *report)
		if err != nil {
			records = append(records, record)
			return nil, records, &PhaseError{Phase: view.PhaseRefining, Iteration: iteration, Err: err}
		}
		record.Explanation = patchSet.Explanation

		applyResult, err := l.applier.Apply(*patchSet, state)
		record.ApplyStatus = applyResult.Status
		if applyResult.FailedCount() > 0 {
			record.ApplyDetails = fmt.Sprintf("%d of %d file(s) failed to apply", applyResult.FailedCount(), len(applyResult.Files))
			log.Warnf("Session %s iteration %d: %s", state.SessionId, iteration, record.ApplyDetails)
		}
		records = append(records, record)
		if err != nil {
			return nil, records, &PhaseError{Phase: view.PhaseApplying, Iteration: iteration, Err: err}
		}
	}
}
