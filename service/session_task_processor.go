package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Netcracker/qubership-site-refinement-service/entity"
	"github.com/Netcracker/qubership-site-refinement-service/repository"
	"github.com/Netcracker/qubership-site-refinement-service/utils"
	"github.com/Netcracker/qubership-site-refinement-service/view"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type SessionTaskProcessor interface {
	Start()
}

func NewSessionTaskProcessor(sessionRepo repository.SessionRepository, iterationRepo repository.IterationRepository,
	sessionService SessionService, loopService RefinementLoopService, executorId string) SessionTaskProcessor {
	return &sessionTaskProcessorImpl{
		sessionRepo:    sessionRepo,
		iterationRepo:  iterationRepo,
		sessionService: sessionService,
		loopService:    loopService,
		executorId:     executorId,
	}
}

type sessionTaskProcessorImpl struct {
	sessionRepo    repository.SessionRepository
	iterationRepo  repository.IterationRepository
	sessionService SessionService
	loopService    RefinementLoopService

	executorId string
}

func (d sessionTaskProcessorImpl) Start() {
	utils.SafeAsync(func() {
		ticker := time.NewTicker(time.Second * 5)

		running := atomic.Bool{}

		for range ticker.C {
			if running.Load() {
				log.Tracef("sessionTaskProcessorImpl: ticker skipped, running")
				continue
			}

			utils.SafeAsync(func() {
				running.Store(true)
				for {
					moreWork := d.processSession()
					if moreWork == false {
						break
					}
					log.Tracef("sessionTaskProcessorImpl: keep on running")
				}
				running.Store(false)
			})
		}
	})
}

func (d sessionTaskProcessorImpl) processSession() bool {
	session, err := d.sessionRepo.FindFreeSession(context.Background(), d.executorId)
	if err != nil {
		log.Errorf("Error finding free refinement session: %s", err)
		return false
	}
	if session != nil {
		d.runSession(context.Background(), *session)
		return true
	}
	return false
}

func (d sessionTaskProcessorImpl) handleError(ctx context.Context, sessionId string, err error) {
	log.Infof("Refinement session %s failed with error: %s", sessionId, err)
	setErr := d.sessionRepo.SetSessionStatus(ctx, sessionId, view.SessionStatusError, err.Error(), d.executorId)
	if setErr != nil {
		log.Errorf("Error updating status of session %s: %s", sessionId, setErr)
	}
}

func (d sessionTaskProcessorImpl) runSession(ctx context.Context, session entity.RefinementSession) {
	runningC := make(chan struct{})
	defer func() {
		close(runningC)
	}()

	// Update last_active during long run
	utils.SafeAsync(func() {
		t := time.NewTicker(time.Second * 5)
		select {
		case <-ctx.Done():
			t.Stop()
			break
		case _, ok := <-t.C:
			if !ok {
				t.Stop()
				break
			}
			err := d.sessionRepo.SetSessionStatus(ctx, session.Id, view.SessionStatusProcessing, "", d.executorId)
			if err != nil {
				log.Errorf("Error updating status of session %s: %s", session.Id, err)
			}
		case _, ok := <-runningC:
			if !ok {
				t.Stop()
				break
			}
		}
	})

	state, err := d.sessionService.LoadSessionState(session)
	if err != nil {
		d.handleError(ctx, session.Id, err)
		return
	}

	log.Infof("Running refinement loop for session %s (project '%s', budget %d)",
		session.Id, session.ProjectName, session.MaxIterations)

	outcome, records, runErr := d.loopService.Run(ctx, state, session.MaxIterations)

	d.saveIterations(ctx, session.Id, records)

	if runErr != nil {
		var phaseErr *PhaseError
		if errors.As(runErr, &phaseErr) {
			d.handleError(ctx, session.Id, fmt.Errorf("phase %s of iteration %d failed: %s",
				phaseErr.Phase, phaseErr.Iteration, phaseErr.Err))
		} else {
			d.handleError(ctx, session.Id, runErr)
		}
		return
	}

	reportBytes, err := json.Marshal(outcome.FinalReport)
	if err != nil {
		d.handleError(ctx, session.Id, fmt.Errorf("failed to marshal final report: %s", err))
		return
	}

	err = d.sessionRepo.SaveRunResult(ctx, session.Id, view.SessionStatusSuccess, "",
		outcome.Kind, outcome.Iterations, state.RefinementCount, reportBytes)
	if err != nil {
		log.Errorf("Failed to save run result of session %s: %s", session.Id, err)
		return
	}

	log.Infof("Refinement session %s finished: outcome=%s, iterations=%d, grade=%s",
		session.Id, outcome.Kind, outcome.Iterations, view.GradeForReport(outcome.FinalReport))
}

func (d sessionTaskProcessorImpl) saveIterations(ctx context.Context, sessionId string, records []IterationRecord) {
	for _, record := range records {
		reportBytes, err := json.Marshal(record.Report)
		if err != nil {
			log.Errorf("Failed to marshal report of session %s iteration %d: %s", sessionId, record.Number, err)
			continue
		}
		ent := entity.RefinementIteration{
			Id:           uuid.New().String(),
			SessionId:    sessionId,
			Number:       record.Number,
			Report:       reportBytes,
			Explanation:  record.Explanation,
			ApplyStatus:  record.ApplyStatus,
			ApplyDetails: record.ApplyDetails,
			StartedAt:    record.StartedAt,
		}
		if err := d.iterationRepo.SaveIteration(ctx, ent); err != nil {
			log.Errorf("Failed to save iteration %d of session %s: %s", record.Number, sessionId, err)
		}
	}
}
