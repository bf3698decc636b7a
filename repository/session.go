package repository

import (
	"context"
	"fmt"

	"github.com/Netcracker/qubership-site-refinement-service/db"
	"github.com/Netcracker/qubership-site-refinement-service/entity"
	"github.com/Netcracker/qubership-site-refinement-service/view"
	"github.com/go-pg/pg/v10"
)

type SessionRepository interface {
	SaveSession(ctx context.Context, ent entity.RefinementSession) error
	GetSession(ctx context.Context, sessionId string) (*entity.RefinementSession, error)
	GetSessionByEventId(ctx context.Context, eventId string) (*entity.RefinementSession, error)
	FindFreeSession(ctx context.Context, executorId string) (*entity.RefinementSession, error)
	SetSessionStatus(ctx context.Context, sessionId string, status view.SessionStatus, details string, executorId string) error
	SaveRunResult(ctx context.Context, sessionId string, status view.SessionStatus, details string,
		outcome view.OutcomeKind, iterations int, refinementCount int, finalReport []byte) error
}

func NewSessionRepository(cp db.ConnectionProvider) SessionRepository {
	return &sessionRepositoryImpl{cp: cp}
}

type sessionRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (s sessionRepositoryImpl) SaveSession(ctx context.Context, ent entity.RefinementSession) error {
	_, err := s.cp.GetConnection().ModelContext(ctx, &ent).Insert()
	return err
}

func (s sessionRepositoryImpl) GetSession(ctx context.Context, sessionId string) (*entity.RefinementSession, error) {
	result := new(entity.RefinementSession)
	err := s.cp.GetConnection().ModelContext(ctx, result).Where("id = ?", sessionId).First()
	if err != nil {
		if err == pg.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return result, nil
}

func (s sessionRepositoryImpl) GetSessionByEventId(ctx context.Context, eventId string) (*entity.RefinementSession, error) {
	result := new(entity.RefinementSession)
	err := s.cp.GetConnection().ModelContext(ctx, result).Where("event_id = ?", eventId).First()
	if err != nil {
		if err == pg.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return result, nil
}

const sessionKeepaliveTimeoutSec = 30

var queryFreeSession = fmt.Sprintf("select * from refinement_session s where "+
	"(s.status='%s' or (s.status='%s' and s.last_active < (now() - interval '%d seconds'))) "+
	"order by s.created_at ASC limit 1 for no key update skip locked",
	view.SessionStatusNotStarted, view.SessionStatusProcessing, sessionKeepaliveTimeoutSec)

func (s sessionRepositoryImpl) FindFreeSession(ctx context.Context, executorId string) (*entity.RefinementSession, error) {
	var result *entity.RefinementSession
	var err error

	for {
		taskFailed := false
		err = s.cp.GetConnection().RunInTransaction(ctx, func(tx *pg.Tx) error {
			var ents []entity.RefinementSession

			_, err := tx.Query(&ents, queryFreeSession)
			if err != nil {
				if err == pg.ErrNoRows {
					return nil
				}
				return fmt.Errorf("failed to find free refinement session: %w", err)
			}
			if len(ents) > 0 {
				result = &ents[0]

				if result.RestartCount >= 2 {
					_, err := tx.Model(result).
						Where("id = ?", result.Id).
						Set("status = ?", view.SessionStatusError).
						Set("details = ?", fmt.Sprintf("Restart count exceeded limit. Details: %v", result.Details)).
						Set("last_active = now()").
						Update()
					if err != nil {
						return err
					}
					taskFailed = true
					return nil
				}

				isFirstRun := result.Status == view.SessionStatusNotStarted
				if !isFirstRun {
					result.RestartCount += 1
				}

				result.Status = view.SessionStatusProcessing
				result.ExecutorId = executorId

				_, err = tx.Model(result).
					Set("status = ?status").
					Set("executor_id = ?executor_id").
					Set("restart_count = ?restart_count").
					Set("last_active = now()").
					Where("id = ?id").
					Update()
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if !taskFailed {
			break
		}
		result = nil
	}

	return result, nil
}

func (s sessionRepositoryImpl) SetSessionStatus(ctx context.Context, sessionId string, status view.SessionStatus, details string, executorId string) error {
	ent := entity.RefinementSession{}
	_, err := s.cp.GetConnection().ModelContext(ctx, &ent).
		Set("status = ?", status).
		Set("details = ?", details).
		Set("executor_id = ?", executorId).
		Set("last_active = now()").
		Where("id = ?", sessionId).
		Update()
	return err
}

func (s sessionRepositoryImpl) SaveRunResult(ctx context.Context, sessionId string, status view.SessionStatus, details string,
	outcome view.OutcomeKind, iterations int, refinementCount int, finalReport []byte) error {
	ent := entity.RefinementSession{}
	_, err := s.cp.GetConnection().ModelContext(ctx, &ent).
		Set("status = ?", status).
		Set("details = ?", details).
		Set("outcome = ?", outcome).
		Set("iterations = ?", iterations).
		Set("refinement_count = ?", refinementCount).
		Set("final_report = ?", finalReport).
		Set("last_active = now()").
		Where("id = ?", sessionId).
		Update()
	return err
}
