package service

import (
	"context"
	"net/http"

	"github.com/Netcracker/qubership-site-refinement-service/client"
	"github.com/Netcracker/qubership-site-refinement-service/exception"
	"github.com/Netcracker/qubership-site-refinement-service/repository"
	"github.com/Netcracker/qubership-site-refinement-service/view"
	log "github.com/sirupsen/logrus"
)

// AuditService runs an ad-hoc LLM review over the current session artifacts,
// outside of the refinement loop. The result is advisory and is not persisted.
type AuditService interface {
	AuditSession(ctx context.Context, sessionId string) ([]view.IssueRecord, error)
}

func NewAuditService(sessionRepo repository.SessionRepository, sessionService SessionService, llmClient client.LLMClient) AuditService {
	return &auditServiceImpl{
		sessionRepo:    sessionRepo,
		sessionService: sessionService,
		llmClient:      llmClient,
	}
}

type auditServiceImpl struct {
	sessionRepo    repository.SessionRepository
	sessionService SessionService
	llmClient      client.LLMClient
}

func (a auditServiceImpl) AuditSession(ctx context.Context, sessionId string) ([]view.IssueRecord, error) {
	ent, err := a.sessionRepo.GetSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return nil, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.SessionNotFound,
			Message: exception.SessionNotFoundMsg,
			Params:  map[string]interface{}{"sessionId": sessionId},
		}
	}
	state, err := a.sessionService.LoadSessionState(*ent)
	if err != nil {
		return nil, err
	}

	issues, err := a.llmClient.AuditArtifacts(ctx, state.OrderedArtifacts())
	if err != nil {
		return nil, err
	}

	result := make([]view.IssueRecord, 0, len(issues))
	for _, issue := range issues {
		if !view.ValidIssueSeverity(issue.Severity) {
			log.Warnf("Session %s audit: dropping issue with unknown severity '%s'", sessionId, issue.Severity)
			continue
		}
		result = append(result, issue)
	}
	return result, nil
}
