package controller

import (
	"net/http"

	"github.com/Netcracker/qubership-site-refinement-service/exception"
	"github.com/Netcracker/qubership-site-refinement-service/secctx"
	"github.com/Netcracker/qubership-site-refinement-service/service"
	"github.com/Netcracker/qubership-site-refinement-service/view"
)

type AuditController interface {
	AuditSession(w http.ResponseWriter, r *http.Request)
}

func NewAuditController(auditService service.AuditService) AuditController {
	return &auditControllerImpl{auditService: auditService}
}

type auditControllerImpl struct {
	auditService service.AuditService
}

func (a auditControllerImpl) AuditSession(w http.ResponseWriter, r *http.Request) {
	ctx := secctx.MakeUserContext(r)
	sessionId, err := getUnescapedStringParam(r, "sessionId")
	if err != nil {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidURLEscape,
			Message: exception.InvalidURLEscapeMsg,
			Params:  map[string]interface{}{"param": "sessionId"},
			Debug:   err.Error(),
		})
		return
	}

	issues, err := a.auditService.AuditSession(ctx, sessionId)
	if err != nil {
		respondWithError(w, "Failed to audit session artifacts", err)
		return
	}
	respondWithJson(w, http.StatusOK, view.AuditIssuesOutput{Issues: issues})
}
