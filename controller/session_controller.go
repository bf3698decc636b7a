// Copyright 2024-2025 NetCracker Technology Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/Netcracker/qubership-site-refinement-service/exception"
	"github.com/Netcracker/qubership-site-refinement-service/secctx"
	"github.com/Netcracker/qubership-site-refinement-service/service"
	"github.com/Netcracker/qubership-site-refinement-service/view"
)

type SessionController interface {
	CreateSession(w http.ResponseWriter, r *http.Request)
	GetSessionStatus(w http.ResponseWriter, r *http.Request)
	GetIterations(w http.ResponseWriter, r *http.Request)
	GetArtifacts(w http.ResponseWriter, r *http.Request)
	RerunSession(w http.ResponseWriter, r *http.Request)
}

func NewSessionController(sessionService service.SessionService) SessionController {
	return &sessionControllerImpl{sessionService: sessionService}
}

type sessionControllerImpl struct {
	sessionService service.SessionService
}

func (s sessionControllerImpl) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := secctx.MakeUserContext(r)

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.BadRequestBody,
			Message: exception.BadRequestBodyMsg,
			Debug:   err.Error(),
		})
		return
	}
	var req view.CreateSessionRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.BadRequestBody,
			Message: exception.BadRequestBodyMsg,
			Debug:   err.Error(),
		})
		return
	}

	result, err := s.sessionService.CreateSession(ctx, req)
	if err != nil {
		respondWithError(w, "Failed to create refinement session", err)
		return
	}
	respondWithJson(w, http.StatusCreated, result)
}

func (s sessionControllerImpl) GetSessionStatus(w http.ResponseWriter, r *http.Request) {
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

	result, err := s.sessionService.GetSessionStatus(ctx, sessionId)
	if err != nil {
		respondWithError(w, "Failed to get session status", err)
		return
	}
	respondWithJson(w, http.StatusOK, result)
}

func (s sessionControllerImpl) GetIterations(w http.ResponseWriter, r *http.Request) {
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

	result, err := s.sessionService.GetIterations(ctx, sessionId)
	if err != nil {
		respondWithError(w, "Failed to get session iterations", err)
		return
	}
	respondWithJson(w, http.StatusOK, result)
}

func (s sessionControllerImpl) RerunSession(w http.ResponseWriter, r *http.Request) {
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

	if err := s.sessionService.RerunSession(ctx, sessionId); err != nil {
		respondWithError(w, "Failed to queue session for a new run", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s sessionControllerImpl) GetArtifacts(w http.ResponseWriter, r *http.Request) {
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

	result, err := s.sessionService.GetArtifacts(ctx, sessionId)
	if err != nil {
		respondWithError(w, "Failed to get session artifacts", err)
		return
	}
	respondWithJson(w, http.StatusOK, result)
}
