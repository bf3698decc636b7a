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

package service

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Netcracker/qubership-site-refinement-service/entity"
	"github.com/Netcracker/qubership-site-refinement-service/exception"
	"github.com/Netcracker/qubership-site-refinement-service/repository"
	"github.com/Netcracker/qubership-site-refinement-service/secctx"
	"github.com/Netcracker/qubership-site-refinement-service/view"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type SessionService interface {
	CreateSession(ctx context.Context, req view.CreateSessionRequest) (*view.SessionResponse, error)
	CreateSessionFromEvent(ctx context.Context, eventId string, notification view.SiteGeneratedNotification) (string, error)
	GetSessionStatus(ctx context.Context, sessionId string) (*view.SessionStatusResponse, error)
	GetIterations(ctx context.Context, sessionId string) ([]view.IterationView, error)
	GetArtifacts(ctx context.Context, sessionId string) (*view.SessionArtifactsResponse, error)
	RerunSession(ctx context.Context, sessionId string) error
	LoadSessionState(ent entity.RefinementSession) (*SessionState, error)
}

func NewSessionService(sessionRepo repository.SessionRepository, iterationRepo repository.IterationRepository,
	outputRoot string, defaultMaxIterations int) SessionService {
	return &sessionServiceImpl{
		sessionRepo:          sessionRepo,
		iterationRepo:        iterationRepo,
		outputRoot:           outputRoot,
		defaultMaxIterations: defaultMaxIterations,
	}
}

type sessionServiceImpl struct {
	sessionRepo          repository.SessionRepository
	iterationRepo        repository.IterationRepository
	outputRoot           string
	defaultMaxIterations int
}

func (s sessionServiceImpl) CreateSession(ctx context.Context, req view.CreateSessionRequest) (*view.SessionResponse, error) {
	if len(req.Files) == 0 {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.EmptySessionFiles,
			Message: exception.EmptySessionFilesMsg,
		}
	}
	maxIterations := req.MaxIterations
	if maxIterations == 0 {
		maxIterations = s.defaultMaxIterations
	}
	if maxIterations < 1 {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidMaxIterations,
			Message: exception.InvalidMaxIterationsMsg,
			Params:  map[string]interface{}{"value": req.MaxIterations},
		}
	}
	framework := req.Framework
	if framework == "" {
		framework = view.FrameworkHTML
	}

	sessionId := uuid.New().String()
	outputDir := filepath.Join(s.outputRoot, sessionId, "generated_website")

	if err := s.writeSessionFiles(outputDir, req.Files); err != nil {
		return nil, err
	}

	now := time.Now()
	ent := entity.RefinementSession{
		Id:            sessionId,
		ProjectName:   req.ProjectName,
		Framework:     framework,
		OutputDir:     outputDir,
		MaxIterations: maxIterations,
		Status:        view.SessionStatusNotStarted,
		CreatedAt:     now,
		CreatedBy:     secctx.GetUserId(ctx),
		LastActive:    now,
	}
	if err := s.sessionRepo.SaveSession(ctx, ent); err != nil {
		return nil, fmt.Errorf("failed to save refinement session: %w", err)
	}

	log.Infof("Created refinement session %s for project '%s' with %d file(s)", sessionId, req.ProjectName, len(req.Files))
	return &view.SessionResponse{SessionId: sessionId}, nil
}

func (s sessionServiceImpl) writeSessionFiles(outputDir string, files map[string]string) error {
	for _, dir := range []string{outputDir,
		filepath.Join(outputDir, view.ComponentsDir),
		filepath.Join(outputDir, view.AssetsDir)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create session directory %s: %w", dir, err)
		}
	}
	for name, content := range files {
		relPath, err := NormalizePatchPath(name)
		if err != nil {
			return &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.PathOutsideOutputRoot,
				Message: exception.PathOutsideOutputRootMsg,
				Params:  map[string]interface{}{"path": name},
				Debug:   err.Error(),
			}
		}
		target := filepath.Join(outputDir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", relPath, err)
		}
		if err := os.WriteFile(target, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", relPath, err)
		}
	}
	return nil
}

func (s sessionServiceImpl) CreateSessionFromEvent(ctx context.Context, eventId string, notification view.SiteGeneratedNotification) (string, error) {
	existing, err := s.sessionRepo.GetSessionByEventId(ctx, eventId)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.DuplicateEvent,
			Message: exception.DuplicateEventMsg,
			Params:  map[string]interface{}{"event_id": eventId},
		}
	}

	sessionId := notification.SessionId
	if sessionId == "" {
		sessionId = uuid.New().String()
	}
	outputDir := notification.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join(s.outputRoot, sessionId, "generated_website")
	}
	if info, err := os.Stat(outputDir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("output directory %s of event %s is not accessible", outputDir, eventId)
	}
	framework := notification.Framework
	if framework == "" {
		framework = view.FrameworkHTML
	}

	now := time.Now()
	ent := entity.RefinementSession{
		Id:            sessionId,
		ProjectName:   notification.ProjectName,
		Framework:     framework,
		OutputDir:     outputDir,
		MaxIterations: s.defaultMaxIterations,
		EventId:       eventId,
		Status:        view.SessionStatusNotStarted,
		CreatedAt:     now,
		CreatedBy:     "generation-pipeline",
		LastActive:    now,
	}
	if err := s.sessionRepo.SaveSession(ctx, ent); err != nil {
		return "", fmt.Errorf("failed to save refinement session for event %s: %w", eventId, err)
	}

	log.Infof("Created refinement session %s from generation event %s", sessionId, eventId)
	return sessionId, nil
}

func (s sessionServiceImpl) GetSessionStatus(ctx context.Context, sessionId string) (*view.SessionStatusResponse, error) {
	ent, err := s.sessionRepo.GetSession(ctx, sessionId)
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
	result := entity.MakeSessionStatusView(*ent)
	return &result, nil
}

func (s sessionServiceImpl) GetIterations(ctx context.Context, sessionId string) ([]view.IterationView, error) {
	ent, err := s.sessionRepo.GetSession(ctx, sessionId)
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
	ents, err := s.iterationRepo.GetIterations(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	result := make([]view.IterationView, 0, len(ents))
	for _, iterationEnt := range ents {
		result = append(result, entity.MakeIterationView(iterationEnt))
	}
	return result, nil
}

func (s sessionServiceImpl) GetArtifacts(ctx context.Context, sessionId string) (*view.SessionArtifactsResponse, error) {
	ent, err := s.sessionRepo.GetSession(ctx, sessionId)
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
	state, err := s.LoadSessionState(*ent)
	if err != nil {
		return nil, err
	}
	return &view.SessionArtifactsResponse{
		SessionId: sessionId,
		Artifacts: state.OrderedArtifacts(),
	}, nil
}

// RerunSession puts a finished session back into the queue. The next free
// executor picks it up and runs the loop again over the current artifacts.
func (s sessionServiceImpl) RerunSession(ctx context.Context, sessionId string) error {
	ent, err := s.sessionRepo.GetSession(ctx, sessionId)
	if err != nil {
		return err
	}
	if ent == nil {
		return &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.SessionNotFound,
			Message: exception.SessionNotFoundMsg,
			Params:  map[string]interface{}{"sessionId": sessionId},
		}
	}
	if ent.Status == view.SessionStatusNotStarted || ent.Status == view.SessionStatusProcessing {
		return &exception.CustomError{
			Status:  http.StatusConflict,
			Code:    exception.SessionAlreadyQueued,
			Message: exception.SessionAlreadyQueuedMsg,
			Params:  map[string]interface{}{"sessionId": sessionId},
		}
	}
	if err := s.sessionRepo.SetSessionStatus(ctx, sessionId, view.SessionStatusNotStarted, "", ""); err != nil {
		return err
	}
	log.Infof("Refinement session %s queued for a new run", sessionId)
	return nil
}

// LoadSessionState reads the session artifacts from disk. The loop works on
// this in-memory copy, applied patches keep it in sync via SetArtifact.
func (s sessionServiceImpl) LoadSessionState(ent entity.RefinementSession) (*SessionState, error) {
	state := NewSessionState(ent.Id, ent.ProjectName, ent.Framework, ent.OutputDir)
	state.RefinementCount = ent.RefinementCount

	err := filepath.WalkDir(ent.OutputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		relPath, err := filepath.Rel(ent.OutputDir, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		state.SetArtifact(filepath.ToSlash(relPath), string(content))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read artifacts of session %s: %w", ent.Id, err)
	}
	if len(state.Artifacts) == 0 {
		return nil, fmt.Errorf("session %s has no code artifacts in %s", ent.Id, ent.OutputDir)
	}
	return state, nil
}
