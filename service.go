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

package main

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Netcracker/qubership-site-refinement-service/client"
	"github.com/Netcracker/qubership-site-refinement-service/controller"
	"github.com/Netcracker/qubership-site-refinement-service/db"
	"github.com/Netcracker/qubership-site-refinement-service/repository"
	"github.com/Netcracker/qubership-site-refinement-service/security"
	"github.com/Netcracker/qubership-site-refinement-service/service"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

func main() {
	readyChan := make(chan bool)
	systemInfoService, err := service.NewSystemInfoService()
	if err != nil {
		panic(err)
	}

	if logLevel, err := log.ParseLevel(systemInfoService.GetLogLevel()); err == nil {
		log.SetLevel(logLevel)
	}

	if err := security.SetupGoGuardian(systemInfoService.GetServiceApiKey(), systemInfoService.GetTokenPublicKey()); err != nil {
		panic(err)
	}

	connectionProvider := db.NewConnectionProvider(
		systemInfoService.GetPGHost(),
		systemInfoService.GetPGPort(),
		systemInfoService.GetPGDB(),
		systemInfoService.GetPGUser(),
		systemInfoService.GetPGPassword())

	sessionRepository := repository.NewSessionRepository(connectionProvider)
	iterationRepository := repository.NewIterationRepository(connectionProvider)

	openaiClient, err := client.NewOpenaiClient(
		systemInfoService.GetLLMApiKey(),
		systemInfoService.GetLLMModel(),
		systemInfoService.GetLLMProxy())
	if err != nil {
		panic(err)
	}
	validatorClient := client.NewValidatorClient(
		systemInfoService.GetValidatorUrl(),
		systemInfoService.GetValidatorApiKey())

	validationService := service.NewValidationService(validatorClient)
	refinementService := service.NewRefinementService(openaiClient)
	patchApplier := service.NewPatchApplier()
	loopService := service.NewRefinementLoopService(validationService, refinementService, patchApplier)

	sessionService := service.NewSessionService(sessionRepository, iterationRepository,
		systemInfoService.GetOutputRoot(), systemInfoService.GetMaxIterations())
	authorizationService := service.NewAuthorizationService()
	auditService := service.NewAuditService(sessionRepository, sessionService, openaiClient)

	executorId := uuid.New().String()
	sessionTaskProcessor := service.NewSessionTaskProcessor(sessionRepository, iterationRepository,
		sessionService, loopService, executorId)
	sessionTaskProcessor.Start()

	olricProvider, err := client.NewOlricProvider(
		systemInfoService.GetOlricDiscoveryMode(),
		systemInfoService.GetOlricReplicaCount(),
		systemInfoService.GetNamespace(),
		systemInfoService.GetGenerationPipelineUrl())
	if err != nil {
		log.Errorf("Failed to start olric node, generation events will not be consumed: %s", err)
	} else {
		generationEventListener := service.NewGenerationEventListener(olricProvider, sessionService)
		generationEventListener.Start()
	}

	sessionController := controller.NewSessionController(sessionService)
	llmTuningController := controller.NewLLMTuningController(openaiClient, authorizationService)
	auditController := controller.NewAuditController(auditService)
	healthController := controller.NewHealthController(readyChan)

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/sessions", security.Secure(sessionController.CreateSession)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/sessions/{sessionId}", security.Secure(sessionController.GetSessionStatus)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/sessions/{sessionId}/iterations", security.Secure(sessionController.GetIterations)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/sessions/{sessionId}/artifacts", security.Secure(sessionController.GetArtifacts)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/sessions/{sessionId}/run", security.Secure(sessionController.RerunSession)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/sessions/{sessionId}/audit", security.Secure(auditController.AuditSession)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/tuning/refinePrompt", security.Secure(llmTuningController.UpdateRefinePrompt)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/tuning/model", security.Secure(llmTuningController.UpdateModel)).Methods(http.MethodPost)

	router.HandleFunc("/live", security.NoSecure(healthController.HandleLiveRequest)).Methods(http.MethodGet)
	router.HandleFunc("/ready", security.NoSecure(healthController.HandleReadyRequest)).Methods(http.MethodGet)
	readyChan <- true
	close(readyChan)

	debug.SetGCPercent(30)

	srv := makeServer(systemInfoService, router)
	log.Fatalf("%v", srv.ListenAndServe())
}

func makeServer(systemInfoService service.SystemInfoService, r *mux.Router) *http.Server {
	listenAddr := systemInfoService.GetListenAddress()

	log.Infof("Listen addr = %s", listenAddr)

	var corsOptions []handlers.CORSOption

	corsOptions = append(corsOptions, handlers.AllowedHeaders([]string{"Connection", "Accept-Encoding", "Content-Encoding", "X-Requested-With", "Content-Type", "Authorization"}))

	allowedOrigin := systemInfoService.GetOriginAllowed()
	if allowedOrigin != "" {
		corsOptions = append(corsOptions, handlers.AllowedOrigins([]string{allowedOrigin}))
	}
	corsOptions = append(corsOptions, handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "PUT", "OPTIONS"}))

	return &http.Server{
		Handler:      handlers.CompressHandler(handlers.CORS(corsOptions...)(r)),
		Addr:         listenAddr,
		WriteTimeout: 600 * time.Second,
		ReadTimeout:  60 * time.Second,
	}
}
