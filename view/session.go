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

package view

import "time"

const AccessTokenCookieName = "refinement-access-token"

type SessionStatus string

const (
	SessionStatusNotStarted SessionStatus = "not_started"
	SessionStatusProcessing SessionStatus = "processing"
	SessionStatusSuccess    SessionStatus = "success"
	SessionStatusError      SessionStatus = "error"
)

// OutcomeKind is the terminal result of a refinement loop run.
type OutcomeKind string

const (
	OutcomeConverged       OutcomeKind = "converged"
	OutcomeExhaustedBudget OutcomeKind = "exhausted_budget"
)

type LoopOutcome struct {
	Kind        OutcomeKind      `json:"kind"`
	FinalReport ValidationReport `json:"finalReport"`
	Iterations  int              `json:"iterations"`
}

// LoopPhase identifies which stage of an iteration a failure belongs to.
type LoopPhase string

const (
	PhaseValidating LoopPhase = "validating"
	PhaseRefining   LoopPhase = "refining"
	PhaseApplying   LoopPhase = "applying"
)

type CreateSessionRequest struct {
	ProjectName   string            `json:"projectName"`
	Framework     Framework         `json:"framework,omitempty"`
	MaxIterations int               `json:"maxIterations,omitempty"`
	Files         map[string]string `json:"files"`
}

type SessionResponse struct {
	SessionId string `json:"sessionId"`
}

type SessionStatusResponse struct {
	SessionId       string            `json:"sessionId"`
	Status          SessionStatus     `json:"status"`
	Details         string            `json:"details,omitempty"`
	Outcome         OutcomeKind       `json:"outcome,omitempty"`
	Grade           Grade             `json:"grade,omitempty"`
	FinalReport     *ValidationReport `json:"finalReport,omitempty"`
	Iterations      int               `json:"iterations"`
	RefinementCount int               `json:"refinementCount"`
}

type IterationView struct {
	Number       int              `json:"number"`
	Report       ValidationReport `json:"report"`
	Explanation  string           `json:"explanation,omitempty"`
	ApplyStatus  ApplyStatus      `json:"applyStatus,omitempty"`
	ApplyDetails string           `json:"applyDetails,omitempty"`
	StartedAt    time.Time        `json:"startedAt"`
}

type SessionArtifactsResponse struct {
	SessionId string         `json:"sessionId"`
	Artifacts []CodeArtifact `json:"artifacts"`
}
