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
	"time"

	"github.com/Netcracker/qubership-site-refinement-service/client"
	"github.com/Netcracker/qubership-site-refinement-service/view"
	log "github.com/sirupsen/logrus"
)

// ValidationService asks the external validation collaborator for a verdict
// on the session artifacts and coerces the raw response into a
// ValidationReport. Malformed responses are rejected here, duck-typed
// payloads never travel further in.
type ValidationService interface {
	ValidationPhase
}

func NewValidationService(validatorClient client.ValidatorClient) ValidationService {
	return &validationServiceImpl{validatorClient: validatorClient}
}

type validationServiceImpl struct {
	validatorClient client.ValidatorClient
}

var defaultBreakpoints = []int{375, 768, 1280}

func (v validationServiceImpl) ValidateSession(ctx context.Context, state *SessionState) (*view.ValidationReport, error) {
	start := time.Now()

	req := view.ValidateSiteRequest{
		SessionId:   state.SessionId,
		Framework:   state.Framework,
		Artifacts:   state.OrderedArtifacts(),
		Breakpoints: defaultBreakpoints,
	}

	raw, err := v.validatorClient.ValidateSite(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("validation collaborator failed: %w", err)
	}

	report, err := coerceValidatorReport(raw)
	if err != nil {
		return nil, fmt.Errorf("validation collaborator returned malformed report: %w", err)
	}

	log.Infof("Session %s validated in %dms: passed=%v, %d issue(s)",
		state.SessionId, time.Since(start).Milliseconds(), report.Passed, len(report.Issues))
	return report, nil
}

func coerceValidatorReport(raw *view.ValidatorReport) (*view.ValidationReport, error) {
	if raw == nil {
		return nil, fmt.Errorf("report is empty")
	}
	if raw.Passed == nil {
		return nil, fmt.Errorf("report is missing the 'passed' verdict")
	}

	report := view.ValidationReport{Passed: *raw.Passed}
	for i, issue := range raw.Issues {
		if !view.ValidIssueSeverity(issue.Severity) {
			return nil, fmt.Errorf("issue %d has unknown severity '%s'", i, issue.Severity)
		}
		if issue.Description == "" {
			return nil, fmt.Errorf("issue %d has no description", i)
		}
		report.Issues = append(report.Issues, issue)
	}

	if raw.Score != nil {
		score := *raw.Score
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
		report.Score = score
	} else {
		report.Score = view.DeriveScore(report.Issues)
	}

	return &report, nil
}
