package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Netcracker/qubership-site-refinement-service/view"
)

func TestValidateSite(t *testing.T) {
	var gotReq view.ValidateSiteRequest
	var gotApiKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/validate" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotApiKey = r.Header.Get("api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		passed := false
		score := 70
		report := view.ValidatorReport{
			Passed: &passed,
			Score:  &score,
			Issues: []view.IssueRecord{{Severity: view.SeverityError, Description: "undefined selector", Location: "styles.css"}},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	}))
	defer srv.Close()

	cl := NewValidatorClient(srv.URL, "secret")
	report, err := cl.ValidateSite(context.Background(), view.ValidateSiteRequest{
		SessionId: "s1",
		Framework: view.FrameworkHTML,
		Artifacts: []view.CodeArtifact{{FileName: "index.html", Kind: view.ArtifactHTML, Content: "<html></html>"}},
	})
	if err != nil {
		t.Fatalf("ValidateSite() error = %v", err)
	}

	if gotApiKey != "secret" {
		t.Errorf("api-key header = %q, want 'secret'", gotApiKey)
	}
	if gotReq.SessionId != "s1" || len(gotReq.Artifacts) != 1 {
		t.Errorf("request not forwarded correctly: %+v", gotReq)
	}
	if report.Passed == nil || *report.Passed {
		t.Errorf("passed = %v, want false", report.Passed)
	}
	if report.Score == nil || *report.Score != 70 {
		t.Errorf("score = %v, want 70", report.Score)
	}
	if len(report.Issues) != 1 || report.Issues[0].Severity != view.SeverityError {
		t.Errorf("issues not decoded: %+v", report.Issues)
	}
}

func TestValidateSiteNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "validator overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cl := NewValidatorClient(srv.URL, "")
	if _, err := cl.ValidateSite(context.Background(), view.ValidateSiteRequest{SessionId: "s1"}); err == nil {
		t.Error("ValidateSite() expected error for non-200 response")
	}
}
