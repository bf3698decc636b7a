package security

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/Netcracker/qubership-site-refinement-service/secctx"
	"github.com/shaj13/go-guardian/v2/auth"
)

// NewServiceApiKeyStrategy authenticates machine callers (e.g. the generation
// pipeline) by the service api key configured via environment.
func NewServiceApiKeyStrategy(apiKey string) auth.Strategy {
	return &serviceApiKeyStrategyImpl{apiKey: apiKey}
}

type serviceApiKeyStrategyImpl struct {
	apiKey string
}

func (a serviceApiKeyStrategyImpl) Authenticate(ctx context.Context, r *http.Request) (auth.Info, error) {
	apiKeyHeader := r.Header.Get("api-key")
	if apiKeyHeader == "" {
		return nil, fmt.Errorf("authentication failed: %v is empty", "api-key")
	}

	if subtle.ConstantTimeCompare([]byte(apiKeyHeader), []byte(a.apiKey)) != 1 {
		return nil, fmt.Errorf("authentication failed: %v is not valid", "api-key")
	}

	userExtensions := auth.Extensions{}
	userExtensions.Add(secctx.SystemRoleExt, "pipeline")

	return auth.NewDefaultUser("pipeline", "pipeline", []string{}, userExtensions), nil
}
