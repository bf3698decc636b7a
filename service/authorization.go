package service

import (
	"context"

	"github.com/Netcracker/qubership-site-refinement-service/secctx"
)

type AuthorizationService interface {
	HasTuningPermission(ctx context.Context) (bool, error)
}

func NewAuthorizationService() AuthorizationService {
	return &authorizationServiceImpl{}
}

type authorizationServiceImpl struct{}

// Tuning endpoints change shared runtime configuration, so they are limited
// to system contexts and api-key callers.
func (a authorizationServiceImpl) HasTuningPermission(ctx context.Context) (bool, error) {
	if secctx.IsSystem(ctx) {
		return true, nil
	}
	return secctx.GetApiKey(ctx) != "", nil
}
