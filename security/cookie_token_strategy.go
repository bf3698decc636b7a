package security

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"

	"github.com/Netcracker/qubership-site-refinement-service/view"
	"github.com/shaj13/go-guardian/v2/auth"
	"gopkg.in/square/go-jose.v2/jwt"
)

func NewCookieTokenStrategy(publicKey *rsa.PublicKey) auth.Strategy {
	return &cookieTokenStrategyImpl{publicKey: publicKey}
}

type cookieTokenStrategyImpl struct {
	publicKey *rsa.PublicKey
}

func (a cookieTokenStrategyImpl) Authenticate(ctx context.Context, r *http.Request) (auth.Info, error) {
	cookie, err := r.Cookie(view.AccessTokenCookieName)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: access token cookie not found")
	}

	jt, err := jwt.ParseSigned(cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("token parse error: %w", err)
	}

	var claims jwt.Claims
	userInfo := auth.NewDefaultUser("", "", []string{}, auth.Extensions{})
	if err := jt.Claims(a.publicKey, &claims, userInfo); err != nil {
		return nil, fmt.Errorf("token verification error: %w", err)
	}
	return userInfo, nil
}
