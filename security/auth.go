package security

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/shaj13/go-guardian/v2/auth"
	"github.com/shaj13/go-guardian/v2/auth/strategies/jwt"
	"github.com/shaj13/go-guardian/v2/auth/strategies/union"
	"github.com/shaj13/libcache"
	_ "github.com/shaj13/libcache/fifo"
	_ "github.com/shaj13/libcache/lru"
)

var strategy union.Union
var tokenPublicKey *rsa.PublicKey

func SetupGoGuardian(apiKey string, rsaPublicKeyBase64 string) error {
	if apiKey == "" && rsaPublicKeyBase64 == "" {
		return fmt.Errorf("no authentication backends configured: api key and rsa public key are both empty")
	}

	var strategies []auth.Strategy

	if rsaPublicKeyBase64 != "" {
		keyDer, err := base64.StdEncoding.DecodeString(rsaPublicKeyBase64)
		if err != nil {
			return fmt.Errorf("rsa public key decode error - %s", err.Error())
		}
		rsaPublicKey, err := x509.ParsePKCS1PublicKey(keyDer)
		if err != nil {
			return fmt.Errorf("ParsePKCS1PublicKey has error - %s", err.Error())
		}
		tokenPublicKey = rsaPublicKey

		keeper := jwt.StaticSecret{
			ID:        "secret-id",
			Secret:    rsaPublicKey,
			Algorithm: jwt.RS256,
		}

		cache := libcache.LRU.New(1000)
		cache.SetTTL(time.Minute * 60)
		cache.RegisterOnExpired(func(key, _ interface{}) {
			cache.Delete(key)
		})

		strategies = append(strategies, jwt.New(cache, keeper))
		strategies = append(strategies, NewCookieTokenStrategy(rsaPublicKey))
	}

	if apiKey != "" {
		strategies = append(strategies, NewServiceApiKeyStrategy(apiKey))
	}

	strategy = union.New(strategies...)
	return nil
}
