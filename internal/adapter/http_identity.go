package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rmartell/go-site-sync/models"
)

const identityCacheFile = "identity.json"

// Current implements [IdentityProvider]. It asks the identity service for
// the authenticated user and caches the answer on disk. When the service is
// unreachable (offline intake) it falls back to the cached identity; a
// subject parsed from the bearer token patches a missing user id so object
// paths stay attributable even with a stale cache.
func (a *httpBackendAdapter) Current(ctx context.Context) (models.Identity, error) {
	resp, err := a.authedRequest(a.client.R().SetContext(ctx)).Get("/auth/v1/user")
	if err == nil {
		err = mapHTTPError(resp)
	}
	if err != nil {
		if cached, ok := a.Cached(); ok {
			a.logger.Debug().Err(err).Msg("identity service unreachable, using cached identity")
			return cached, nil
		}
		if sub, subErr := parseSubjectFromJWT(a.Token()); subErr == nil {
			return models.Identity{UserID: sub, Token: a.Token()}, nil
		}
		return models.Identity{}, fmt.Errorf("fetch identity: %w: %w", ErrNoCachedIdentity, err)
	}

	var id models.Identity
	if err = json.Unmarshal(resp.Body(), &id); err != nil {
		return models.Identity{}, fmt.Errorf("decode identity response: %w", err)
	}
	id.Token = a.Token()
	id.FetchedAt = time.Now().UTC()

	a.storeCachedIdentity(id)
	return id, nil
}

// Cached implements [IdentityProvider].
func (a *httpBackendAdapter) Cached() (models.Identity, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.identity == nil {
		return models.Identity{}, false
	}
	return *a.identity, true
}

func (a *httpBackendAdapter) storeCachedIdentity(id models.Identity) {
	a.mu.Lock()
	a.identity = &id
	a.mu.Unlock()

	if a.cacheDir == "" {
		return
	}

	payload, err := json.Marshal(id)
	if err != nil {
		return
	}
	if err = os.MkdirAll(a.cacheDir, 0o755); err != nil {
		a.logger.Warn().Err(err).Msg("cannot create identity cache dir")
		return
	}
	if err = os.WriteFile(filepath.Join(a.cacheDir, identityCacheFile), payload, 0o600); err != nil {
		a.logger.Warn().Err(err).Msg("cannot persist identity cache")
	}
}

func (a *httpBackendAdapter) loadCachedIdentity() {
	if a.cacheDir == "" {
		return
	}

	data, err := os.ReadFile(filepath.Join(a.cacheDir, identityCacheFile))
	if err != nil {
		return
	}

	var id models.Identity
	if err = json.Unmarshal(data, &id); err != nil {
		return
	}

	a.mu.Lock()
	a.identity = &id
	if a.token == "" {
		a.token = id.Token
	}
	a.mu.Unlock()
}

// Ping implements [HealthProbe].
func (a *httpBackendAdapter) Ping(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	resp, err := a.client.R().SetContext(probeCtx).Get("/auth/v1/health")
	if err != nil {
		return classifyError("health probe", err)
	}
	return mapHTTPError(resp)
}

func parseSubjectFromJWT(tokenString string) (string, error) {
	if tokenString == "" {
		return "", errors.New("empty token")
	}

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}
