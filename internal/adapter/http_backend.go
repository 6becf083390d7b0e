package adapter

import (
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rmartell/go-site-sync/internal/config"
	"github.com/rmartell/go-site-sync/internal/logger"
	"github.com/rmartell/go-site-sync/models"
)

// httpBackendAdapter is the single HTTP/REST client behind all backend
// interfaces ([ObjectStore], [MediaStore], [IdentityProvider],
// [HealthProbe]). One adapter instance is shared by the whole subsystem so
// the bearer token set after login reaches every request.
type httpBackendAdapter struct {
	client   *resty.Client
	cacheDir string
	logger   *logger.Logger

	mu       sync.RWMutex
	token    string
	identity *models.Identity
}

// NewHTTPBackend constructs the backend adapter from client configuration.
// cacheDir is where the last-known identity is persisted for offline use
// (the spool directory in practice).
func NewHTTPBackend(cfg config.ClientBackend, cacheDir string, log *logger.Logger) *httpBackendAdapter {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout)
	if cfg.APIKey != "" {
		cli.SetHeader("apikey", cfg.APIKey)
	}

	a := &httpBackendAdapter{client: cli, cacheDir: cacheDir, logger: log}
	a.loadCachedIdentity()
	return a
}

// SetToken stores the bearer token attached to all subsequent authenticated
// requests.
func (a *httpBackendAdapter) SetToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = strings.TrimSpace(token)
}

// Token returns the bearer token currently stored in the adapter.
func (a *httpBackendAdapter) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

func (a *httpBackendAdapter) authedRequest(req *resty.Request) *resty.Request {
	if token := a.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// probeTimeout caps connectivity probes well below the request timeout so a
// hung probe does not delay the next observer tick.
const probeTimeout = 3 * time.Second
