// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 R. Martell

// Package devserver is an in-memory stand-in for the production backend:
// object storage, the site_media table and the identity service behind the
// same routes the HTTP adapter talks to. It exists for local development
// and for exercising the full sync path in tests; fault hooks simulate the
// failure modes a construction site actually produces (dead zones, full
// quotas, flaky inserts).
package devserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/rmartell/go-site-sync/internal/logger"
	"github.com/rmartell/go-site-sync/models"
)

// Server holds the in-memory backend state. Safe for concurrent use.
type Server struct {
	log *logger.Logger

	mu      sync.RWMutex
	objects map[string][]byte
	records []models.RemoteMediaRecord
	user    models.Identity

	// fault hooks
	offline        atomic.Bool
	failNextInsert atomic.Bool
	quotaFull      atomic.Bool
}

func New(log *logger.Logger) *Server {
	return &Server{
		log:     log,
		objects: make(map[string][]byte),
		user: models.Identity{
			UserID: "dev-user",
			Login:  "dev@site.local",
			Name:   "Dev Foreman",
		},
	}
}

// Router builds the chi handler serving the backend routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.offlineGate)

	r.Get("/auth/v1/health", s.handleHealth)
	r.Get("/auth/v1/user", s.handleUser)
	r.Put("/storage/v1/object/*", s.handlePutObject)
	r.Delete("/storage/v1/object/*", s.handleDeleteObject)
	r.Post("/rest/v1/site_media", s.handleInsertRecord)

	return r
}

// ── fault hooks ─────────────────────────────────────────────────────────────

// SetOffline makes every route answer 503, simulating a dead zone.
func (s *Server) SetOffline(v bool) { s.offline.Store(v) }

// FailNextInsert makes the next site_media insert answer 500, after which
// inserts succeed again. Reproduces the partial-failure rollback path.
func (s *Server) FailNextInsert() { s.failNextInsert.Store(true) }

// SetQuotaFull makes object puts answer 507 until cleared.
func (s *Server) SetQuotaFull(v bool) { s.quotaFull.Store(v) }

// Object returns the stored bytes at path, if any.
func (s *Server) Object(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[path]
	return data, ok
}

// Records returns a copy of all inserted media records.
func (s *Server) Records() []models.RemoteMediaRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.RemoteMediaRecord{}, s.records...)
}

func (s *Server) offlineGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.offline.Load() {
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ── handlers ────────────────────────────────────────────────────────────────

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleUser(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	user := s.user
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handlePutObject(w http.ResponseWriter, r *http.Request) {
	if s.quotaFull.Load() {
		http.Error(w, "insufficient storage", http.StatusInsufficientStorage)
		return
	}

	path := chi.URLParam(r, "*")
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.objects[path] = data
	s.mu.Unlock()

	s.log.Debug().Str("path", path).Int("bytes", len(data)).Msg("object stored")
	writeJSON(w, http.StatusOK, map[string]string{
		"url": fmt.Sprintf("http://%s/storage/v1/object/%s", r.Host, path),
	})
}

func (s *Server) handleDeleteObject(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")

	s.mu.Lock()
	_, ok := s.objects[path]
	delete(s.objects, path)
	s.mu.Unlock()

	if !ok {
		http.Error(w, "object not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleInsertRecord(w http.ResponseWriter, r *http.Request) {
	if s.failNextInsert.CompareAndSwap(true, false) {
		http.Error(w, "injected insert failure", http.StatusInternalServerError)
		return
	}

	var rec models.RemoteMediaRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "bad record", http.StatusBadRequest)
		return
	}

	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()

	s.log.Debug().Str("record_id", rec.ID).Str("object_path", rec.ObjectPath).Msg("media record inserted")
	writeJSON(w, http.StatusCreated, rec)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
