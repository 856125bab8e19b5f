package api

import (
	"context"
	"net/http"
	"time"

	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/srs"
)

// handleHealth returns a liveness probe - always returns 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady returns 200 when the database answers a ping, 503 otherwise.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	log := logger.FromContext(ctx)

	if s.DB == nil {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
		return
	}
	if err := s.DB.PingContext(ctx); err != nil {
		log.Warn("readiness check failed - database: %v", err)
		writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleQualities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, srs.QualityDescriptions())
}
