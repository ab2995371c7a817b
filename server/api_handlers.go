package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/campusmate/sessions"
)

// sessionResponse exposes the stored record plus the derived fields clients need
type sessionResponse struct {
	Authenticated bool `json:"authenticated"`
	sessions.Record
	IsVerified bool   `json:"is_verified"`
	Badge      string `json:"badge,omitempty"`
}

// SessionAPIHandler reports the viewer's current session as JSON
func (s *Server) SessionAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ok := s.sessionStore(w, r).Read()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]bool{"authenticated": false})
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{
			Authenticated: true,
			Record:        record,
			IsVerified:    record.IsVerified(),
			Badge:         record.Badge(),
		})
	}
}

// HealthHandler reports liveness
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "env": s.env})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("Failed to encode JSON response")
	}
}
