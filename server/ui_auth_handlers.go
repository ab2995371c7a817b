package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/jrsteele09/campusmate/internal/errors"
	"github.com/jrsteele09/campusmate/sessions"
	"github.com/jrsteele09/campusmate/users"
	"github.com/jrsteele09/campusmate/verification"
)

// AuthPageHandler renders the sign-in form, preselecting ?role= when given
func (s *Server) AuthPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.pageData(r, "Sign in with GitHub")
		data.Role = users.RoleStudent.String()
		if role, err := users.ParseRole(r.URL.Query().Get("role")); err == nil {
			data.Role = role.String()
		}
		s.pages.render(w, http.StatusOK, "auth.html", data)
	}
}

// AuthSubmitHandler verifies the GitHub identity and opens the session
func (s *Server) AuthSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAuth, "Invalid form submission")
			return
		}
		username := r.PostFormValue("username")
		role, err := users.ParseRole(strings.TrimSpace(r.PostFormValue("role")))
		if err != nil {
			redirectWithError(w, r, RouteAuth, "Please choose whether you are joining as a student or a mentor")
			return
		}

		record, err := s.signup(r.Context(), s.sessionStore(w, r), username, role)
		if err != nil {
			log.Info().Err(err).Str("role", role.String()).Msg("Signup failed")
			redirectWithError(w, r, RouteAuth+"?role="+role.String(), userMessage(err))
			return
		}

		log.Info().Str("username", record.Username).Str("role", record.Role.String()).Msg("Session created")
		redirectWithNotice(w, r, dashboardRoute(record.Role), fmt.Sprintf("Welcome to %s as a %s", s.config.GetAppName(), record.Role))
	}
}

// LogoutHandler clears the session slot and returns to the landing page
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.sessionStore(w, r).Clear(); err != nil {
			log.Err(err).Msg("Failed to clear session")
		}
		redirectSuccess(w, r, RouteHome)
	}
}

func (s *Server) signup(ctx context.Context, store sessions.Store, username string, role users.Role) (sessions.Record, error) {
	username, err := verification.NormaliseUsername(username)
	if err != nil {
		s.metrics.RecordVerification(verificationOutcome(err))
		return sessions.Record{}, err
	}
	if role == users.RoleAdmin && !s.isAdmin(username) {
		s.metrics.RecordVerification("denied")
		return sessions.Record{}, apperrors.Wrapf(apperrors.ErrAccessDenied, "admin signup for %q", username)
	}

	payload, err := s.verifier.Verify(ctx, username, role)
	if err != nil {
		s.metrics.RecordVerification(verificationOutcome(err))
		return sessions.Record{}, err
	}
	s.metrics.RecordVerification("ok")

	record, err := store.Create(payload, role)
	if err != nil {
		return sessions.Record{}, fmt.Errorf("[signup] create session: %w", err)
	}
	s.metrics.RecordSessionCreated(role.String())
	return record, nil
}

func (s *Server) isAdmin(username string) bool {
	_, ok := s.admins[strings.ToLower(username)]
	return ok
}

func verificationOutcome(err error) string {
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return "invalid"
	case apperrors.Is(err, apperrors.ErrProfileNotFound):
		return "not_found"
	case apperrors.Is(err, apperrors.ErrVerificationUnavailable):
		return "unavailable"
	}
	return "error"
}
