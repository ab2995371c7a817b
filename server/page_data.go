package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/campusmate/dashboard"
	apperrors "github.com/jrsteele09/campusmate/internal/errors"
	"github.com/jrsteele09/campusmate/sessions"
	"github.com/jrsteele09/campusmate/tasks"
)

// PageData is what every page and fragment template receives
type PageData struct {
	AppName string
	Title   string
	Notice  string
	Error   string

	// Viewer is nil for anonymous visitors
	Viewer *sessions.Record
	Role   string

	Student *dashboard.StudentView
	Mentor  *dashboard.MentorView
	Admin   *dashboard.AdminView
	Form    tasks.NewTask
}

func (s *Server) pageData(r *http.Request, title string) PageData {
	return PageData{
		AppName: s.config.GetAppName(),
		Title:   title,
		Notice:  r.URL.Query().Get("notice"),
		Error:   r.URL.Query().Get("error"),
	}
}

// userMessage turns a domain error into the text shown in a notification
func userMessage(err error) string {
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		msg := strings.TrimPrefix(err.Error(), apperrors.ErrInvalidInput.Error()+": ")
		if msg == "" {
			return "Please check the form and try again."
		}
		return strings.ToUpper(msg[:1]) + msg[1:]
	case apperrors.Is(err, apperrors.ErrProfileNotFound):
		return "We couldn't find that GitHub profile. Check the username and try again."
	case apperrors.Is(err, apperrors.ErrVerificationUnavailable):
		return "Unable to verify your GitHub profile. Please try again."
	case apperrors.Is(err, apperrors.ErrAccessDenied):
		return "That role is not available for this account."
	case apperrors.Is(err, apperrors.ErrNotFound):
		return "That item no longer exists."
	case apperrors.Is(err, apperrors.ErrTooManyRequests):
		return "Too many verification attempts. Please wait a minute and try again."
	}
	return "Something went wrong. Please try again."
}
