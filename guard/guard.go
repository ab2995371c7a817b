package guard

import (
	"context"
	"net/http"

	apperrors "github.com/jrsteele09/campusmate/internal/errors"
	"github.com/jrsteele09/campusmate/sessions"
	"github.com/jrsteele09/campusmate/users"
)

// Policy names who may mount a protected view
type Policy struct {
	View         string
	RequiredRole users.Role // empty = any authenticated viewer
}

func RequireRole(view string, role users.Role) Policy {
	return Policy{View: view, RequiredRole: role}
}

func AnyAuthenticated(view string) Policy {
	return Policy{View: view}
}

// Check reads the store fresh and decides whether the viewer may see the view.
// Verification status is not considered: it gates badges, not access.
func Check(store sessions.Store, p Policy) (sessions.Record, error) {
	record, ok := store.Read()
	if !ok {
		return sessions.Record{}, apperrors.Wrapf(apperrors.ErrAccessDenied, "%s: no session", p.View)
	}
	if p.RequiredRole != "" && record.Role != p.RequiredRole {
		return sessions.Record{}, apperrors.Wrapf(apperrors.ErrAccessDenied, "%s: role %s, requires %s", p.View, record.Role, p.RequiredRole)
	}
	return record, nil
}

type contextKey string

const recordKey contextKey = "session_record"

func WithRecord(ctx context.Context, r sessions.Record) context.Context {
	return context.WithValue(ctx, recordKey, r)
}

// RecordFrom returns the record the guard admitted for this request
func RecordFrom(ctx context.Context) (sessions.Record, bool) {
	r, ok := ctx.Value(recordKey).(sessions.Record)
	return r, ok
}

// StoreFactory opens the session store for one request
type StoreFactory func(w http.ResponseWriter, r *http.Request) sessions.Store

// Middleware enforces a Policy, bouncing denied viewers to redirectTo without a message
func Middleware(stores StoreFactory, p Policy, redirectTo string, onDenied func(Policy, error)) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			record, err := Check(stores(w, r), p)
			if err != nil {
				if onDenied != nil {
					onDenied(p, err)
				}
				if r.Header.Get("HX-Request") == "true" {
					w.Header().Set("HX-Redirect", redirectTo)
					w.WriteHeader(http.StatusNoContent)
					return
				}
				http.Redirect(w, r, redirectTo, http.StatusSeeOther)
				return
			}
			next(w, r.WithContext(WithRecord(r.Context(), record)))
		}
	}
}
