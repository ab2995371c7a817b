package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/campusmate/users"
)

// dashboardRoute is where a freshly signed-in viewer lands
func dashboardRoute(role users.Role) string {
	switch role {
	case users.RoleMentor:
		return RouteMentor
	case users.RoleAdmin:
		return RouteAdmin
	}
	return RouteStudent
}

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithNotice shows a transient success notification on the target page
func redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	redirectSuccess(w, r, withQuery(path, "notice", notice))
}

// redirectWithError helper for htmx-aware error redirects
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	redirectSuccess(w, r, withQuery(path, "error", errorMsg))
}

func withQuery(path, key, value string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + key + "=" + url.QueryEscape(value)
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
