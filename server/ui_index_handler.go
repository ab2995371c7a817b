package server

import (
	"net/http"
)

// IndexHandler renders the landing page, sending a signed-in viewer to their dashboard
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if record, ok := s.sessionStore(w, r).Read(); ok {
			redirectSuccess(w, r, dashboardRoute(record.Role))
			return
		}
		s.pages.render(w, http.StatusOK, "index.html", s.pageData(r, "Campus mentorship, verified"))
	}
}

// NotFoundHandler catches every path no other route claims
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "405 - Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		s.pages.render(w, http.StatusNotFound, "not_found.html", s.pageData(r, "Page not found"))
	}
}
