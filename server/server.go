package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/campusmate/dashboard"
	"github.com/jrsteele09/campusmate/disputes"
	"github.com/jrsteele09/campusmate/guard"
	"github.com/jrsteele09/campusmate/internal/config"
	"github.com/jrsteele09/campusmate/internal/metrics"
	"github.com/jrsteele09/campusmate/mentors"
	"github.com/jrsteele09/campusmate/sessions"
	"github.com/jrsteele09/campusmate/tasks"
	"github.com/jrsteele09/campusmate/users"
	"github.com/jrsteele09/campusmate/verification"
)

// Repos are the marketplace datasets the dashboards read and write
type Repos struct {
	Users    users.Repo
	Tasks    tasks.Repo
	Mentors  mentors.Repo
	Disputes disputes.Repo
}

type Server struct {
	env          string // Environment (e.g., "DEV", "PROD")
	mux          *http.ServeMux
	routes       []string
	config       config.Config
	secureCookie bool

	verifier   verification.Verifier
	student    *dashboard.Student
	mentor     *dashboard.Mentor
	admin      *dashboard.Admin
	adminGuard guard.Policy
	admins     map[string]struct{}

	registry *prometheus.Registry
	metrics  metrics.Recorder
	limiter  *clientLimiter
	pages    *pages
}

func New(c config.Config, verifier verification.Verifier, repos Repos, registry *prometheus.Registry) (*Server, error) {
	if verifier == nil {
		return nil, fmt.Errorf("[Server New] a verifier is required")
	}
	if repos.Users == nil || repos.Tasks == nil || repos.Mentors == nil || repos.Disputes == nil {
		return nil, fmt.Errorf("[Server New] all repositories are required")
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if err := checkSessionSecret(c); err != nil {
		return nil, fmt.Errorf("[Server New] %w", err)
	}

	pg, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}

	rec := metrics.NewCollector(registry)
	s := &Server{
		env:        c.GetEnv(),
		mux:        http.NewServeMux(),
		config:     c,
		verifier:   verifier,
		student:    dashboard.NewStudent(repos.Tasks, repos.Mentors, c.GetTaskCreateLatency(), rec),
		mentor:     dashboard.NewMentor(repos.Tasks, rec),
		admin:      dashboard.NewAdmin(repos.Users, repos.Disputes, repos.Tasks, rec),
		adminGuard: adminPolicy(c.GetAdminRequiresRole()),
		admins:     make(map[string]struct{}),
		registry:   registry,
		metrics:    rec,
		limiter:    newClientLimiter(c.GetSignupRate(), c.GetSignupBurst()),
		pages:      pg,

		secureCookie: strings.HasPrefix(c.GetBaseURL(), "https://"),
	}
	for _, name := range c.GetAdminUsernames() {
		s.admins[strings.ToLower(name)] = struct{}{}
	}
	if !c.GetAdminRequiresRole() {
		log.Warn().Msg("Admin dashboard is open to any signed-in user (ADMIN_REQUIRES_ROLE=false)")
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

// checkSessionSecret rejects a missing or public session secret outside DEV
func checkSessionSecret(c config.Config) error {
	if c.GetEnv() == "DEV" {
		return nil
	}
	if secret := string(c.GetSessionSecret()); secret == "" || secret == config.DevSessionSecret {
		return fmt.Errorf("SESSION_SECRET must be set to a private value when ENV=%s", c.GetEnv())
	}
	return nil
}

// adminPolicy picks between a strict admin role check and the any-session behaviour
func adminPolicy(requireRole bool) guard.Policy {
	if requireRole {
		return guard.RequireRole("admin", users.RoleAdmin)
	}
	return guard.AnyAuthenticated("admin")
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// sessionStore opens the viewer's session slot for one request
func (s *Server) sessionStore(w http.ResponseWriter, r *http.Request) sessions.Store {
	slot := sessions.NewCookieSlot(w, r, s.config.GetSessionSecret(), s.config.GetMaxSessionAge(),
		sessions.SecureCookies(s.secureCookie))
	return sessions.NewStore(slot, sessions.WithCorruptHook(func(error) {
		s.metrics.RecordSessionCorrupt()
	}))
}

// guarded wraps a protected view in the access guard
func (s *Server) guarded(p guard.Policy, h http.HandlerFunc) http.HandlerFunc {
	deny := func(p guard.Policy, err error) {
		log.Debug().Err(err).Str("view", p.View).Msg("Access denied")
		s.metrics.RecordAccessDenied(p.View)
	}
	return ChainMiddleware(h, s.HTMLMiddleWare(guard.Middleware(s.sessionStore, p, RouteAuth, deny))...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}

func logError(method, path, error string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Error().Msgf("[%-19s] %s %s", displayMethod, path, Red+error+ResetColor)
}
