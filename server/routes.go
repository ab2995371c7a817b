package server

import (
	"github.com/jrsteele09/campusmate/guard"
	"github.com/jrsteele09/campusmate/internal/metrics"
	"github.com/jrsteele09/campusmate/users"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteIndex, ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))

	// AUTH
	s.RegisterRouteHandler("GET "+RouteAuth, ChainMiddleware(s.AuthPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuth, ChainMiddleware(s.AuthSubmitHandler(), s.HTMLMiddleWare(s.RateLimitMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// STUDENT
	studentOnly := guard.RequireRole("student", users.RoleStudent)
	s.RegisterRouteHandler("GET "+RouteStudent, s.guarded(studentOnly, s.StudentDashboardHandler()))
	s.RegisterRouteHandler("GET "+RouteStudentSections, s.guarded(studentOnly, s.StudentSectionHandler()))
	s.RegisterRouteHandler("POST "+RouteStudentTasks, s.guarded(studentOnly, s.CreateTaskHandler()))

	// MENTOR
	mentorOnly := guard.RequireRole("mentor", users.RoleMentor)
	s.RegisterRouteHandler("GET "+RouteMentor, s.guarded(mentorOnly, s.MentorDashboardHandler()))
	s.RegisterRouteHandler("GET "+RouteMentorSections, s.guarded(mentorOnly, s.MentorSectionHandler()))
	s.RegisterRouteHandler("POST "+RouteMentorApplications, s.guarded(mentorOnly, s.ApplyHandler()))

	// ADMIN
	s.RegisterRouteHandler("GET "+RouteAdmin, s.guarded(s.adminGuard, s.AdminDashboardHandler()))
	s.RegisterRouteHandler("GET "+RouteAdminSections, s.guarded(s.adminGuard, s.AdminSectionHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminUserStatus, s.guarded(s.adminGuard, s.AdminUserStatusHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminDisputeAdvance, s.guarded(s.adminGuard, s.AdminDisputeAdvanceHandler()))

	// API
	s.RegisterRouteHandler("GET "+RouteAPISession, ChainMiddleware(s.SessionAPIHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+RouteAPISession, ChainMiddleware(s.SessionAPIHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteMetrics, metrics.Handler(s.registry))

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveAssetHandler(), s.StaticMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteStaticJS, ChainMiddleware(s.serveAssetHandler(), s.StaticMiddleware()...))
	s.RegisterRouteHandler(RouteHome, ChainMiddleware(s.NotFoundHandler(), s.HTMLMiddleWare()...))
}
