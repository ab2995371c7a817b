package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Entry
	RouteIndex = "/{$}"
	RouteHome  = "/"

	// Auth Routes
	RouteAuth       = "/auth"
	RouteAuthLogout = "/auth/logout"

	// Student Routes
	RouteStudent         = "/student"
	RouteStudentSections = "/student/sections/{section}"
	RouteStudentTasks    = "/student/tasks"

	// Mentor Routes
	RouteMentor             = "/mentor"
	RouteMentorSections     = "/mentor/sections/{section}"
	RouteMentorApplications = "/mentor/applications"

	// Admin Routes
	RouteAdmin               = "/admin"
	RouteAdminSections       = "/admin/sections/{section}"
	RouteAdminUserStatus     = "/admin/users/{id}/status"
	RouteAdminDisputeAdvance = "/admin/disputes/{id}/advance"

	// API Routes
	RouteAPISession = "/api/session"
	RouteMetrics    = "/metrics"
	RouteHealth     = "/healthz"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
	RouteStaticJS  = "/js/{file}"
)
