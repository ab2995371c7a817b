package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/campusmate/dashboard"
	"github.com/jrsteele09/campusmate/disputes"
	apperrors "github.com/jrsteele09/campusmate/internal/errors"
	"github.com/jrsteele09/campusmate/guard"
	"github.com/jrsteele09/campusmate/sessions"
	"github.com/jrsteele09/campusmate/tasks"
	"github.com/jrsteele09/campusmate/users"
)

const sectionBlock = "section"

// viewer pulls the record the guard placed in the request context
func viewer(w http.ResponseWriter, r *http.Request) (sessions.Record, bool) {
	record, ok := guard.RecordFrom(r.Context())
	if !ok {
		redirectSuccess(w, r, RouteAuth)
	}
	return record, ok
}

// sectionRequest reads {section} and bounces non-HTMX callers back to the dashboard root,
// since a section switch is a fragment swap rather than a navigable page
func sectionRequest(w http.ResponseWriter, r *http.Request, role users.Role, root string) (dashboard.Section, bool) {
	if !isHTMXRequest(r) {
		http.Redirect(w, r, root, http.StatusSeeOther)
		return "", false
	}
	return dashboard.SelectSection(role, r.PathValue("section")), true
}

func (s *Server) renderViewError(w http.ResponseWriter, err error) {
	log.Err(err).Msg("Failed to build dashboard view")
	http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
}

// STUDENT

func (s *Server) StudentDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ok := viewer(w, r)
		if !ok {
			return
		}
		view, err := s.student.View(record, dashboard.SectionOverview, "")
		if err != nil {
			s.renderViewError(w, err)
			return
		}
		data := s.pageData(r, "Student Dashboard")
		data.Viewer, data.Student = &record, &view
		s.pages.render(w, http.StatusOK, "student.html", data)
	}
}

func (s *Server) StudentSectionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ok := viewer(w, r)
		if !ok {
			return
		}
		section, ok := sectionRequest(w, r, record.Role, RouteStudent)
		if !ok {
			return
		}
		view, err := s.student.View(record, section, strings.TrimSpace(r.URL.Query().Get("skill")))
		if err != nil {
			s.renderViewError(w, err)
			return
		}
		data := s.pageData(r, section.Title())
		data.Viewer, data.Student = &record, &view
		s.pages.renderFragment(w, "student.html", sectionBlock, data)
	}
}

// CreateTaskHandler posts a new task on behalf of the signed-in student
func (s *Server) CreateTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ok := viewer(w, r)
		if !ok {
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteStudent, "Invalid form submission")
			return
		}
		budget, _ := strconv.Atoi(strings.TrimSpace(r.PostFormValue("budget")))
		input := tasks.NewTask{
			Title:       r.PostFormValue("title"),
			Description: r.PostFormValue("description"),
			Budget:      budget,
			Deadline:    r.PostFormValue("deadline"),
			Category:    r.PostFormValue("category"),
			Urgency:     tasks.Urgency(strings.TrimSpace(r.PostFormValue("urgency"))),
		}

		task, err := s.student.CreateTask(r.Context(), record, input)
		if err != nil {
			if !apperrors.Is(err, apperrors.ErrInvalidInput) {
				log.Err(err).Str("owner", record.Username).Msg("Failed to create task")
			}
			redirectWithError(w, r, RouteStudent, userMessage(err))
			return
		}
		log.Info().Str("task", task.ID).Str("owner", record.Username).Msg("Task created")
		redirectWithNotice(w, r, RouteStudent, "Task Created! Your task has been posted and mentors can now apply")
	}
}

// MENTOR

func (s *Server) MentorDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ok := viewer(w, r)
		if !ok {
			return
		}
		view, err := s.mentor.View(record, dashboard.SectionOverview)
		if err != nil {
			s.renderViewError(w, err)
			return
		}
		data := s.pageData(r, "Mentor Dashboard")
		data.Viewer, data.Mentor = &record, &view
		s.pages.render(w, http.StatusOK, "mentor.html", data)
	}
}

func (s *Server) MentorSectionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ok := viewer(w, r)
		if !ok {
			return
		}
		section, ok := sectionRequest(w, r, record.Role, RouteMentor)
		if !ok {
			return
		}
		view, err := s.mentor.View(record, section)
		if err != nil {
			s.renderViewError(w, err)
			return
		}
		data := s.pageData(r, section.Title())
		data.Viewer, data.Mentor = &record, &view
		s.pages.renderFragment(w, "mentor.html", sectionBlock, data)
	}
}

// ApplyHandler submits the mentor's proposal for an open task
func (s *Server) ApplyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ok := viewer(w, r)
		if !ok {
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteMentor, "Invalid form submission")
			return
		}
		rate, _ := strconv.Atoi(strings.TrimSpace(r.PostFormValue("proposed_rate")))
		app, err := s.mentor.Apply(record, tasks.NewApplication{
			TaskID:       strings.TrimSpace(r.PostFormValue("task_id")),
			ProposedRate: rate,
			Message:      r.PostFormValue("message"),
		})
		if err != nil {
			redirectWithError(w, r, RouteMentor, userMessage(err))
			return
		}
		log.Info().Str("task", app.TaskID).Str("mentor", record.Username).Msg("Application submitted")
		redirectWithNotice(w, r, RouteMentor, "Application sent for "+app.TaskTitle)
	}
}

// ADMIN

func (s *Server) AdminDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ok := viewer(w, r)
		if !ok {
			return
		}
		view, err := s.admin.View(record, dashboard.SectionOverview)
		if err != nil {
			s.renderViewError(w, err)
			return
		}
		data := s.pageData(r, "Admin Dashboard")
		data.Viewer, data.Admin = &record, &view
		s.pages.render(w, http.StatusOK, "admin.html", data)
	}
}

func (s *Server) AdminSectionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ok := viewer(w, r)
		if !ok {
			return
		}
		section, ok := sectionRequest(w, r, users.RoleAdmin, RouteAdmin)
		if !ok {
			return
		}
		view, err := s.admin.View(record, section)
		if err != nil {
			s.renderViewError(w, err)
			return
		}
		data := s.pageData(r, section.Title())
		data.Viewer, data.Admin = &record, &view
		s.pages.renderFragment(w, "admin.html", sectionBlock, data)
	}
}

// AdminUserStatusHandler approves, suspends or re-queues a member
func (s *Server) AdminUserStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := viewer(w, r); !ok {
			return
		}
		id := r.PathValue("id")
		status, err := users.ParseStatus(strings.TrimSpace(r.FormValue("status")))
		if err != nil {
			redirectWithError(w, r, RouteAdmin, "Unknown member status")
			return
		}
		member, err := s.admin.SetUserStatus(id, status)
		if err != nil {
			redirectWithError(w, r, RouteAdmin, userMessage(err))
			return
		}
		log.Info().Str("user", id).Str("name", member.Name).Str("status", string(member.Status)).Msg("Member status changed")
		redirectWithNotice(w, r, RouteAdmin, userStatusNotice(status))
	}
}

func userStatusNotice(status users.Status) string {
	switch status {
	case users.StatusActive:
		return "User approved"
	case users.StatusSuspended:
		return "User suspended"
	}
	return "User moved back to pending review"
}

// AdminDisputeAdvanceHandler moves a dispute to its next resolution step
func (s *Server) AdminDisputeAdvanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := viewer(w, r); !ok {
			return
		}
		id := r.PathValue("id")
		next, err := s.admin.AdvanceDispute(id)
		if err != nil {
			redirectWithError(w, r, RouteAdmin, userMessage(err))
			return
		}
		log.Info().Str("dispute", id).Str("status", string(next)).Msg("Dispute advanced")
		redirectWithNotice(w, r, RouteAdmin, disputeNotice(next))
	}
}

func disputeNotice(status disputes.Status) string {
	if status == disputes.StatusResolved {
		return "Dispute resolved"
	}
	return "Investigation started"
}
