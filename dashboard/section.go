package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/jrsteele09/campusmate/users"
)

// Section is the active panel of a dashboard. Switching sections re-renders a
// fragment of the page and never touches the session or the repositories.
type Section string

const (
	SectionOverview     Section = "overview"
	SectionTasks        Section = "tasks"
	SectionMentors      Section = "mentors"
	SectionCreate       Section = "create"
	SectionProfile      Section = "profile"
	SectionBrowse       Section = "browse"
	SectionApplications Section = "applications"
	SectionUsers        Section = "users"
	SectionDisputes     Section = "disputes"
	SectionVerification Section = "verification"
)

var sectionsByRole = map[users.Role][]Section{
	users.RoleStudent: {SectionOverview, SectionTasks, SectionMentors, SectionCreate, SectionProfile},
	users.RoleMentor:  {SectionOverview, SectionBrowse, SectionApplications, SectionProfile},
	users.RoleAdmin:   {SectionOverview, SectionUsers, SectionDisputes, SectionVerification},
}

// Sections lists the panels a role's dashboard offers, in navigation order
func Sections(role users.Role) []Section {
	return append([]Section(nil), sectionsByRole[role]...)
}

// SelectSection resolves a requested section, falling back to overview
func SelectSection(role users.Role, raw string) Section {
	for _, s := range sectionsByRole[role] {
		if string(s) == raw {
			return s
		}
	}
	return SectionOverview
}

func (s Section) Title() string {
	switch s {
	case SectionCreate:
		return "Create Task"
	case SectionTasks:
		return "My Tasks"
	case SectionMentors:
		return "Find Mentors"
	case SectionBrowse:
		return "Browse Tasks"
	case SectionApplications:
		return "My Applications"
	}
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// simulateLatency stands in for the round trip to a real marketplace backend
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
