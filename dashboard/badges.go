package dashboard

import (
	"github.com/jrsteele09/campusmate/disputes"
	"github.com/jrsteele09/campusmate/tasks"
	"github.com/jrsteele09/campusmate/users"
)

// Badge classes are Bootstrap background utilities

func TaskStatusClass(s tasks.Status) string {
	switch s {
	case tasks.StatusOpen:
		return "bg-primary"
	case tasks.StatusInProgress:
		return "bg-warning"
	case tasks.StatusCompleted:
		return "bg-success"
	}
	return "bg-secondary"
}

func UrgencyClass(u tasks.Urgency) string {
	switch u {
	case tasks.UrgencyHigh:
		return "bg-danger"
	case tasks.UrgencyMedium:
		return "bg-warning"
	case tasks.UrgencyLow:
		return "bg-success"
	}
	return "bg-secondary"
}

func ApplicationStatusClass(s tasks.ApplicationStatus) string {
	switch s {
	case tasks.ApplicationPending:
		return "bg-warning"
	case tasks.ApplicationAccepted:
		return "bg-success"
	case tasks.ApplicationRejected:
		return "bg-danger"
	}
	return "bg-secondary"
}

func UserStatusClass(s users.Status) string {
	switch s {
	case users.StatusActive:
		return "bg-success"
	case users.StatusPending:
		return "bg-warning"
	case users.StatusSuspended:
		return "bg-danger"
	}
	return "bg-secondary"
}

func DisputePriorityClass(p disputes.Priority) string {
	switch p {
	case disputes.PriorityHigh:
		return "bg-danger"
	case disputes.PriorityMedium:
		return "bg-warning"
	case disputes.PriorityLow:
		return "bg-success"
	}
	return "bg-secondary"
}

func DisputeStatusClass(s disputes.Status) string {
	switch s {
	case disputes.StatusOpen:
		return "bg-danger"
	case disputes.StatusInvestigating:
		return "bg-warning"
	case disputes.StatusResolved:
		return "bg-success"
	}
	return "bg-secondary"
}
