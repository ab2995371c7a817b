package dashboard

import (
	"fmt"

	"github.com/jrsteele09/campusmate/disputes"
	"github.com/jrsteele09/campusmate/internal/metrics"
	"github.com/jrsteele09/campusmate/sessions"
	"github.com/jrsteele09/campusmate/tasks"
	"github.com/jrsteele09/campusmate/users"
)

// Admin drives the moderation dashboard
type Admin struct {
	users    users.Repo
	disputes disputes.Repo
	tasks    tasks.Repo
	metrics  metrics.Recorder
}

func NewAdmin(userRepo users.Repo, disputeRepo disputes.Repo, taskRepo tasks.Repo, rec metrics.Recorder) *Admin {
	return &Admin{users: userRepo, disputes: disputeRepo, tasks: taskRepo, metrics: rec}
}

type AdminView struct {
	Record   sessions.Record
	Section  Section
	Sections []Section
	Users    []*users.User
	Disputes []*disputes.Dispute

	TotalUsers           int
	ActiveUsers          int
	PendingVerifications int
	OpenTasks            int
	UnresolvedDisputes   int
	UserStatus           map[users.Status]int
	DisputeStatus        map[disputes.Status]int
	DisputePriority      map[disputes.Priority]int
}

func (a *Admin) View(record sessions.Record, section Section) (AdminView, error) {
	members, err := a.users.List()
	if err != nil {
		return AdminView{}, fmt.Errorf("[Admin View] list users: %w", err)
	}
	queue, err := a.disputes.List()
	if err != nil {
		return AdminView{}, fmt.Errorf("[Admin View] list disputes: %w", err)
	}
	open, err := a.tasks.ListOpen()
	if err != nil {
		return AdminView{}, fmt.Errorf("[Admin View] list open tasks: %w", err)
	}

	userStatus := users.StatusCounts(members)
	return AdminView{
		Record:               record,
		Section:              section,
		Sections:             Sections(users.RoleAdmin),
		Users:                members,
		Disputes:             queue,
		TotalUsers:           len(members),
		ActiveUsers:          userStatus[users.StatusActive],
		PendingVerifications: users.UnverifiedCount(members),
		OpenTasks:            len(open),
		UnresolvedDisputes:   disputes.Unresolved(queue),
		UserStatus:           userStatus,
		DisputeStatus:        disputes.CountByStatus(queue),
		DisputePriority:      disputes.CountByPriority(queue),
	}, nil
}

// SetUserStatus approves, suspends or re-queues a member
func (a *Admin) SetUserStatus(id string, status users.Status) (*users.User, error) {
	if err := a.users.SetStatus(id, status); err != nil {
		return nil, err
	}
	a.metrics.RecordModeration("user", string(status))
	u, err := a.users.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("[Admin SetUserStatus] reload user: %w", err)
	}
	return u, nil
}

// AdvanceDispute moves a dispute one step along open -> investigating -> resolved
func (a *Admin) AdvanceDispute(id string) (disputes.Status, error) {
	next, err := a.disputes.Advance(id)
	if err != nil {
		return next, err
	}
	a.metrics.RecordModeration("dispute", string(next))
	return next, nil
}

// UsersIn, DisputesIn and PriorityCount give templates string-keyed access to the tallies

func (v AdminView) UsersIn(status string) int { return v.UserStatus[users.Status(status)] }

func (v AdminView) DisputesIn(status string) int { return v.DisputeStatus[disputes.Status(status)] }

func (v AdminView) PriorityCount(p string) int { return v.DisputePriority[disputes.Priority(p)] }
