package dashboard

import (
	"fmt"

	"github.com/jrsteele09/campusmate/internal/metrics"
	"github.com/jrsteele09/campusmate/sessions"
	"github.com/jrsteele09/campusmate/tasks"
)

// Mentor drives the mentor dashboard
type Mentor struct {
	tasks   tasks.Repo
	metrics metrics.Recorder
}

func NewMentor(taskRepo tasks.Repo, rec metrics.Recorder) *Mentor {
	return &Mentor{tasks: taskRepo, metrics: rec}
}

type MentorView struct {
	Record       sessions.Record
	Section      Section
	Sections     []Section
	OpenTasks    []*tasks.Task
	Applications []*tasks.Application
	Stats        tasks.MentorStats

	PendingApplications  int
	AcceptedApplications int
}

func (m *Mentor) View(record sessions.Record, section Section) (MentorView, error) {
	open, err := m.tasks.ListOpen()
	if err != nil {
		return MentorView{}, fmt.Errorf("[Mentor View] list open tasks: %w", err)
	}
	apps, err := m.tasks.ListApplications(record.Username)
	if err != nil {
		return MentorView{}, fmt.Errorf("[Mentor View] list applications: %w", err)
	}
	stats, err := m.tasks.Stats(record.Username)
	if err != nil {
		return MentorView{}, fmt.Errorf("[Mentor View] stats: %w", err)
	}

	counts := tasks.CountApplications(apps)
	return MentorView{
		Record:               record,
		Section:              section,
		Sections:             Sections(record.Role),
		OpenTasks:            open,
		Applications:         apps,
		Stats:                stats,
		PendingApplications:  counts[tasks.ApplicationPending],
		AcceptedApplications: counts[tasks.ApplicationAccepted],
	}, nil
}

func (m *Mentor) Apply(record sessions.Record, input tasks.NewApplication) (*tasks.Application, error) {
	return m.tasks.Apply(record.Username, input)
}
