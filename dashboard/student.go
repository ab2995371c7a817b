package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jrsteele09/campusmate/internal/metrics"
	"github.com/jrsteele09/campusmate/mentors"
	"github.com/jrsteele09/campusmate/sessions"
	"github.com/jrsteele09/campusmate/tasks"
)

// Student drives the student dashboard
type Student struct {
	tasks         tasks.Repo
	mentors       mentors.Repo
	createLatency time.Duration
	metrics       metrics.Recorder
}

func NewStudent(taskRepo tasks.Repo, mentorRepo mentors.Repo, createLatency time.Duration, rec metrics.Recorder) *Student {
	return &Student{tasks: taskRepo, mentors: mentorRepo, createLatency: createLatency, metrics: rec}
}

type StudentView struct {
	Record      sessions.Record
	Section     Section
	Sections    []Section
	Tasks       []*tasks.Task
	Mentors     []*mentors.Mentor
	SkillFilter string

	ActiveTasks int
	TotalSpent  int
	StatusCount map[tasks.Status]int
}

func (s *Student) View(record sessions.Record, section Section, skill string) (StudentView, error) {
	owned, err := s.tasks.ListByOwner(record.Username)
	if err != nil {
		return StudentView{}, fmt.Errorf("[Student View] list tasks: %w", err)
	}
	catalog, err := s.mentors.List()
	if err != nil {
		return StudentView{}, fmt.Errorf("[Student View] list mentors: %w", err)
	}

	counts := tasks.CountByStatus(owned)
	return StudentView{
		Record:      record,
		Section:     section,
		Sections:    Sections(record.Role),
		Tasks:       owned,
		Mentors:     mentors.Filter(catalog, skill),
		SkillFilter: skill,
		ActiveTasks: counts[tasks.StatusOpen] + counts[tasks.StatusInProgress],
		TotalSpent:  tasks.TotalBudget(owned),
		StatusCount: counts,
	}, nil
}

// CreateTask validates the form, then posts it after the simulated backend delay
func (s *Student) CreateTask(ctx context.Context, record sessions.Record, input tasks.NewTask) (*tasks.Task, error) {
	if _, err := input.Validate(time.Now()); err != nil {
		return nil, err
	}
	if err := simulateLatency(ctx, s.createLatency); err != nil {
		return nil, fmt.Errorf("[Student CreateTask] %w", err)
	}
	task, err := s.tasks.Create(record.Username, record.DisplayName(), input)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordTaskCreated()
	return task, nil
}

func (v StudentView) TasksIn(status string) int { return v.StatusCount[tasks.Status(status)] }
