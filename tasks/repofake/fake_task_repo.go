package faketaskrepo

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/jrsteele09/campusmate/internal/errors"
	"github.com/jrsteele09/campusmate/tasks"
)

var _ tasks.Repo = (*FakeTaskRepo)(nil)

type FakeTaskRepo struct {
	tasks        map[string]*tasks.Task
	applications map[string]*tasks.Application
	stats        tasks.MentorStats
	now          func() time.Time
	lock         sync.RWMutex
}

func NewFakeTaskRepo() *FakeTaskRepo {
	return &FakeTaskRepo{
		tasks:        make(map[string]*tasks.Task),
		applications: make(map[string]*tasks.Application),
		now:          time.Now,
	}
}

// NewSeededTaskRepo returns a repo holding the demo listings, applications and mentor stats
func NewSeededTaskRepo() *FakeTaskRepo {
	r := NewFakeTaskRepo()
	posted := time.Date(2025, 9, 12, 9, 0, 0, 0, time.UTC)
	for _, t := range []*tasks.Task{
		{
			ID: "1", Title: "React Component Debug Help",
			Description: "Need help debugging a React component that's not rendering properly. The issue seems to be with state management.",
			Budget:      500, Deadline: day(2025, 9, 15), Status: tasks.StatusOpen, Applications: 3, Category: "Programming",
			StudentName: "Rahul Gupta", StudentRating: 4.2, Urgency: tasks.UrgencyHigh, PostedAt: posted.Add(-2 * time.Hour),
		},
		{
			ID: "2", Title: "Data Structures Assignment",
			Description: "Help with implementing binary search tree in Java",
			Budget:      800, Deadline: day(2025, 9, 18), Status: tasks.StatusInProgress, Applications: 1, Category: "Computer Science",
			StudentName: "Rahul Gupta", StudentRating: 4.2, Urgency: tasks.UrgencyMedium, PostedAt: posted.Add(-48 * time.Hour),
		},
		{
			ID: "3", Title: "Python Data Analysis Project", Owner: "sneha-patel",
			Description: "Help with analyzing a dataset using pandas and creating visualizations with matplotlib.",
			Budget:      800, Deadline: day(2025, 9, 18), Status: tasks.StatusOpen, Category: "Data Science",
			StudentName: "Sneha Patel", StudentRating: 4.8, Urgency: tasks.UrgencyMedium, PostedAt: posted.Add(-4 * time.Hour),
		},
		{
			ID: "4", Title: "Web Design Consultation", Owner: "arjun-singh",
			Description: "Need guidance on improving UI/UX for a college project website. Looking for design feedback.",
			Budget:      600, Deadline: day(2025, 9, 20), Status: tasks.StatusOpen, Category: "Design",
			StudentName: "Arjun Singh", StudentRating: 4.5, Urgency: tasks.UrgencyLow, PostedAt: posted.Add(-24 * time.Hour),
		},
	} {
		r.tasks[t.ID] = t
	}
	for _, a := range []*tasks.Application{
		{
			ID: "1", TaskID: "1", TaskTitle: "React Component Debug Help", ProposedRate: 450,
			Message: "I have 3+ years of React experience and can help debug this quickly.",
			Status:  tasks.ApplicationPending, SubmittedAt: posted.Add(-time.Hour),
		},
		{
			ID: "2", TaskID: "2", TaskTitle: "Java Algorithm Implementation", ProposedRate: 700,
			Message: "Expert in algorithms and data structures. Can complete in 2 days.",
			Status:  tasks.ApplicationAccepted, SubmittedAt: posted.Add(-48 * time.Hour),
		},
	} {
		r.applications[a.ID] = a
	}
	r.stats = tasks.MentorStats{TotalEarned: 15200, ThisMonth: 3400, TasksCompleted: 23, Rating: 4.9}
	return r
}

// WithClock replaces the clock used for deadlines and timestamps
func (r *FakeTaskRepo) WithClock(now func() time.Time) *FakeTaskRepo {
	r.now = now
	return r
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r *FakeTaskRepo) ListByOwner(owner string) ([]*tasks.Task, error) {
	return r.filter(func(t *tasks.Task) bool {
		return t.Owner == "" || t.Owner == owner
	}), nil
}

func (r *FakeTaskRepo) ListOpen() ([]*tasks.Task, error) {
	return r.filter(func(t *tasks.Task) bool {
		return t.Status == tasks.StatusOpen
	}), nil
}

func (r *FakeTaskRepo) filter(keep func(*tasks.Task) bool) []*tasks.Task {
	r.lock.RLock()
	defer r.lock.RUnlock()

	list := make([]*tasks.Task, 0)
	for _, t := range r.tasks {
		if keep(t) {
			cp := *t
			list = append(list, &cp)
		}
	}
	// newest first
	sort.Slice(list, func(i, j int) bool {
		if list[i].PostedAt.Equal(list[j].PostedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].PostedAt.After(list[j].PostedAt)
	})
	return list
}

func (r *FakeTaskRepo) Create(owner, studentName string, input tasks.NewTask) (*tasks.Task, error) {
	now := r.now()
	deadline, err := input.Validate(now)
	if err != nil {
		return nil, err
	}

	t := &tasks.Task{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
		Deadline:    deadline,
		Status:      tasks.StatusOpen,
		Category:    input.Category,
		Owner:       owner,
		StudentName: studentName,
		Urgency:     input.Urgency,
		PostedAt:    now,
	}

	r.lock.Lock()
	defer r.lock.Unlock()
	r.tasks[t.ID] = t
	cp := *t
	return &cp, nil
}

func (r *FakeTaskRepo) ListApplications(mentor string) ([]*tasks.Application, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	list := make([]*tasks.Application, 0)
	for _, a := range r.applications {
		if a.Mentor == "" || a.Mentor == mentor {
			cp := *a
			list = append(list, &cp)
		}
	}
	// newest first
	sort.Slice(list, func(i, j int) bool {
		if list[i].SubmittedAt.Equal(list[j].SubmittedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].SubmittedAt.After(list[j].SubmittedAt)
	})
	return list, nil
}

func (r *FakeTaskRepo) Apply(mentor string, input tasks.NewApplication) (*tasks.Application, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	t, ok := r.tasks[input.TaskID]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "task %s", input.TaskID)
	}
	if t.Status != tasks.StatusOpen {
		return nil, apperrors.Invalidf("task %q is no longer open", t.Title)
	}
	// owner-less demo applications are listed for every mentor, so they count as theirs
	for _, a := range r.applications {
		if (a.Mentor == "" || a.Mentor == mentor) && a.TaskID == t.ID {
			return nil, apperrors.Invalidf("already applied to %q", t.Title)
		}
	}

	a := &tasks.Application{
		ID:           uuid.New().String(),
		TaskID:       t.ID,
		TaskTitle:    t.Title,
		Mentor:       mentor,
		ProposedRate: input.ProposedRate,
		Message:      input.Message,
		Status:       tasks.ApplicationPending,
		SubmittedAt:  r.now(),
	}
	r.applications[a.ID] = a
	t.Applications++
	cp := *a
	return &cp, nil
}

func (r *FakeTaskRepo) Stats(string) (tasks.MentorStats, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.stats, nil
}
