package fakementorrepo

import (
	"sort"
	"sync"

	"github.com/jrsteele09/campusmate/mentors"
)

var _ mentors.Repo = (*FakeMentorRepo)(nil)

type FakeMentorRepo struct {
	mentors []*mentors.Mentor
	lock    sync.RWMutex
}

func NewFakeMentorRepo(seed ...*mentors.Mentor) *FakeMentorRepo {
	list := append([]*mentors.Mentor(nil), seed...)
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return &FakeMentorRepo{mentors: list}
}

// NewSeededMentorRepo returns the demo mentor catalog
func NewSeededMentorRepo() *FakeMentorRepo {
	return NewFakeMentorRepo(
		&mentors.Mentor{
			ID: "1", Name: "Alex Kumar", Avatar: "/placeholder.svg",
			Skills:     []string{"React", "JavaScript", "Node.js"},
			HourlyRate: 800, Rating: 4.9, CompletedTasks: 45, CredibilityScore: 92, Verified: true, Tier: mentors.TierExpert,
		},
		&mentors.Mentor{
			ID: "2", Name: "Priya Sharma", Avatar: "/placeholder.svg",
			Skills:     []string{"Python", "Data Science", "Machine Learning"},
			HourlyRate: 600, Rating: 4.7, CompletedTasks: 28, CredibilityScore: 85, Verified: true, Tier: mentors.TierAdvanced,
		},
	)
}

func (r *FakeMentorRepo) List() ([]*mentors.Mentor, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make([]*mentors.Mentor, 0, len(r.mentors))
	for _, m := range r.mentors {
		cp := *m
		cp.Skills = append([]string(nil), m.Skills...)
		out = append(out, &cp)
	}
	return out, nil
}
