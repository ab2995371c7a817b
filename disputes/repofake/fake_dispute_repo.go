package fakedisputerepo

import (
	"sort"
	"sync"
	"time"

	"github.com/jrsteele09/campusmate/disputes"
	apperrors "github.com/jrsteele09/campusmate/internal/errors"
)

var _ disputes.Repo = (*FakeDisputeRepo)(nil)

type FakeDisputeRepo struct {
	disputes map[string]*disputes.Dispute
	lock     sync.RWMutex
}

func NewFakeDisputeRepo(seed ...*disputes.Dispute) *FakeDisputeRepo {
	r := &FakeDisputeRepo{disputes: make(map[string]*disputes.Dispute)}
	for _, d := range seed {
		r.disputes[d.ID] = d
	}
	return r
}

// NewSeededDisputeRepo returns the demo dispute queue
func NewSeededDisputeRepo() *FakeDisputeRepo {
	return NewFakeDisputeRepo(
		&disputes.Dispute{
			ID: "1", TaskTitle: "React Component Debug", Student: "Rahul Kumar", Mentor: "Priya Sharma",
			Issue: "Work not delivered on time", Priority: disputes.PriorityHigh, Status: disputes.StatusOpen,
			CreatedAt: time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC),
		},
		&disputes.Dispute{
			ID: "2", TaskTitle: "Python Data Analysis", Student: "Arjun Singh", Mentor: "Sneha Patel",
			Issue: "Quality concerns with deliverable", Priority: disputes.PriorityMedium, Status: disputes.StatusInvestigating,
			CreatedAt: time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC),
		},
	)
}

func (r *FakeDisputeRepo) List() ([]*disputes.Dispute, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	list := make([]*disputes.Dispute, 0, len(r.disputes))
	for _, d := range r.disputes {
		cp := *d
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *FakeDisputeRepo) Advance(id string) (disputes.Status, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	d, ok := r.disputes[id]
	if !ok {
		return "", apperrors.Wrapf(apperrors.ErrNotFound, "dispute %s", id)
	}
	next, ok := d.Status.Next()
	if !ok {
		return d.Status, apperrors.Invalidf("dispute %s is already %s", id, d.Status)
	}
	d.Status = next
	return next, nil
}
