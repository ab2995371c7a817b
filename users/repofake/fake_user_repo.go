package fakeuserrepo

import (
	"sort"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/campusmate/internal/errors"
	"github.com/jrsteele09/campusmate/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users map[string]*users.User
	lock  sync.RWMutex
}

func NewFakeUserRepo(seed ...*users.User) *FakeUserRepo {
	ur := &FakeUserRepo{users: make(map[string]*users.User)}
	for _, u := range seed {
		ur.users[u.ID] = u
	}
	return ur
}

// NewSeededUserRepo returns a repo holding the demo marketplace members
func NewSeededUserRepo() *FakeUserRepo {
	return NewFakeUserRepo(
		&users.User{
			ID: "1", Name: "Priya Sharma", Email: "priya@college.edu", Role: users.RoleMentor,
			CredibilityScore: 92, Verified: true, JoinDate: date(2024, 8, 15), LastActive: "2 hours ago",
			Status: users.StatusActive, TasksCompleted: 45,
		},
		&users.User{
			ID: "2", Name: "Rahul Kumar", Email: "rahul@college.edu", Role: users.RoleStudent,
			CredibilityScore: 78, Verified: false, JoinDate: date(2024, 9, 1), LastActive: "1 day ago",
			Status: users.StatusPending, TasksCompleted: 8,
		},
		&users.User{
			ID: "3", Name: "Sneha Patel", Email: "sneha@college.edu", Role: users.RoleMentor,
			CredibilityScore: 88, Verified: true, JoinDate: date(2024, 7, 20), LastActive: "5 hours ago",
			Status: users.StatusActive, TasksCompleted: 32,
		},
	)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (ur *FakeUserRepo) List() ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	list := make([]*users.User, 0, len(ur.users))
	for _, u := range ur.users {
		cp := *u
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (ur *FakeUserRepo) GetByID(id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	u, ok := ur.users[id]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "user %s", id)
	}
	cp := *u
	return &cp, nil
}

func (ur *FakeUserRepo) SetStatus(id string, status users.Status) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	u, ok := ur.users[id]
	if !ok {
		return apperrors.Wrapf(apperrors.ErrNotFound, "user %s", id)
	}
	u.Status = status
	if status == users.StatusActive {
		u.Verified = true
	}
	return nil
}
