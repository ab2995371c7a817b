package users

import (
	"fmt"
	"time"
)

// Role decides which dashboard a viewer gets
type Role string

const (
	RoleStudent Role = "student"
	RoleMentor  Role = "mentor"
	RoleAdmin   Role = "admin" // Only granted to configured usernames
)

// ParseRole validates a role chosen at signup
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleStudent, RoleMentor, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	return string(r)
}

// Status is the moderation state of a marketplace member
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusPending   Status = "pending"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusActive, StatusSuspended, StatusPending:
		return st, nil
	}
	return "", fmt.Errorf("unknown user status %q", s)
}

// User is a marketplace member as seen by the admin dashboard
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             Role      `json:"type"`
	CredibilityScore int       `json:"credibility_score"`
	Verified         bool      `json:"is_verified"`
	JoinDate         time.Time `json:"join_date"`
	LastActive       string    `json:"last_active"`
	Status           Status    `json:"status"`
	TasksCompleted   int       `json:"tasks_completed"`
}

// StatusCounts tallies users per moderation status
func StatusCounts(list []*User) map[Status]int {
	counts := make(map[Status]int)
	for _, u := range list {
		counts[u.Status]++
	}
	return counts
}

// UnverifiedCount is the number of users still awaiting verification
func UnverifiedCount(list []*User) int {
	n := 0
	for _, u := range list {
		if !u.Verified {
			n++
		}
	}
	return n
}
