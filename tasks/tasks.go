package tasks

import (
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	apperrors "github.com/jrsteele09/campusmate/internal/errors"
)

const DeadlineLayout = "2006-01-02"

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Task is a piece of help a student posts and mentors apply for.
// Tasks with an empty Owner are shared demo listings shown to every student.
type Task struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Budget        int       `json:"budget"`
	Deadline      time.Time `json:"deadline"`
	Status        Status    `json:"status"`
	Applications  int       `json:"applications"`
	Category      string    `json:"category"`
	Owner         string    `json:"owner,omitempty"`
	StudentName   string    `json:"student"`
	StudentRating float64   `json:"student_rating"`
	Urgency       Urgency   `json:"urgency"`
	PostedAt      time.Time `json:"posted_at"`
}

// NewTask is the student's "create task" form
type NewTask struct {
	Title       string
	Description string
	Budget      int
	Deadline    string
	Category    string
	Urgency     Urgency
}

var plainText = bluemonday.StrictPolicy()

// Validate trims and sanitises the form and checks the required fields
func (n *NewTask) Validate(now time.Time) (time.Time, error) {
	n.Title = strings.TrimSpace(plainText.Sanitize(n.Title))
	n.Description = strings.TrimSpace(plainText.Sanitize(n.Description))
	n.Category = strings.TrimSpace(plainText.Sanitize(n.Category))

	if n.Title == "" {
		return time.Time{}, apperrors.Invalidf("title is required")
	}
	if n.Description == "" {
		return time.Time{}, apperrors.Invalidf("description is required")
	}
	if n.Budget <= 0 {
		return time.Time{}, apperrors.Invalidf("budget must be greater than 0")
	}
	if n.Category == "" {
		return time.Time{}, apperrors.Invalidf("category is required")
	}
	deadline, err := time.Parse(DeadlineLayout, strings.TrimSpace(n.Deadline))
	if err != nil {
		return time.Time{}, apperrors.Invalidf("deadline must be a date (YYYY-MM-DD)")
	}
	if deadline.Before(now.Truncate(24 * time.Hour)) {
		return time.Time{}, apperrors.Invalidf("deadline %s is in the past", n.Deadline)
	}
	switch n.Urgency {
	case "":
		n.Urgency = UrgencyMedium
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
	default:
		return time.Time{}, apperrors.Invalidf("unknown urgency %q", n.Urgency)
	}
	return deadline, nil
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application is a mentor's bid on a task
type Application struct {
	ID           string            `json:"id"`
	TaskID       string            `json:"task_id"`
	TaskTitle    string            `json:"task_title"`
	Mentor       string            `json:"mentor,omitempty"`
	ProposedRate int               `json:"proposed_rate"`
	Message      string            `json:"message"`
	Status       ApplicationStatus `json:"status"`
	SubmittedAt  time.Time         `json:"submitted_at"`
}

// NewApplication is the mentor's "apply" form
type NewApplication struct {
	TaskID       string
	ProposedRate int
	Message      string
}

func (n *NewApplication) Validate() error {
	n.Message = strings.TrimSpace(plainText.Sanitize(n.Message))
	if n.TaskID == "" {
		return apperrors.Invalidf("task is required")
	}
	if n.ProposedRate <= 0 {
		return apperrors.Invalidf("proposed rate must be greater than 0")
	}
	return nil
}

// MentorStats is the mentor's payout and track record summary
type MentorStats struct {
	TotalEarned    int     `json:"total_earned"`
	ThisMonth      int     `json:"this_month"`
	TasksCompleted int     `json:"tasks_completed"`
	Rating         float64 `json:"rating"`
}

// CountByStatus tallies tasks per status
func CountByStatus(list []*Task) map[Status]int {
	counts := make(map[Status]int)
	for _, t := range list {
		counts[t.Status]++
	}
	return counts
}

// TotalBudget sums the budget of every task in list
func TotalBudget(list []*Task) int {
	total := 0
	for _, t := range list {
		total += t.Budget
	}
	return total
}

// CountApplications tallies applications per status
func CountApplications(list []*Application) map[ApplicationStatus]int {
	counts := make(map[ApplicationStatus]int)
	for _, a := range list {
		counts[a.Status]++
	}
	return counts
}

func (s Status) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

func (t *Task) String() string {
	return fmt.Sprintf("%s (%s)", t.Title, t.Status)
}
