package disputes

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Status string

const (
	StatusOpen          Status = "open"
	StatusInvestigating Status = "investigating"
	StatusResolved      Status = "resolved"
)

// Dispute is a complaint raised between a student and a mentor over a task
type Dispute struct {
	ID        string    `json:"id"`
	TaskTitle string    `json:"task_title"`
	Student   string    `json:"student"`
	Mentor    string    `json:"mentor"`
	Issue     string    `json:"issue"`
	Priority  Priority  `json:"priority"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func CountByStatus(list []*Dispute) map[Status]int {
	counts := make(map[Status]int)
	for _, d := range list {
		counts[d.Status]++
	}
	return counts
}

func CountByPriority(list []*Dispute) map[Priority]int {
	counts := make(map[Priority]int)
	for _, d := range list {
		counts[d.Priority]++
	}
	return counts
}

// Unresolved is the number of disputes still needing attention
func Unresolved(list []*Dispute) int {
	n := 0
	for _, d := range list {
		if d.Status != StatusResolved {
			n++
		}
	}
	return n
}

// Next is the status an admin moves a dispute to; resolved disputes stay put
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusOpen:
		return StatusInvestigating, true
	case StatusInvestigating:
		return StatusResolved, true
	}
	return s, false
}

// NextAction labels the button that advances the dispute
func (s Status) NextAction() string {
	switch s {
	case StatusOpen:
		return "Start Investigation"
	case StatusInvestigating:
		return "Resolve Dispute"
	}
	return ""
}
