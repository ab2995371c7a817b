package mentors

import (
	"sort"
	"strings"
)

type Tier string

const (
	TierBasic    Tier = "Basic"
	TierAdvanced Tier = "Advanced"
	TierExpert   Tier = "Expert"
)

// Mentor is a catalog entry students browse when looking for help
type Mentor struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Avatar           string   `json:"avatar"`
	Skills           []string `json:"skills"`
	HourlyRate       int      `json:"hourly_rate"`
	Rating           float64  `json:"rating"`
	CompletedTasks   int      `json:"completed_tasks"`
	CredibilityScore int      `json:"credibility_score"`
	Verified         bool     `json:"is_verified"`
	Tier             Tier     `json:"tier"`
}

func (m *Mentor) HasSkill(skill string) bool {
	for _, s := range m.Skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}

// Filter keeps the mentors offering skill (all of them when skill is blank),
// best rated first
func Filter(list []*Mentor, skill string) []*Mentor {
	skill = strings.TrimSpace(skill)
	out := make([]*Mentor, 0, len(list))
	for _, m := range list {
		if skill == "" || m.HasSkill(skill) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return out
}
