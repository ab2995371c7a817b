package sessions

import (
	"time"

	"github.com/jrsteele09/campusmate/users"
)

// SlotKey is the single persisted slot holding the current viewer's record
const SlotKey = "campusmate_user"

// Record describes the current authenticated viewer and the role they signed up as.
// Verification status is derived from Role and the two capability flags, never stored.
type Record struct {
	// Identity
	Username  string  `json:"username"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Bio       string  `json:"bio"`
	Location  string  `json:"location"`
	AvatarURL string  `json:"avatar_url"`

	Role users.Role `json:"user_type"`

	// Verification payload
	VerificationScore int               `json:"verification_score"`
	CanVerifyStudent  bool              `json:"can_verify_student"`
	CanVerifyMentor   bool              `json:"can_verify_mentor"`
	MentorTier        string            `json:"mentor_tier"`
	Skills            map[string]string `json:"skills"`

	JoinedAt time.Time `json:"joined_at"`
}

// IsVerified reports the capability flag matching the viewer's role
func (r Record) IsVerified() bool {
	switch r.Role {
	case users.RoleStudent:
		return r.CanVerifyStudent
	case users.RoleMentor:
		return r.CanVerifyMentor
	}
	return false
}

// DisplayName falls back to the username when the provider gave no name
func (r Record) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Username
}

// Badge is the verification badge label shown next to the viewer, empty when unverified
func (r Record) Badge() string {
	if !r.IsVerified() {
		return ""
	}
	if r.Role == users.RoleMentor {
		if r.MentorTier == "Expert" {
			return "Gold Mentor"
		}
		return "Verified Mentor"
	}
	return "Verified Student"
}
