package verification

import (
	"encoding/json"
	"io"
	"strings"

	apperrors "github.com/jrsteele09/campusmate/internal/errors"
)

// Payload is the enriched profile an identity provider returns for a username
type Payload struct {
	Username          string            `json:"username"`
	Name              string            `json:"name"`
	Email             *string           `json:"email"`
	Bio               string            `json:"bio"`
	Location          string            `json:"location"`
	AvatarURL         string            `json:"avatar_url"`
	VerificationScore int               `json:"verification_score"`
	CanVerifyStudent  bool              `json:"can_verify_student"`
	CanVerifyMentor   bool              `json:"can_verify_mentor"`
	MentorTier        string            `json:"mentor_tier"`
	Skills            map[string]string `json:"skills"` // skill -> expertise level
}

// Validate checks the invariants every payload must satisfy
func (p *Payload) Validate() error {
	if strings.TrimSpace(p.Username) == "" {
		return apperrors.Wrapf(apperrors.ErrVerificationUnavailable, "payload has no username")
	}
	if p.VerificationScore < 0 || p.VerificationScore > 100 {
		return apperrors.Wrapf(apperrors.ErrVerificationUnavailable, "verification score %d out of range", p.VerificationScore)
	}
	return nil
}

// DecodePayload parses a provider response, rejecting fields outside the contract
func DecodePayload(r io.Reader) (Payload, error) {
	var p Payload
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Payload{}, apperrors.Wrapf(apperrors.ErrVerificationUnavailable, "decode payload: %v", err)
	}
	if err := p.Validate(); err != nil {
		return Payload{}, err
	}
	return p, nil
}

// ScoreLabel is the credibility band shown next to a score
func ScoreLabel(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	}
	return "Poor"
}

// ScoreBand is the CSS modifier for the credibility meter
func ScoreBand(score int) string {
	switch {
	case score >= 80:
		return "success"
	case score >= 60:
		return "gold"
	case score >= 40:
		return "warning"
	}
	return "danger"
}
