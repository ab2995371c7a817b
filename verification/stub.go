package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/campusmate/internal/errors"
	"github.com/jrsteele09/campusmate/internal/utils"
	"github.com/jrsteele09/campusmate/users"
)

// StubVerifier returns a canned payload after a simulated provider delay
type StubVerifier struct {
	latency time.Duration
	timeout time.Duration
	payload func(username string, role users.Role) Payload
}

var _ Verifier = (*StubVerifier)(nil)

type StubOption func(*StubVerifier)

func WithLatency(d time.Duration) StubOption {
	return func(s *StubVerifier) { s.latency = d }
}

func WithTimeout(d time.Duration) StubOption {
	return func(s *StubVerifier) { s.timeout = d }
}

// WithPayload overrides the canned payload
func WithPayload(fn func(username string, role users.Role) Payload) StubOption {
	return func(s *StubVerifier) { s.payload = fn }
}

func NewStubVerifier(opts ...StubOption) *StubVerifier {
	s := &StubVerifier{
		latency: 2 * time.Second,
		timeout: 10 * time.Second,
		payload: CannedPayload,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StubVerifier) Verify(ctx context.Context, username string, role users.Role) (Payload, error) {
	username, err := NormaliseUsername(username)
	if err != nil {
		return Payload{}, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Payload{}, apperrors.Wrapf(apperrors.ErrVerificationUnavailable, "verify %s timed out", username)
		}
		return Payload{}, apperrors.Wrapf(ctx.Err(), "verify %s", username)
	}

	p := s.payload(username, role)
	if err := p.Validate(); err != nil {
		return Payload{}, err
	}
	return p, nil
}

// CannedPayload is the demo profile every username resolves to
func CannedPayload(username string, role users.Role) Payload {
	return Payload{
		Username:          username,
		Name:              "Student Name",
		Email:             utils.Ptr("student@college.edu"),
		Bio:               "Computer Science Student passionate about development",
		Location:          "Campus City",
		AvatarURL:         fmt.Sprintf("https://github.com/%s.png", username),
		VerificationScore: 85,
		CanVerifyStudent:  true,
		CanVerifyMentor:   role == users.RoleMentor,
		MentorTier:        "Advanced",
		Skills: map[string]string{
			"React":      "Advanced",
			"JavaScript": "Expert",
			"Python":     "Intermediate",
		},
	}
}
