package sessions

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/jrsteele09/campusmate/internal/errors"
	"github.com/jrsteele09/campusmate/users"
	"github.com/jrsteele09/campusmate/verification"
)

// Store is the narrow session interface handed to every protected view
type Store interface {
	Create(payload verification.Payload, role users.Role) (Record, error)
	Read() (Record, bool)
	Clear() error
}

// SlotStore keeps at most one Record in a Slot, overwriting on every Create
type SlotStore struct {
	slot      Slot
	now       func() time.Time
	onCorrupt func(error)
}

var _ Store = (*SlotStore)(nil)

type StoreOption func(*SlotStore)

func WithClock(now func() time.Time) StoreOption {
	return func(s *SlotStore) { s.now = now }
}

// WithCorruptHook is called whenever a stored record is discarded as unreadable
func WithCorruptHook(fn func(error)) StoreOption {
	return func(s *SlotStore) { s.onCorrupt = fn }
}

func NewStore(slot Slot, opts ...StoreOption) *SlotStore {
	s := &SlotStore{
		slot:      slot,
		now:       time.Now,
		onCorrupt: func(error) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create builds the record from a verification payload and role and replaces any prior session
func (s *SlotStore) Create(payload verification.Payload, role users.Role) (Record, error) {
	if strings.TrimSpace(payload.Username) == "" {
		return Record{}, apperrors.Invalidf("username is required")
	}
	if _, err := users.ParseRole(role.String()); err != nil {
		return Record{}, apperrors.Invalidf("%v", err)
	}

	record := Record{
		Username:          payload.Username,
		Name:              payload.Name,
		Email:             payload.Email,
		Bio:               payload.Bio,
		Location:          payload.Location,
		AvatarURL:         payload.AvatarURL,
		Role:              role,
		VerificationScore: payload.VerificationScore,
		CanVerifyStudent:  payload.CanVerifyStudent,
		CanVerifyMentor:   payload.CanVerifyMentor,
		MentorTier:        payload.MentorTier,
		Skills:            payload.Skills,
		JoinedAt:          s.now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return Record{}, fmt.Errorf("[SlotStore] marshal record: %w", err)
	}
	if err := s.slot.Set(SlotKey, data); err != nil {
		return Record{}, fmt.Errorf("[SlotStore] write slot: %w", err)
	}
	return record, nil
}

// Read returns the current record; missing or unreadable data reads as no session
func (s *SlotStore) Read() (Record, bool) {
	data, ok, err := s.slot.Get(SlotKey)
	if err != nil {
		s.corrupt(err)
		return Record{}, false
	}
	if !ok {
		return Record{}, false
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		s.corrupt(apperrors.Wrapf(apperrors.ErrSessionCorrupt, "decode record: %v", err))
		return Record{}, false
	}
	if record.Username == "" {
		s.corrupt(apperrors.Wrapf(apperrors.ErrSessionCorrupt, "record has no username"))
		return Record{}, false
	}
	if _, err := users.ParseRole(record.Role.String()); err != nil {
		s.corrupt(apperrors.Wrapf(apperrors.ErrSessionCorrupt, "record role: %v", err))
		return Record{}, false
	}
	return record, true
}

// Clear removes the session; clearing an absent session is a no-op
func (s *SlotStore) Clear() error {
	if err := s.slot.Delete(SlotKey); err != nil {
		return fmt.Errorf("[SlotStore] clear slot: %w", err)
	}
	return nil
}

func (s *SlotStore) corrupt(err error) {
	log.Debug().Err(err).Msg("Discarding unreadable session")
	s.onCorrupt(err)
}
