package errors_test

import (
	"fmt"
	"testing"

	apperrors "github.com/jrsteele09/campusmate/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	require.NoError(t, apperrors.Wrapf(nil, "context"))

	err := apperrors.Wrapf(apperrors.ErrProfileNotFound, "verify %s", "alice")
	require.EqualError(t, err, "verify alice: profile not found")
	require.True(t, apperrors.Is(err, apperrors.ErrProfileNotFound))
}

func TestInvalidf(t *testing.T) {
	err := apperrors.Invalidf("budget must be greater than %d", 0)
	require.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	require.EqualError(t, err, "invalid input: budget must be greater than 0")

	wrapped := fmt.Errorf("create task: %w", err)
	require.True(t, apperrors.Is(wrapped, apperrors.ErrInvalidInput))
}
