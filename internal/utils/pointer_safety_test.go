package utils_test

import (
	"testing"

	"github.com/jrsteele09/campusmate/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestValueAndPtr(t *testing.T) {
	require.Equal(t, "", utils.Value[string](nil))
	require.Equal(t, "a@college.edu", utils.Value(utils.Ptr("a@college.edu")))
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0, utils.Clamp(-5, 0, 100))
	require.Equal(t, 100, utils.Clamp(140, 0, 100))
	require.Equal(t, 85, utils.Clamp(85, 0, 100))
}
