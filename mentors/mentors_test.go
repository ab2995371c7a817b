package mentors_test

import (
	"testing"

	"github.com/jrsteele09/campusmate/mentors"
	fakementorrepo "github.com/jrsteele09/campusmate/mentors/repofake"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	list, err := fakementorrepo.NewSeededMentorRepo().List()
	require.NoError(t, err)
	require.Len(t, list, 2)

	t.Run("blank skill keeps everyone", func(t *testing.T) {
		out := mentors.Filter(list, " ")
		require.Len(t, out, 2)
		require.Equal(t, "Alex Kumar", out[0].Name)
	})

	t.Run("case insensitive", func(t *testing.T) {
		out := mentors.Filter(list, "python")
		require.Len(t, out, 1)
		require.Equal(t, "Priya Sharma", out[0].Name)
	})

	t.Run("no match", func(t *testing.T) {
		require.Empty(t, mentors.Filter(list, "Rust"))
	})
}

func TestListReturnsCopies(t *testing.T) {
	repo := fakementorrepo.NewSeededMentorRepo()
	list, err := repo.List()
	require.NoError(t, err)
	list[0].Skills[0] = "COBOL"

	again, err := repo.List()
	require.NoError(t, err)
	require.Equal(t, "React", again[0].Skills[0])
}
