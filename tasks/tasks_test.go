package tasks_test

import (
	"testing"
	"time"

	apperrors "github.com/jrsteele09/campusmate/internal/errors"
	"github.com/jrsteele09/campusmate/tasks"
	faketaskrepo "github.com/jrsteele09/campusmate/tasks/repofake"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 9, 13, 12, 0, 0, 0, time.UTC)

func validTask() tasks.NewTask {
	return tasks.NewTask{
		Title:       "Graph algorithms walkthrough",
		Description: "Need someone to explain Dijkstra",
		Budget:      400,
		Deadline:    "2025-09-20",
		Category:    "Computer Science",
	}
}

func TestNewTask_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		nt := validTask()
		deadline, err := nt.Validate(fixedNow)
		require.NoError(t, err)
		require.Equal(t, 20, deadline.Day())
		require.Equal(t, tasks.UrgencyMedium, nt.Urgency)
	})

	t.Run("markup stripped", func(t *testing.T) {
		nt := validTask()
		nt.Title = `<script>alert(1)</script><b>Help</b>`
		_, err := nt.Validate(fixedNow)
		require.NoError(t, err)
		require.Equal(t, "Help", nt.Title)
	})

	cases := map[string]func(*tasks.NewTask){
		"blank title":     func(n *tasks.NewTask) { n.Title = "   " },
		"blank details":   func(n *tasks.NewTask) { n.Description = "" },
		"zero budget":     func(n *tasks.NewTask) { n.Budget = 0 },
		"negative budget": func(n *tasks.NewTask) { n.Budget = -10 },
		"bad deadline":    func(n *tasks.NewTask) { n.Deadline = "next week" },
		"past deadline":   func(n *tasks.NewTask) { n.Deadline = "2025-09-01" },
		"no category":     func(n *tasks.NewTask) { n.Category = "" },
		"unknown urgency": func(n *tasks.NewTask) { n.Urgency = "asap" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			nt := validTask()
			mutate(&nt)
			_, err := nt.Validate(fixedNow)
			require.True(t, apperrors.Is(err, apperrors.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestFakeTaskRepo(t *testing.T) {
	repo := faketaskrepo.NewSeededTaskRepo().WithClock(func() time.Time { return fixedNow })

	t.Run("student sees demo tasks", func(t *testing.T) {
		list, err := repo.ListByOwner("alice")
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, 1300, tasks.TotalBudget(list))
	})

	t.Run("open tasks", func(t *testing.T) {
		list, err := repo.ListOpen()
		require.NoError(t, err)
		require.Len(t, list, 3)
		require.Equal(t, "1", list[0].ID)
	})

	t.Run("create appends", func(t *testing.T) {
		created, err := repo.Create("alice", "Alice", validTask())
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		require.Equal(t, tasks.StatusOpen, created.Status)

		list, err := repo.ListByOwner("alice")
		require.NoError(t, err)
		require.Len(t, list, 3)
		require.Equal(t, created.ID, list[0].ID)

		other, err := repo.ListByOwner("bob")
		require.NoError(t, err)
		require.Len(t, other, 2)
	})

	t.Run("create rejects invalid input", func(t *testing.T) {
		nt := validTask()
		nt.Budget = 0
		_, err := repo.Create("alice", "Alice", nt)
		require.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("apply", func(t *testing.T) {
		app, err := repo.Apply("mentor-1", tasks.NewApplication{TaskID: "3", ProposedRate: 700, Message: "Happy to help"})
		require.NoError(t, err)
		require.Equal(t, tasks.ApplicationPending, app.Status)

		apps, err := repo.ListApplications("mentor-1")
		require.NoError(t, err)
		require.Len(t, apps, 3)
		require.Equal(t, 2, tasks.CountApplications(apps)[tasks.ApplicationPending])

		_, err = repo.Apply("mentor-1", tasks.NewApplication{TaskID: "3", ProposedRate: 700})
		require.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

		_, err = repo.Apply("mentor-1", tasks.NewApplication{TaskID: "2", ProposedRate: 700})
		require.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

		_, err = repo.Apply("mentor-1", tasks.NewApplication{TaskID: "404", ProposedRate: 700})
		require.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("mentor stats", func(t *testing.T) {
		st, err := repo.Stats("mentor-1")
		require.NoError(t, err)
		require.Equal(t, 15200, st.TotalEarned)
		require.Equal(t, 3400, st.ThisMonth)
		require.Equal(t, 23, st.TasksCompleted)
	})
}

func TestFakeTaskRepo_ApplicationsNewestFirst(t *testing.T) {
	clock := fixedNow
	repo := faketaskrepo.NewSeededTaskRepo().WithClock(func() time.Time { return clock })

	var applied []string
	for _, id := range []string{"3", "4"} {
		clock = clock.Add(time.Minute)
		app, err := repo.Apply("alice", tasks.NewApplication{TaskID: id, ProposedRate: 500})
		require.NoError(t, err)
		require.Equal(t, clock, app.SubmittedAt)
		applied = append(applied, app.ID)
	}

	apps, err := repo.ListApplications("alice")
	require.NoError(t, err)
	require.Len(t, apps, 4)
	require.Equal(t, applied[1], apps[0].ID)
	require.Equal(t, applied[0], apps[1].ID)
	require.Equal(t, "1", apps[2].ID)
	require.Equal(t, "2", apps[3].ID)
}

func TestFakeTaskRepo_DemoApplicationBlocksDuplicate(t *testing.T) {
	repo := faketaskrepo.NewSeededTaskRepo().WithClock(func() time.Time { return fixedNow })

	// task 1 already carries a demo application every mentor sees as their own
	_, err := repo.Apply("alice", tasks.NewApplication{TaskID: "1", ProposedRate: 450})
	require.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

	apps, err := repo.ListApplications("alice")
	require.NoError(t, err)
	require.Len(t, apps, 2)
}
