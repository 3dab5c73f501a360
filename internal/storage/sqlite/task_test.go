package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agalitsyn/todo-weather/internal/model"
)

// setupTestStorage opens a fresh migrated database in a temp dir.
func setupTestStorage(t *testing.T) *TaskStorage {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewTaskStorage(db)
}

func date(s string) time.Time {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTaskStorage_CreateAndFetch(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	task := model.NewTask("Buy milk", "Two bottles", date("2024-05-01"), "Berlin")
	task.WeatherInfo = "Description: sunny, Wind Speed: 1 m/s, City: Berlin"
	require.NoError(t, s.CreateTask(ctx, task))
	assert.NotZero(t, task.ID)

	got, err := s.FetchTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "Two bottles", got.Description)
	assert.True(t, date("2024-05-01").Equal(got.DueDate))
	assert.False(t, got.Completed)
	assert.Equal(t, "Berlin", got.City)
	assert.Equal(t, task.WeatherInfo, got.WeatherInfo)
}

func TestTaskStorage_FetchTaskByID_NotFound(t *testing.T) {
	s := setupTestStorage(t)

	_, err := s.FetchTaskByID(context.Background(), 42)
	assert.True(t, errors.Is(err, model.ErrTaskNotFound))
}

func TestTaskStorage_IDsNotReused(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	first := model.NewTask("a", "", date("2024-01-01"), "")
	require.NoError(t, s.CreateTask(ctx, first))
	require.NoError(t, s.RemoveTask(ctx, first.ID))

	second := model.NewTask("b", "", date("2024-01-01"), "")
	require.NoError(t, s.CreateTask(ctx, second))
	assert.Greater(t, second.ID, first.ID)
}

func TestTaskStorage_FetchTasks(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	empty, err := s.FetchTasks(ctx, model.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, empty)

	fixtures := []struct {
		title     string
		due       string
		completed bool
	}{
		{"late", "2025-03-01", false},
		{"early", "2023-12-31", true},
		{"mid", "2024-06-15", true},
		{"jan", "2024-01-01", false},
		{"dec", "2024-12-31", false},
	}
	for _, f := range fixtures {
		task := model.NewTask(f.title, "", date(f.due), "")
		task.Completed = f.completed
		require.NoError(t, s.CreateTask(ctx, task))
	}

	titles := func(tasks []model.Task) []string {
		var res []string
		for _, task := range tasks {
			res = append(res, task.Title)
		}
		return res
	}

	all, err := s.FetchTasks(ctx, model.TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "jan", "mid", "dec", "late"}, titles(all))

	completed := true
	done, err := s.FetchTasks(ctx, model.TaskFilter{Completed: &completed})
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "mid"}, titles(done))

	notCompleted := false
	open, err := s.FetchTasks(ctx, model.TaskFilter{Completed: &notCompleted})
	require.NoError(t, err)
	assert.Equal(t, []string{"jan", "dec", "late"}, titles(open))

	inRange, err := s.FetchTasks(ctx, model.TaskFilter{
		DueFrom: date("2024-01-01"),
		DueTo:   date("2024-12-31"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"jan", "mid", "dec"}, titles(inRange))
}

func TestTaskStorage_UpdateTask(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	task := model.NewTask("title", "desc", date("2024-01-01"), "Rome")
	task.WeatherInfo = "warm"
	require.NoError(t, s.CreateTask(ctx, task))

	task.Completed = true
	task.Title = "new title"
	require.NoError(t, s.UpdateTask(ctx, task))

	got, err := s.FetchTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, *task, *got)

	missing := *task
	missing.ID = 1000
	err = s.UpdateTask(ctx, &missing)
	assert.True(t, errors.Is(err, model.ErrTaskNotFound))
}

func TestTaskStorage_RemoveTask(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	keep := model.NewTask("keep", "", date("2024-01-01"), "")
	drop := model.NewTask("drop", "", date("2024-01-02"), "")
	require.NoError(t, s.CreateTask(ctx, keep))
	require.NoError(t, s.CreateTask(ctx, drop))

	require.NoError(t, s.RemoveTask(ctx, drop.ID))

	all, err := s.FetchTasks(ctx, model.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)

	err = s.RemoveTask(ctx, drop.ID)
	assert.True(t, errors.Is(err, model.ErrTaskNotFound))
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
