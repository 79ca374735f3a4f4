package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-bot/internal/model"
	"todo-bot/internal/repository"
	"todo-bot/internal/service"
)

func newTaskService(t *testing.T) *service.TaskService {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "todo_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return service.NewTaskService(repository.NewTaskRepository(db))
}

func TestCompleteByNumber_InvalidInput(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "42", "Buy milk")
	require.NoError(t, err)

	for _, raw := range []string{"", "  ", "abc", "0", "-1", "1.5"} {
		_, err := svc.CompleteByNumber(ctx, "42", raw)
		assert.ErrorIs(t, err, service.ErrInvalidTaskNumber, "input %q", raw)
	}
}

func TestCompleteByNumber_NoTasks(t *testing.T) {
	svc := newTaskService(t)

	_, err := svc.CompleteByNumber(context.Background(), "42", "1")
	assert.ErrorIs(t, err, service.ErrNoTasks)
}

func TestCompleteByNumber_OutOfRange(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "42", "Buy milk")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "42", "Walk dog")
	require.NoError(t, err)

	_, err = svc.CompleteByNumber(ctx, "42", "5")
	assert.ErrorIs(t, err, service.ErrTaskNotFound)

	// Nothing mutated.
	tasks, err := svc.List(ctx, "42")
	require.NoError(t, err)
	for _, task := range tasks {
		assert.Equal(t, model.TaskStatusPending, task.Status)
	}
}

func TestCompleteByNumber_ResolvesListingPosition(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "42", "Buy milk")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "42", "Walk dog")
	require.NoError(t, err)

	task, err := svc.CompleteByNumber(ctx, "42", "2")
	require.NoError(t, err)
	assert.Equal(t, "Walk dog", task.Text)
	assert.Equal(t, model.TaskStatusCompleted, task.Status)

	tasks, err := svc.List(ctx, "42")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, model.TaskStatusPending, tasks[0].Status)
	assert.Equal(t, model.TaskStatusCompleted, tasks[1].Status)
}

func TestCompleteByNumber_ScopedToIdentity(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "42", "Buy milk")
	require.NoError(t, err)

	// Another user's listing does not see the task and cannot complete it.
	_, err = svc.CompleteByNumber(ctx, "43", "1")
	assert.ErrorIs(t, err, service.ErrNoTasks)
}
