package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"todo-bot/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "todo_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestUserRepository_FindByIdentityMiss(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	user, err := repo.FindByIdentity(context.Background(), "42")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_RegisterReplacesExistingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.Register(ctx, "42", "Alice", "alice")
	require.NoError(t, err)
	_, err = repo.Register(ctx, "42", "Bob", "bob")
	require.NoError(t, err)

	user, err := repo.FindByIdentity(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Bob", user.Name)
	assert.Equal(t, "bob", user.Username)
	assert.False(t, user.RegisteredOn.IsZero())

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTaskRepository_ListByOwnerAscendingOrder(t *testing.T) {
	repo := NewTaskRepository(newTestDB(t))
	ctx := context.Background()

	for _, text := range []string{"Buy milk", "Walk dog"} {
		require.NoError(t, repo.Create(ctx, &model.Task{UserIdentity: "42", Text: text}))
	}

	tasks, err := repo.ListByOwner(ctx, "42")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Buy milk", tasks[0].Text)
	assert.Equal(t, "Walk dog", tasks[1].Text)
	assert.Equal(t, model.TaskStatusPending, tasks[0].Status)
	assert.Equal(t, model.TaskStatusPending, tasks[1].Status)
	assert.Less(t, tasks[0].ID, tasks[1].ID)
}

func TestTaskRepository_ListByOwnerScopedToOwner(t *testing.T) {
	repo := NewTaskRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Task{UserIdentity: "42", Text: "Mine"}))
	require.NoError(t, repo.Create(ctx, &model.Task{UserIdentity: "43", Text: "Theirs"}))

	tasks, err := repo.ListByOwner(ctx, "42")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Mine", tasks[0].Text)

	tasks, err = repo.ListByOwner(ctx, "44")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskRepository_CompleteMarksOnlyTarget(t *testing.T) {
	repo := NewTaskRepository(newTestDB(t))
	ctx := context.Background()

	first := model.Task{UserIdentity: "42", Text: "Buy milk"}
	second := model.Task{UserIdentity: "42", Text: "Walk dog"}
	require.NoError(t, repo.Create(ctx, &first))
	require.NoError(t, repo.Create(ctx, &second))

	require.NoError(t, repo.Complete(ctx, second.ID, time.Now()))

	tasks, err := repo.ListByOwner(ctx, "42")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, model.TaskStatusPending, tasks[0].Status)
	assert.Equal(t, model.TaskStatusCompleted, tasks[1].Status)
	assert.False(t, tasks[1].UpdatedAt.Before(tasks[1].CreatedAt))
}

func TestTaskRepository_CompleteMissingID(t *testing.T) {
	repo := NewTaskRepository(newTestDB(t))

	err := repo.Complete(context.Background(), 99, time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTaskRepository_IdentifiersNeverReused(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	var ids []uint
	for _, text := range []string{"one", "two", "three"} {
		task := model.Task{UserIdentity: "42", Text: text}
		require.NoError(t, repo.Create(ctx, &task))
		ids = append(ids, task.ID)
	}
	require.NoError(t, repo.Complete(ctx, ids[1], time.Now()))

	var count int64
	require.NoError(t, db.Model(&model.Task{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}
}
