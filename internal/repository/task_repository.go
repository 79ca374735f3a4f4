package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"todo-bot/internal/model"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if task.Status == "" {
		task.Status = model.TaskStatusPending
	}
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// ListByOwner returns every task for the identity in insertion order.
func (r *TaskRepository) ListByOwner(ctx context.Context, identity string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_identity = ?", identity).
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Complete marks the task completed and refreshes its updated timestamp.
// Returns gorm.ErrRecordNotFound when no row matched the id, so callers can
// report a missing task instead of silently succeeding.
func (r *TaskRepository) Complete(ctx context.Context, taskID uint, completedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"status":     model.TaskStatusCompleted,
			"updated_at": completedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("complete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
