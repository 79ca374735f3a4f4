package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"todo-bot/internal/model"
	"todo-bot/internal/repository"
)

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

func (s *TaskService) Add(ctx context.Context, identity, text string) (*model.Task, error) {
	task := model.Task{
		UserIdentity: identity,
		Text:         text,
		Status:       model.TaskStatusPending,
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) List(ctx context.Context, identity string) ([]model.Task, error) {
	return s.taskRepo.ListByOwner(ctx, identity)
}

// CompleteByNumber resolves a 1-based position in the user's listing order to
// the underlying task id and marks that task completed.
func (s *TaskService) CompleteByNumber(ctx context.Context, identity, raw string) (*model.Task, error) {
	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || number < 1 {
		return nil, ErrInvalidTaskNumber
	}

	tasks, err := s.taskRepo.ListByOwner(ctx, identity)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}
	if number > len(tasks) {
		return nil, ErrTaskNotFound
	}

	task := tasks[number-1]
	now := time.Now()
	if err := s.taskRepo.Complete(ctx, task.ID, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	task.Status = model.TaskStatusCompleted
	task.UpdatedAt = now
	return &task, nil
}
