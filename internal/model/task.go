package model

import "time"

// Task statuses. A task only ever moves pending -> completed.
const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// Task represents a single to-do item owned by one user.
type Task struct {
	ID           uint   `gorm:"primaryKey"`
	UserIdentity string `gorm:"index"`
	Text         string
	Status       string `gorm:"default:pending"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
