package model

import "time"

// User stores the profile captured during registration. Identity is the
// Telegram user id rendered as a string and is stable across interactions.
type User struct {
	Identity     string `gorm:"primaryKey"`
	Name         string
	Username     string
	RegisteredOn time.Time
}
