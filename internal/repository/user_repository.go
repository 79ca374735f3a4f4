package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"todo-bot/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByIdentity returns the profile for an identity, or nil when nobody is
// registered under it. A miss is not an error.
func (r *UserRepository) FindByIdentity(ctx context.Context, identity string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("identity = ?", identity).First(&user).Error
	switch {
	case err == nil:
		return &user, nil
	case err == gorm.ErrRecordNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

// Register stores the profile, fully replacing any existing row for the
// identity and stamping the registration time.
func (r *UserRepository) Register(ctx context.Context, identity, name, username string) (*model.User, error) {
	user := model.User{
		Identity:     identity,
		Name:         name,
		Username:     username,
		RegisteredOn: time.Now(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&user).Error
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	return &user, nil
}
