package repository

import (
	"context"

	"github.com/oksasatya/newsboard/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create inserts u and fills ID and CreatedAt. Returns ErrUsernameTaken
	// when the username already exists.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// Delete removes the user and every article they own.
	Delete(ctx context.Context, id int64) error
}
