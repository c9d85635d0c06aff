package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/gizo333/react-server/internal/auth/domain UserRepository

import "context"

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUserID(ctx context.Context, userID string) (*User, error)
	Create(ctx context.Context, user *User) error
}
