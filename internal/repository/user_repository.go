package repository

import (
	"context"
	"time"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, userID string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	//期限内のトークンだけを対象にする
	FindByVerificationToken(ctx context.Context, token string, now time.Time) (*model.User, error)
	FindByResetToken(ctx context.Context, token string, now time.Time) (*model.User, error)

	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, userID string) error

	List(ctx context.Context) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}
