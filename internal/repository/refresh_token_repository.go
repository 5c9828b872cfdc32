package repository

import (
	"context"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
)

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)

	//全端末ログアウト・ローテーション用
	DeleteByUserID(ctx context.Context, userID string) error
}
