package repository

import (
	"context"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
)

type AddressRepository interface {
	//ユーザー所有の1件。他人の住所はErrNotFound
	FindByUserAndID(ctx context.Context, userID string, addressID string) (*model.Address, error)
	ListByUserID(ctx context.Context, userID string) ([]model.Address, error)
	Create(ctx context.Context, address *model.Address) error
	Update(ctx context.Context, address *model.Address) error
}
