package repository

import (
	"context"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
)

type MenuRepository interface {
	FindByID(ctx context.Context, menuID string) (*model.Menu, error)
	ListByRestaurantID(ctx context.Context, restaurantID string) ([]model.Menu, error)
	Create(ctx context.Context, menu *model.Menu) error
	Update(ctx context.Context, menu *model.Menu) error
	Delete(ctx context.Context, menuID string) error
}
