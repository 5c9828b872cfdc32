package repository

import (
	"context"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
)

// menu→restaurantを解決した状態の皿。checkoutで使う
type DishDetail struct {
	model.Dish
	RestaurantID   string
	RestaurantName string
}

type DishRepository interface {
	FindByID(ctx context.Context, dishID string) (*model.Dish, error)
	ListByMenuID(ctx context.Context, menuID string) ([]model.Dish, error)
	ListAll(ctx context.Context) ([]DishDetail, error)
	ListByCategory(ctx context.Context, category string) ([]model.Dish, error)
	ListPopular(ctx context.Context, limit int) ([]model.Dish, error)

	//提供中の皿だけ。見つからないIDは結果から抜ける
	ListAvailableByIDs(ctx context.Context, dishIDs []string) ([]DishDetail, error)

	Create(ctx context.Context, dish *model.Dish) error
	Update(ctx context.Context, dish *model.Dish) error
	Delete(ctx context.Context, dishID string) error

	UpdateAvgRating(ctx context.Context, dishID string, avg *float64) error
}
