package repository

import (
	"context"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
)

type RestaurantRepository interface {
	FindByID(ctx context.Context, restaurantID string) (*model.Restaurant, error)
	FindByName(ctx context.Context, name string) (*model.Restaurant, error)
	List(ctx context.Context) ([]model.Restaurant, error)

	//avg_ratingがある店を評価の高い順に
	ListPopular(ctx context.Context, limit int) ([]model.Restaurant, error)

	Create(ctx context.Context, restaurant *model.Restaurant) error
	Update(ctx context.Context, restaurant *model.Restaurant) error
	Delete(ctx context.Context, restaurantID string) error

	//nilで「評価なし」に戻す
	UpdateAvgRating(ctx context.Context, restaurantID string, avg *float64) error

	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}
