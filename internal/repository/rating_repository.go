package repository

import (
	"context"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
)

type DishRatingRepository interface {
	FindByUserAndDish(ctx context.Context, userID string, dishID string) (*model.DishRating, error)
	Create(ctx context.Context, rating *model.DishRating) error
	Update(ctx context.Context, rating *model.DishRating) error

	//現在の全行の平均。行がなければcount=0
	Stats(ctx context.Context, dishID string) (avg float64, count int64, err error)
}

type RestaurantRatingRepository interface {
	FindByUserAndRestaurant(ctx context.Context, userID string, restaurantID string) (*model.RestaurantRating, error)
	Create(ctx context.Context, rating *model.RestaurantRating) error
	Update(ctx context.Context, rating *model.RestaurantRating) error
	Stats(ctx context.Context, restaurantID string) (avg float64, count int64, err error)
}
