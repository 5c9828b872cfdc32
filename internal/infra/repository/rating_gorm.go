package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
	repo "github.com/paralyuzov/food-delivery-api/internal/repository"
)

type dishRatingGormRepository struct {
	db *gorm.DB
}

func NewDishRatingRepository(db *gorm.DB) repo.DishRatingRepository {
	return &dishRatingGormRepository{db: db}
}

func (r *dishRatingGormRepository) FindByUserAndDish(ctx context.Context, userID string, dishID string) (*model.DishRating, error) {
	var dr model.DishRating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND dish_id = ?", userID, dishID).
		First(&dr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dr, nil
}

func (r *dishRatingGormRepository) Create(ctx context.Context, rating *model.DishRating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *dishRatingGormRepository) Update(ctx context.Context, rating *model.DishRating) error {
	return r.db.WithContext(ctx).Save(rating).Error
}

func (r *dishRatingGormRepository) Stats(ctx context.Context, dishID string) (float64, int64, error) {
	return ratingStats(ctx, r.db, &model.DishRating{}, "dish_id", dishID)
}

type restaurantRatingGormRepository struct {
	db *gorm.DB
}

func NewRestaurantRatingRepository(db *gorm.DB) repo.RestaurantRatingRepository {
	return &restaurantRatingGormRepository{db: db}
}

func (r *restaurantRatingGormRepository) FindByUserAndRestaurant(ctx context.Context, userID string, restaurantID string) (*model.RestaurantRating, error) {
	var rr model.RestaurantRating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		First(&rr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rr, nil
}

func (r *restaurantRatingGormRepository) Create(ctx context.Context, rating *model.RestaurantRating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *restaurantRatingGormRepository) Update(ctx context.Context, rating *model.RestaurantRating) error {
	return r.db.WithContext(ctx).Save(rating).Error
}

func (r *restaurantRatingGormRepository) Stats(ctx context.Context, restaurantID string) (float64, int64, error) {
	return ratingStats(ctx, r.db, &model.RestaurantRating{}, "restaurant_id", restaurantID)
}

// AVG/COUNTを1クエリで取る。行がなければavg=0, count=0
func ratingStats(ctx context.Context, db *gorm.DB, entity interface{}, column string, id string) (float64, int64, error) {
	var row struct {
		Avg   *float64
		Count int64
	}
	err := db.WithContext(ctx).Model(entity).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Where(column+" = ?", id).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	if row.Avg == nil {
		return 0, row.Count, nil
	}
	return *row.Avg, row.Count, nil
}
