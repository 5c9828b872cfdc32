package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
	repo "github.com/paralyuzov/food-delivery-api/internal/repository"
)

type restaurantGormRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) repo.RestaurantRepository {
	return &restaurantGormRepository{db: db}
}

func (r *restaurantGormRepository) FindByID(ctx context.Context, restaurantID string) (*model.Restaurant, error) {
	var rest model.Restaurant
	err := r.db.WithContext(ctx).Where("id = ?", restaurantID).First(&rest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *restaurantGormRepository) FindByName(ctx context.Context, name string) (*model.Restaurant, error) {
	var rest model.Restaurant
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&rest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *restaurantGormRepository) List(ctx context.Context) ([]model.Restaurant, error) {
	var items []model.Restaurant
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *restaurantGormRepository) ListPopular(ctx context.Context, limit int) ([]model.Restaurant, error) {
	var items []model.Restaurant
	err := r.db.WithContext(ctx).
		Where("avg_rating IS NOT NULL").
		Order("avg_rating desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *restaurantGormRepository) Create(ctx context.Context, restaurant *model.Restaurant) error {
	err := r.db.WithContext(ctx).Create(restaurant).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repo.ErrDuplicate
	}
	return err
}

func (r *restaurantGormRepository) Update(ctx context.Context, restaurant *model.Restaurant) error {
	return r.db.WithContext(ctx).Save(restaurant).Error
}

func (r *restaurantGormRepository) Delete(ctx context.Context, restaurantID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", restaurantID).Delete(&model.Restaurant{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *restaurantGormRepository) UpdateAvgRating(ctx context.Context, restaurantID string, avg *float64) error {
	res := r.db.WithContext(ctx).Model(&model.Restaurant{}).
		Where("id = ?", restaurantID).
		Update("avg_rating", avg)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *restaurantGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Restaurant{}).Count(&n).Error
	return n, err
}

func (r *restaurantGormRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Restaurant{}).
		Where("is_active = ?", true).
		Count(&n).Error
	return n, err
}
