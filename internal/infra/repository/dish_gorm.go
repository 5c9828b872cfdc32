package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
	repo "github.com/paralyuzov/food-delivery-api/internal/repository"
)

type dishGormRepository struct {
	db *gorm.DB
}

func NewDishRepository(db *gorm.DB) repo.DishRepository {
	return &dishGormRepository{db: db}
}

func (r *dishGormRepository) FindByID(ctx context.Context, dishID string) (*model.Dish, error) {
	var d model.Dish
	err := r.db.WithContext(ctx).Where("id = ?", dishID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *dishGormRepository) ListByMenuID(ctx context.Context, menuID string) ([]model.Dish, error) {
	var items []model.Dish
	err := r.db.WithContext(ctx).
		Where("menu_id = ?", menuID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *dishGormRepository) ListAll(ctx context.Context) ([]repo.DishDetail, error) {
	return r.selectWithRestaurant(ctx, nil)
}

func (r *dishGormRepository) ListByCategory(ctx context.Context, category string) ([]model.Dish, error) {
	var items []model.Dish
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *dishGormRepository) ListPopular(ctx context.Context, limit int) ([]model.Dish, error) {
	var items []model.Dish
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

func (r *dishGormRepository) ListAvailableByIDs(ctx context.Context, dishIDs []string) ([]repo.DishDetail, error) {
	if len(dishIDs) == 0 {
		return []repo.DishDetail{}, nil
	}
	return r.selectWithRestaurant(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("dishes.id IN ? AND dishes.is_available = ?", dishIDs, true)
	})
}

// menu→restaurantをJOINして店情報込みで皿を引く
func (r *dishGormRepository) selectWithRestaurant(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]repo.DishDetail, error) {
	q := r.db.WithContext(ctx).Model(&model.Dish{}).
		Select("dishes.*, restaurants.id AS restaurant_id, restaurants.name AS restaurant_name").
		Joins("JOIN menus ON menus.id = dishes.menu_id").
		Joins("JOIN restaurants ON restaurants.id = menus.restaurant_id")
	if scope != nil {
		q = scope(q)
	}

	var rows []repo.DishDetail
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *dishGormRepository) Create(ctx context.Context, dish *model.Dish) error {
	return r.db.WithContext(ctx).Create(dish).Error
}

func (r *dishGormRepository) Update(ctx context.Context, dish *model.Dish) error {
	return r.db.WithContext(ctx).Save(dish).Error
}

func (r *dishGormRepository) Delete(ctx context.Context, dishID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", dishID).Delete(&model.Dish{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *dishGormRepository) UpdateAvgRating(ctx context.Context, dishID string, avg *float64) error {
	res := r.db.WithContext(ctx).Model(&model.Dish{}).
		Where("id = ?", dishID).
		Update("avg_rating", avg)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
