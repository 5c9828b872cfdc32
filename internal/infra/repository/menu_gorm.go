package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
	repo "github.com/paralyuzov/food-delivery-api/internal/repository"
)

type menuGormRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) repo.MenuRepository {
	return &menuGormRepository{db: db}
}

func (r *menuGormRepository) FindByID(ctx context.Context, menuID string) (*model.Menu, error) {
	var m model.Menu
	err := r.db.WithContext(ctx).Where("id = ?", menuID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *menuGormRepository) ListByRestaurantID(ctx context.Context, restaurantID string) ([]model.Menu, error) {
	var items []model.Menu
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuGormRepository) Create(ctx context.Context, menu *model.Menu) error {
	return r.db.WithContext(ctx).Create(menu).Error
}

func (r *menuGormRepository) Update(ctx context.Context, menu *model.Menu) error {
	return r.db.WithContext(ctx).Save(menu).Error
}

func (r *menuGormRepository) Delete(ctx context.Context, menuID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", menuID).Delete(&model.Menu{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
