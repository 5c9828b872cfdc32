package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
	repo "github.com/paralyuzov/food-delivery-api/internal/repository"
)

type orderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) repo.OrderItemRepository {
	return &orderItemGormRepository{db: db}
}

func (r *orderItemGormRepository) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *orderItemGormRepository) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// 明細行数の多い皿から。売上は quantity × price の合計
func (r *orderItemGormRepository) TopDishes(ctx context.Context, limit int) ([]repo.TopDishRow, error) {
	var rows []repo.TopDishRow
	err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Select("order_items.dish_id AS dish_id, dishes.name AS name, restaurants.id AS restaurant_id, restaurants.name AS restaurant_name, COUNT(order_items.id) AS orders, COALESCE(SUM(order_items.quantity * order_items.price), 0) AS revenue").
		Joins("JOIN dishes ON dishes.id = order_items.dish_id").
		Joins("JOIN menus ON menus.id = dishes.menu_id").
		Joins("JOIN restaurants ON restaurants.id = menus.restaurant_id").
		Group("order_items.dish_id, dishes.name, restaurants.id, restaurants.name").
		Order("orders desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
