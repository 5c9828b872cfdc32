package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
)

// 注文明細数でグループ集計した人気皿
type TopDishRow struct {
	DishID         string
	Name           string
	RestaurantID   string
	RestaurantName string
	Orders         int64
	Revenue        decimal.Decimal
}

type OrderItemRepository interface {
	//親注文と同一トランザクションで書く
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
	TopDishes(ctx context.Context, limit int) ([]TopDishRow, error)
}
