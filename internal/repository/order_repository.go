package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
)

// ダッシュボードの最近の注文行（顧客名・店名をJOIN済み）
type RecentOrderRow struct {
	model.Order
	CustomerFirstName string
	CustomerLastName  string
	RestaurantName    string
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	Create(ctx context.Context, order *model.Order) error
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error

	//同じ決済セッションなら既存注文を返す
	FindBySessionID(ctx context.Context, sessionID string) (*model.Order, bool, error)

	ListByCustomer(ctx context.Context, customerID string) ([]model.Order, error)
	ListByStatus(ctx context.Context, status string) ([]model.Order, error)
	ListRecent(ctx context.Context, limit int) ([]RecentOrderRow, error)

	//期間内の注文数と売上合計
	RevenueBetween(ctx context.Context, from time.Time, to time.Time) (count int64, revenue decimal.Decimal, err error)
}
