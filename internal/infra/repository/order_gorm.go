package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
	repo "github.com/paralyuzov/food-delivery-api/internal/repository"
)

type orderGormRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repo.OrderRepository {
	return &orderGormRepository{db: db}
}

func (r *orderGormRepository) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderGormRepository) Create(ctx context.Context, order *model.Order) error {
	err := r.db.WithContext(ctx).Create(order).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		//stripe_session_idの一意制約。同時確定の競合
		return repo.ErrDuplicate
	}
	return err
}

func (r *orderGormRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *orderGormRepository) FindBySessionID(ctx context.Context, sessionID string) (*model.Order, bool, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Where("stripe_session_id = ?", sessionID).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &o, true, nil
}

func (r *orderGormRepository) ListByCustomer(ctx context.Context, customerID string) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderGormRepository) ListByStatus(ctx context.Context, status string) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var items []model.Order
	if err := q.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderGormRepository) ListRecent(ctx context.Context, limit int) ([]repo.RecentOrderRow, error) {
	var rows []repo.RecentOrderRow
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("orders.*, users.first_name AS customer_first_name, users.last_name AS customer_last_name, restaurants.name AS restaurant_name").
		Joins("JOIN users ON users.id = orders.customer_id").
		Joins("JOIN restaurants ON restaurants.id = orders.restaurant_id").
		Order("orders.created_at desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *orderGormRepository) RevenueBetween(ctx context.Context, from time.Time, to time.Time) (int64, decimal.Decimal, error) {
	var row struct {
		Count   int64
		Revenue decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS revenue").
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&row).Error
	if err != nil {
		return 0, decimal.Zero, err
	}
	return row.Count, row.Revenue, nil
}
