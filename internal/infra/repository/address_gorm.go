package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
	repo "github.com/paralyuzov/food-delivery-api/internal/repository"
)

type addressGormRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) repo.AddressRepository {
	return &addressGormRepository{db: db}
}

// 所有チェック込みの検索。他人の住所は存在しない扱い
func (r *addressGormRepository) FindByUserAndID(ctx context.Context, userID string, addressID string) (*model.Address, error) {
	var a model.Address
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *addressGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.Address, error) {
	var items []model.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *addressGormRepository) Create(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *addressGormRepository) Update(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Save(address).Error
}
