package usecase

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
	repo "github.com/paralyuzov/food-delivery-api/internal/repository"
)

type DishUsecase struct {
	dishes  repo.DishRepository
	menus   repo.MenuRepository
	ratings repo.DishRatingRepository
	idGen   IDGenerator
	clock   Clock
}

func NewDishUsecase(dishes repo.DishRepository, menus repo.MenuRepository, ratings repo.DishRatingRepository, idGen IDGenerator, clock Clock) *DishUsecase {
	return &DishUsecase{dishes: dishes, menus: menus, ratings: ratings, idGen: idGen, clock: clock}
}

type DishInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    string
}

func (u *DishUsecase) ListAll(ctx context.Context) ([]repo.DishDetail, error) {
	dishes, err := u.dishes.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return dishes, nil
}

func (u *DishUsecase) ListByMenu(ctx context.Context, menuID string) ([]model.Dish, error) {
	if _, err := u.menus.FindByID(ctx, menuID); err != nil {
		if err == repo.ErrNotFound {
			return nil, NewHTTPError(http.StatusNotFound, "menu not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dishes, err := u.dishes.ListByMenuID(ctx, menuID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return dishes, nil
}

func (u *DishUsecase) ListByCategory(ctx context.Context, category string) ([]model.Dish, error) {
	if category == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "category is required")
	}

	dishes, err := u.dishes.ListByCategory(ctx, category)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return dishes, nil
}

func (u *DishUsecase) ListPopular(ctx context.Context) ([]model.Dish, error) {
	dishes, err := u.dishes.ListPopular(ctx, popularLimit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return dishes, nil
}

func (u *DishUsecase) GetByID(ctx context.Context, dishID string) (model.Dish, error) {
	dish, err := u.dishes.FindByID(ctx, dishID)
	if err != nil {
		if err == repo.ErrNotFound {
			return model.Dish{}, NewHTTPError(http.StatusNotFound, "dish not found")
		}
		return model.Dish{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return *dish, nil
}

func (u *DishUsecase) Create(ctx context.Context, menuID string, in DishInput) (model.Dish, error) {
	if in.Name == "" {
		return model.Dish{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price.LessThanOrEqual(decimal.Zero) {
		return model.Dish{}, NewHTTPError(http.StatusBadRequest, "price must be positive")
	}

	menu, err := u.menus.FindByID(ctx, menuID)
	if err != nil {
		if err == repo.ErrNotFound {
			return model.Dish{}, NewHTTPError(http.StatusNotFound, "menu not found")
		}
		return model.Dish{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !menu.IsActive {
		return model.Dish{}, NewHTTPError(http.StatusBadRequest, "menu is not active")
	}

	now := u.clock.Now()
	dish := model.Dish{
		ID:          u.idGen.NewID(),
		MenuID:      menuID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.dishes.Create(ctx, &dish); err != nil {
		return model.Dish{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return dish, nil
}

type UpdateDishInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	ImageURL    *string
	Category    *string
	IsAvailable *bool
}

func (u *DishUsecase) Update(ctx context.Context, dishID string, in UpdateDishInput) (model.Dish, error) {
	dish, err := u.dishes.FindByID(ctx, dishID)
	if err != nil {
		if err == repo.ErrNotFound {
			return model.Dish{}, NewHTTPError(http.StatusNotFound, "dish not found")
		}
		return model.Dish{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Name != nil {
		dish.Name = *in.Name
	}
	if in.Description != nil {
		dish.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.LessThanOrEqual(decimal.Zero) {
			return model.Dish{}, NewHTTPError(http.StatusBadRequest, "price must be positive")
		}
		dish.Price = *in.Price
	}
	if in.ImageURL != nil {
		dish.ImageURL = *in.ImageURL
	}
	if in.Category != nil {
		dish.Category = *in.Category
	}
	if in.IsAvailable != nil {
		dish.IsAvailable = *in.IsAvailable
	}
	dish.UpdatedAt = u.clock.Now()

	if err := u.dishes.Update(ctx, dish); err != nil {
		return model.Dish{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return *dish, nil
}

func (u *DishUsecase) Delete(ctx context.Context, dishID string) error {
	if _, err := u.dishes.FindByID(ctx, dishID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "dish not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.dishes.Delete(ctx, dishID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// Rateは同一ユーザーの再評価を上書きし、平均を再計算する
func (u *DishUsecase) Rate(ctx context.Context, userID string, dishID string, rating int) (model.Dish, error) {
	if rating < 1 || rating > 5 {
		return model.Dish{}, NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	dish, err := u.dishes.FindByID(ctx, dishID)
	if err != nil {
		if err == repo.ErrNotFound {
			return model.Dish{}, NewHTTPError(http.StatusNotFound, "dish not found")
		}
		return model.Dish{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := u.clock.Now()
	existing, err := u.ratings.FindByUserAndDish(ctx, userID, dishID)
	switch err {
	case nil:
		existing.Rating = rating
		existing.UpdatedAt = now
		if err := u.ratings.Update(ctx, existing); err != nil {
			return model.Dish{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	case repo.ErrNotFound:
		record := model.DishRating{
			ID:        u.idGen.NewID(),
			DishID:    dishID,
			UserID:    userID,
			Rating:    rating,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := u.ratings.Create(ctx, &record); err != nil {
			return model.Dish{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	default:
		return model.Dish{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	avg, count, err := u.ratings.Stats(ctx, dishID)
	if err != nil {
		return model.Dish{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var avgPtr *float64
	if count > 0 {
		avgPtr = &avg
	}
	if err := u.dishes.UpdateAvgRating(ctx, dishID, avgPtr); err != nil {
		return model.Dish{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dish.AvgRating = avgPtr
	return *dish, nil
}
