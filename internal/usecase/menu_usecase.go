package usecase

import (
	"context"
	"net/http"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
	repo "github.com/paralyuzov/food-delivery-api/internal/repository"
)

type MenuUsecase struct {
	menus       repo.MenuRepository
	restaurants repo.RestaurantRepository
	idGen       IDGenerator
	clock       Clock
}

func NewMenuUsecase(menus repo.MenuRepository, restaurants repo.RestaurantRepository, idGen IDGenerator, clock Clock) *MenuUsecase {
	return &MenuUsecase{menus: menus, restaurants: restaurants, idGen: idGen, clock: clock}
}

type MenuInput struct {
	Name        string
	Description string
}

func (u *MenuUsecase) ListByRestaurant(ctx context.Context, restaurantID string) ([]model.Menu, error) {
	if _, err := u.restaurants.FindByID(ctx, restaurantID); err != nil {
		if err == repo.ErrNotFound {
			return nil, NewHTTPError(http.StatusNotFound, "restaurant not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	menus, err := u.menus.ListByRestaurantID(ctx, restaurantID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return menus, nil
}

func (u *MenuUsecase) GetByID(ctx context.Context, menuID string) (model.Menu, error) {
	menu, err := u.menus.FindByID(ctx, menuID)
	if err != nil {
		if err == repo.ErrNotFound {
			return model.Menu{}, NewHTTPError(http.StatusNotFound, "menu not found")
		}
		return model.Menu{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return *menu, nil
}

func (u *MenuUsecase) Create(ctx context.Context, restaurantID string, in MenuInput) (model.Menu, error) {
	if in.Name == "" {
		return model.Menu{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	restaurant, err := u.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		if err == repo.ErrNotFound {
			return model.Menu{}, NewHTTPError(http.StatusNotFound, "restaurant not found")
		}
		return model.Menu{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !restaurant.IsActive {
		return model.Menu{}, NewHTTPError(http.StatusBadRequest, "restaurant is not active")
	}

	now := u.clock.Now()
	menu := model.Menu{
		ID:           u.idGen.NewID(),
		RestaurantID: restaurantID,
		Name:         in.Name,
		Description:  in.Description,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.menus.Create(ctx, &menu); err != nil {
		return model.Menu{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return menu, nil
}

type UpdateMenuInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

func (u *MenuUsecase) Update(ctx context.Context, menuID string, in UpdateMenuInput) (model.Menu, error) {
	menu, err := u.menus.FindByID(ctx, menuID)
	if err != nil {
		if err == repo.ErrNotFound {
			return model.Menu{}, NewHTTPError(http.StatusNotFound, "menu not found")
		}
		return model.Menu{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Name != nil {
		menu.Name = *in.Name
	}
	if in.Description != nil {
		menu.Description = *in.Description
	}
	if in.IsActive != nil {
		menu.IsActive = *in.IsActive
	}
	menu.UpdatedAt = u.clock.Now()

	if err := u.menus.Update(ctx, menu); err != nil {
		return model.Menu{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return *menu, nil
}

func (u *MenuUsecase) Delete(ctx context.Context, menuID string) error {
	if _, err := u.menus.FindByID(ctx, menuID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "menu not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.menus.Delete(ctx, menuID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
