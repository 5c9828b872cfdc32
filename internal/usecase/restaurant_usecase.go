package usecase

import (
	"context"
	"net/http"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
	repo "github.com/paralyuzov/food-delivery-api/internal/repository"
)

const popularLimit = 10

type RestaurantUsecase struct {
	restaurants repo.RestaurantRepository
	ratings     repo.RestaurantRatingRepository
	idGen       IDGenerator
	clock       Clock
}

func NewRestaurantUsecase(
	restaurants repo.RestaurantRepository,
	ratings repo.RestaurantRatingRepository,
	idGen IDGenerator,
	clock Clock,
) *RestaurantUsecase {
	return &RestaurantUsecase{restaurants: restaurants, ratings: ratings, idGen: idGen, clock: clock}
}

type RestaurantInput struct {
	Name        string
	Description string
	Address     string
	Phone       string
	Email       string
	ImageURL    string
}

func (u *RestaurantUsecase) List(ctx context.Context) ([]model.Restaurant, error) {
	restaurants, err := u.restaurants.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return restaurants, nil
}

func (u *RestaurantUsecase) ListPopular(ctx context.Context) ([]model.Restaurant, error) {
	restaurants, err := u.restaurants.ListPopular(ctx, popularLimit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return restaurants, nil
}

func (u *RestaurantUsecase) GetByID(ctx context.Context, restaurantID string) (model.Restaurant, error) {
	restaurant, err := u.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		if err == repo.ErrNotFound {
			return model.Restaurant{}, NewHTTPError(http.StatusNotFound, "restaurant not found")
		}
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return *restaurant, nil
}

func (u *RestaurantUsecase) Create(ctx context.Context, managerID string, in RestaurantInput) (model.Restaurant, error) {
	if in.Name == "" || in.Address == "" {
		return model.Restaurant{}, NewHTTPError(http.StatusBadRequest, "name and address are required")
	}

	//店名はグローバルに一意
	if _, err := u.restaurants.FindByName(ctx, in.Name); err == nil {
		return model.Restaurant{}, NewHTTPError(http.StatusConflict, "restaurant name already exists")
	} else if err != repo.ErrNotFound {
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := u.clock.Now()
	restaurant := model.Restaurant{
		ID:          u.idGen.NewID(),
		ManagerID:   managerID,
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		Phone:       in.Phone,
		Email:       in.Email,
		ImageURL:    in.ImageURL,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.restaurants.Create(ctx, &restaurant); err != nil {
		if err == repo.ErrDuplicate {
			return model.Restaurant{}, NewHTTPError(http.StatusConflict, "restaurant name already exists")
		}
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return restaurant, nil
}

type UpdateRestaurantInput struct {
	Name        *string
	Description *string
	Address     *string
	Phone       *string
	Email       *string
	ImageURL    *string
	IsActive    *bool
}

func (u *RestaurantUsecase) Update(ctx context.Context, restaurantID string, in UpdateRestaurantInput) (model.Restaurant, error) {
	restaurant, err := u.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		if err == repo.ErrNotFound {
			return model.Restaurant{}, NewHTTPError(http.StatusNotFound, "restaurant not found")
		}
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Name != nil && *in.Name != restaurant.Name {
		if _, err := u.restaurants.FindByName(ctx, *in.Name); err == nil {
			return model.Restaurant{}, NewHTTPError(http.StatusConflict, "restaurant name already exists")
		} else if err != repo.ErrNotFound {
			return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		restaurant.Name = *in.Name
	}
	if in.Description != nil {
		restaurant.Description = *in.Description
	}
	if in.Address != nil {
		restaurant.Address = *in.Address
	}
	if in.Phone != nil {
		restaurant.Phone = *in.Phone
	}
	if in.Email != nil {
		restaurant.Email = *in.Email
	}
	if in.ImageURL != nil {
		restaurant.ImageURL = *in.ImageURL
	}
	if in.IsActive != nil {
		restaurant.IsActive = *in.IsActive
	}
	restaurant.UpdatedAt = u.clock.Now()

	if err := u.restaurants.Update(ctx, restaurant); err != nil {
		if err == repo.ErrDuplicate {
			return model.Restaurant{}, NewHTTPError(http.StatusConflict, "restaurant name already exists")
		}
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return *restaurant, nil
}

func (u *RestaurantUsecase) Delete(ctx context.Context, restaurantID string) error {
	if _, err := u.restaurants.FindByID(ctx, restaurantID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "restaurant not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.restaurants.Delete(ctx, restaurantID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// Rateは同一ユーザーの再評価を上書きし、平均を再計算する
func (u *RestaurantUsecase) Rate(ctx context.Context, userID string, restaurantID string, rating int) (model.Restaurant, error) {
	if rating < 1 || rating > 5 {
		return model.Restaurant{}, NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	restaurant, err := u.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		if err == repo.ErrNotFound {
			return model.Restaurant{}, NewHTTPError(http.StatusNotFound, "restaurant not found")
		}
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := u.clock.Now()
	existing, err := u.ratings.FindByUserAndRestaurant(ctx, userID, restaurantID)
	switch err {
	case nil:
		existing.Rating = rating
		existing.UpdatedAt = now
		if err := u.ratings.Update(ctx, existing); err != nil {
			return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	case repo.ErrNotFound:
		record := model.RestaurantRating{
			ID:           u.idGen.NewID(),
			RestaurantID: restaurantID,
			UserID:       userID,
			Rating:       rating,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := u.ratings.Create(ctx, &record); err != nil {
			return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	default:
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	avg, count, err := u.ratings.Stats(ctx, restaurantID)
	if err != nil {
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var avgPtr *float64
	if count > 0 {
		avgPtr = &avg
	}
	if err := u.restaurants.UpdateAvgRating(ctx, restaurantID, avgPtr); err != nil {
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	restaurant.AvgRating = avgPtr
	return *restaurant, nil
}
