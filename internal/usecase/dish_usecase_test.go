package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
	repo "github.com/paralyuzov/food-delivery-api/internal/repository"
)

type MenuRepoMock struct{ mock.Mock }

func (m *MenuRepoMock) FindByID(ctx context.Context, menuID string) (*model.Menu, error) {
	args := m.Called(ctx, menuID)
	menu, _ := args.Get(0).(*model.Menu)
	return menu, args.Error(1)
}

func (m *MenuRepoMock) ListByRestaurantID(ctx context.Context, restaurantID string) ([]model.Menu, error) {
	args := m.Called(ctx, restaurantID)
	menus, _ := args.Get(0).([]model.Menu)
	return menus, args.Error(1)
}

func (m *MenuRepoMock) Create(ctx context.Context, menu *model.Menu) error {
	args := m.Called(ctx, menu)
	return args.Error(0)
}

func (m *MenuRepoMock) Update(ctx context.Context, menu *model.Menu) error {
	args := m.Called(ctx, menu)
	return args.Error(0)
}

func (m *MenuRepoMock) Delete(ctx context.Context, menuID string) error {
	args := m.Called(ctx, menuID)
	return args.Error(0)
}

type DishRatingRepoMock struct{ mock.Mock }

func (m *DishRatingRepoMock) FindByUserAndDish(ctx context.Context, userID string, dishID string) (*model.DishRating, error) {
	args := m.Called(ctx, userID, dishID)
	r, _ := args.Get(0).(*model.DishRating)
	return r, args.Error(1)
}

func (m *DishRatingRepoMock) Create(ctx context.Context, rating *model.DishRating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *DishRatingRepoMock) Update(ctx context.Context, rating *model.DishRating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *DishRatingRepoMock) Stats(ctx context.Context, dishID string) (float64, int64, error) {
	args := m.Called(ctx, dishID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func newDishUsecaseForTest(dishes *DishRepoMock, menus *MenuRepoMock, ratings *DishRatingRepoMock) *DishUsecase {
	return NewDishUsecase(dishes, menus, ratings, &seqIDGen{prefix: "id"}, &fixedClock{t: testNow})
}

func TestDishUsecase_Create_InactiveMenu(t *testing.T) {
	menus := new(MenuRepoMock)
	menus.On("FindByID", mock.Anything, "menu-1").
		Return(&model.Menu{ID: "menu-1", IsActive: false}, nil)

	uc := newDishUsecaseForTest(new(DishRepoMock), menus, new(DishRatingRepoMock))

	_, err := uc.Create(context.Background(), "menu-1", DishInput{
		Name:  "Pasta",
		Price: decimal.RequireFromString("10.00"),
	})
	assertHTTPError(t, err, http.StatusBadRequest, "not active")
}

func TestDishUsecase_Create_NonPositivePrice(t *testing.T) {
	uc := newDishUsecaseForTest(new(DishRepoMock), new(MenuRepoMock), new(DishRatingRepoMock))

	_, err := uc.Create(context.Background(), "menu-1", DishInput{
		Name:  "Pasta",
		Price: decimal.Zero,
	})
	assertHTTPError(t, err, http.StatusBadRequest, "price must be positive")
}

func TestDishUsecase_Rate_OutOfRange(t *testing.T) {
	uc := newDishUsecaseForTest(new(DishRepoMock), new(MenuRepoMock), new(DishRatingRepoMock))

	_, err := uc.Rate(context.Background(), "user-1", "dish-1", 6)
	assertHTTPError(t, err, http.StatusBadRequest, "between 1 and 5")
}

func TestDishUsecase_Rate_FirstRating_RecomputesAvg(t *testing.T) {
	dishes := new(DishRepoMock)
	dishes.On("FindByID", mock.Anything, "dish-1").Return(&model.Dish{ID: "dish-1"}, nil)

	ratings := new(DishRatingRepoMock)
	ratings.On("FindByUserAndDish", mock.Anything, "user-2", "dish-1").Return(nil, repo.ErrNotFound)
	ratings.On("Create", mock.Anything, mock.Anything).Return(nil)
	// 既存の4と新しい5で平均4.5
	ratings.On("Stats", mock.Anything, "dish-1").Return(4.5, int64(2), nil)

	var savedAvg *float64
	dishes.On("UpdateAvgRating", mock.Anything, "dish-1", mock.Anything).
		Run(func(args mock.Arguments) {
			savedAvg, _ = args.Get(2).(*float64)
		}).
		Return(nil)

	uc := newDishUsecaseForTest(dishes, new(MenuRepoMock), ratings)

	out, err := uc.Rate(context.Background(), "user-2", "dish-1", 5)
	assert.NoError(t, err)
	if assert.NotNil(t, savedAvg) {
		assert.Equal(t, 4.5, *savedAvg)
	}
	if assert.NotNil(t, out.AvgRating) {
		assert.Equal(t, 4.5, *out.AvgRating)
	}
	ratings.AssertExpectations(t)
}

func TestDishUsecase_Rate_Again_UpdatesExistingRow(t *testing.T) {
	dishes := new(DishRepoMock)
	dishes.On("FindByID", mock.Anything, "dish-1").Return(&model.Dish{ID: "dish-1"}, nil)

	existing := &model.DishRating{ID: "rating-1", DishID: "dish-1", UserID: "user-1", Rating: 4}

	ratings := new(DishRatingRepoMock)
	ratings.On("FindByUserAndDish", mock.Anything, "user-1", "dish-1").Return(existing, nil)
	ratings.On("Update", mock.Anything, existing).Return(nil)
	// 4→2に下げると [2,5] で平均3.5
	ratings.On("Stats", mock.Anything, "dish-1").Return(3.5, int64(2), nil)
	dishes.On("UpdateAvgRating", mock.Anything, "dish-1", mock.Anything).Return(nil)

	uc := newDishUsecaseForTest(dishes, new(MenuRepoMock), ratings)

	_, err := uc.Rate(context.Background(), "user-1", "dish-1", 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, existing.Rating)

	ratings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
