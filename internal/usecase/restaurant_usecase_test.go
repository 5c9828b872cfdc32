package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
	repo "github.com/paralyuzov/food-delivery-api/internal/repository"
)

type RestaurantRatingRepoMock struct{ mock.Mock }

func (m *RestaurantRatingRepoMock) FindByUserAndRestaurant(ctx context.Context, userID string, restaurantID string) (*model.RestaurantRating, error) {
	args := m.Called(ctx, userID, restaurantID)
	r, _ := args.Get(0).(*model.RestaurantRating)
	return r, args.Error(1)
}

func (m *RestaurantRatingRepoMock) Create(ctx context.Context, rating *model.RestaurantRating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *RestaurantRatingRepoMock) Update(ctx context.Context, rating *model.RestaurantRating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *RestaurantRatingRepoMock) Stats(ctx context.Context, restaurantID string) (float64, int64, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func newRestaurantUsecaseForTest(restaurants *RestaurantRepoMock, ratings *RestaurantRatingRepoMock) *RestaurantUsecase {
	return NewRestaurantUsecase(restaurants, ratings, &seqIDGen{prefix: "id"}, &fixedClock{t: testNow})
}

func TestRestaurantUsecase_Create_DuplicateName(t *testing.T) {
	restaurants := new(RestaurantRepoMock)
	restaurants.On("FindByName", mock.Anything, "Trattoria").
		Return(&model.Restaurant{ID: "rest-1", Name: "Trattoria"}, nil)

	uc := newRestaurantUsecaseForTest(restaurants, new(RestaurantRatingRepoMock))

	_, err := uc.Create(context.Background(), "admin-1", RestaurantInput{
		Name:    "Trattoria",
		Address: "1 Main St",
	})
	assertHTTPError(t, err, http.StatusConflict, "already exists")

	restaurants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRestaurantUsecase_Create_Success(t *testing.T) {
	restaurants := new(RestaurantRepoMock)
	restaurants.On("FindByName", mock.Anything, "Trattoria").Return(nil, repo.ErrNotFound)

	var created *model.Restaurant
	restaurants.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.Restaurant)
		}).
		Return(nil)

	uc := newRestaurantUsecaseForTest(restaurants, new(RestaurantRatingRepoMock))

	out, err := uc.Create(context.Background(), "admin-1", RestaurantInput{
		Name:    "Trattoria",
		Address: "1 Main St",
	})
	assert.NoError(t, err)
	assert.True(t, out.IsActive)
	if assert.NotNil(t, created) {
		assert.Equal(t, "admin-1", created.ManagerID)
		assert.Nil(t, created.AvgRating)
	}
}

func TestRestaurantUsecase_Rate_NotFound(t *testing.T) {
	restaurants := new(RestaurantRepoMock)
	restaurants.On("FindByID", mock.Anything, "ghost").Return(nil, repo.ErrNotFound)

	uc := newRestaurantUsecaseForTest(restaurants, new(RestaurantRatingRepoMock))

	_, err := uc.Rate(context.Background(), "user-1", "ghost", 4)
	assertHTTPError(t, err, http.StatusNotFound, "restaurant not found")
}

func TestRestaurantUsecase_Rate_UpsertAndRecompute(t *testing.T) {
	restaurants := new(RestaurantRepoMock)
	restaurants.On("FindByID", mock.Anything, "rest-1").
		Return(&model.Restaurant{ID: "rest-1", Name: "Trattoria"}, nil)

	ratings := new(RestaurantRatingRepoMock)
	ratings.On("FindByUserAndRestaurant", mock.Anything, "user-1", "rest-1").Return(nil, repo.ErrNotFound)
	ratings.On("Create", mock.Anything, mock.Anything).Return(nil)
	ratings.On("Stats", mock.Anything, "rest-1").Return(4.0, int64(1), nil)

	var savedAvg *float64
	restaurants.On("UpdateAvgRating", mock.Anything, "rest-1", mock.Anything).
		Run(func(args mock.Arguments) {
			savedAvg, _ = args.Get(2).(*float64)
		}).
		Return(nil)

	uc := newRestaurantUsecaseForTest(restaurants, ratings)

	out, err := uc.Rate(context.Background(), "user-1", "rest-1", 4)
	assert.NoError(t, err)
	if assert.NotNil(t, savedAvg) {
		assert.Equal(t, 4.0, *savedAvg)
	}
	if assert.NotNil(t, out.AvgRating) {
		assert.Equal(t, 4.0, *out.AvgRating)
	}
}
