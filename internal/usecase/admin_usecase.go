package usecase

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	repo "github.com/paralyuzov/food-delivery-api/internal/repository"
)

const (
	topDishLimit     = 10
	recentOrderLimit = 10
	trendDays        = 7
)

type AdminUsecase struct {
	users       repo.UserRepository
	restaurants repo.RestaurantRepository
	orders      repo.OrderRepository
	orderItems  repo.OrderItemRepository
	clock       Clock
}

func NewAdminUsecase(
	users repo.UserRepository,
	restaurants repo.RestaurantRepository,
	orders repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	clock Clock,
) *AdminUsecase {
	return &AdminUsecase{users: users, restaurants: restaurants, orders: orders, orderItems: orderItems, clock: clock}
}

type RevenuePoint struct {
	Date    string `json:"date"`
	Orders  int64  `json:"orders"`
	Revenue string `json:"revenue"`
}

type TopDish struct {
	DishID         string `json:"dish_id"`
	Name           string `json:"name"`
	RestaurantID   string `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	Orders         int64  `json:"orders"`
	Revenue        string `json:"revenue"`
}

type RecentOrder struct {
	ID             string    `json:"id"`
	CustomerName   string    `json:"customer_name"`
	RestaurantName string    `json:"restaurant_name"`
	Status         string    `json:"status"`
	Total          string    `json:"total"`
	CreatedAt      time.Time `json:"created_at"`
}

type DashboardStats struct {
	TotalUsers        int64 `json:"total_users"`
	NewUsersToday     int64 `json:"new_users_today"`
	TotalRestaurants  int64 `json:"total_restaurants"`
	ActiveRestaurants int64 `json:"active_restaurants"`

	OrdersToday      int64  `json:"orders_today"`
	RevenueToday     string `json:"revenue_today"`
	OrdersYesterday  int64  `json:"orders_yesterday"`
	RevenueYesterday string `json:"revenue_yesterday"`

	//前日比（％）。前日売上ゼロなら当日があれば100
	RevenueGrowth float64 `json:"revenue_growth"`

	RevenueTrend []RevenuePoint `json:"revenue_trend"`
	TopDishes    []TopDish      `json:"top_dishes"`
	RecentOrders []RecentOrder  `json:"recent_orders"`
}

// Dashboardは独立した集計を並行に取りにいく。どれか1つ失敗なら全体を失敗にする
func (u *AdminUsecase) Dashboard(ctx context.Context) (DashboardStats, error) {
	now := u.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)

	var stats DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := u.users.Count(gctx)
		if err != nil {
			return err
		}
		newToday, err := u.users.CountCreatedSince(gctx, today)
		if err != nil {
			return err
		}
		stats.TotalUsers = total
		stats.NewUsersToday = newToday

		restaurants, err := u.restaurants.Count(gctx)
		if err != nil {
			return err
		}
		active, err := u.restaurants.CountActive(gctx)
		if err != nil {
			return err
		}
		stats.TotalRestaurants = restaurants
		stats.ActiveRestaurants = active
		return nil
	})

	g.Go(func() error {
		todayCount, todayRevenue, err := u.orders.RevenueBetween(gctx, today, now)
		if err != nil {
			return err
		}
		yCount, yRevenue, err := u.orders.RevenueBetween(gctx, yesterday, today)
		if err != nil {
			return err
		}
		stats.OrdersToday = todayCount
		stats.RevenueToday = todayRevenue.StringFixed(2)
		stats.OrdersYesterday = yCount
		stats.RevenueYesterday = yRevenue.StringFixed(2)
		stats.RevenueGrowth = revenueGrowth(todayRevenue, yRevenue)
		return nil
	})

	g.Go(func() error {
		trend := make([]RevenuePoint, 0, trendDays)
		for i := trendDays - 1; i >= 0; i-- {
			from := today.AddDate(0, 0, -i)
			to := from.AddDate(0, 0, 1)
			count, revenue, err := u.orders.RevenueBetween(gctx, from, to)
			if err != nil {
				return err
			}
			trend = append(trend, RevenuePoint{
				Date:    from.Format("2006-01-02"),
				Orders:  count,
				Revenue: revenue.StringFixed(2),
			})
		}
		stats.RevenueTrend = trend
		return nil
	})

	g.Go(func() error {
		rows, err := u.orderItems.TopDishes(gctx, topDishLimit)
		if err != nil {
			return err
		}
		top := make([]TopDish, 0, len(rows))
		for _, r := range rows {
			top = append(top, TopDish{
				DishID:         r.DishID,
				Name:           r.Name,
				RestaurantID:   r.RestaurantID,
				RestaurantName: r.RestaurantName,
				Orders:         r.Orders,
				Revenue:        r.Revenue.StringFixed(2),
			})
		}
		stats.TopDishes = top
		return nil
	})

	g.Go(func() error {
		rows, err := u.orders.ListRecent(gctx, recentOrderLimit)
		if err != nil {
			return err
		}
		recent := make([]RecentOrder, 0, len(rows))
		for _, r := range rows {
			recent = append(recent, RecentOrder{
				ID:             r.ID,
				CustomerName:   r.CustomerFirstName + " " + r.CustomerLastName,
				RestaurantName: r.RestaurantName,
				Status:         string(r.Status),
				Total:          r.Total.StringFixed(2),
				CreatedAt:      r.CreatedAt,
			})
		}
		stats.RecentOrders = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return stats, nil
}

func revenueGrowth(today decimal.Decimal, yesterday decimal.Decimal) float64 {
	if yesterday.IsZero() {
		if today.IsPositive() {
			return 100
		}
		return 0
	}
	growth, _ := today.Sub(yesterday).Div(yesterday).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return growth
}
