package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
	"github.com/paralyuzov/food-delivery-api/internal/payment"
	repo "github.com/paralyuzov/food-delivery-api/internal/repository"
)

// =====================
// 共有スタブ
// =====================

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

type seqIDGen struct {
	prefix string
	n      int
}

func (g *seqIDGen) NewID() string {
	g.n++
	return g.prefix + "-" + string(rune('0'+g.n))
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(*model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) FindBySessionID(ctx context.Context, sessionID string) (*model.Order, bool, error) {
	args := m.Called(ctx, sessionID)
	o, _ := args.Get(0).(*model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) ListByCustomer(ctx context.Context, customerID string) ([]model.Order, error) {
	args := m.Called(ctx, customerID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListByStatus(ctx context.Context, status string) ([]model.Order, error) {
	args := m.Called(ctx, status)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListRecent(ctx context.Context, limit int) ([]repo.RecentOrderRow, error) {
	args := m.Called(ctx, limit)
	rows, _ := args.Get(0).([]repo.RecentOrderRow)
	return rows, args.Error(1)
}

func (m *OrderRepoMock) RevenueBetween(ctx context.Context, from time.Time, to time.Time) (int64, decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	rev, _ := args.Get(1).(decimal.Decimal)
	return args.Get(0).(int64), rev, args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) TopDishes(ctx context.Context, limit int) ([]repo.TopDishRow, error) {
	args := m.Called(ctx, limit)
	rows, _ := args.Get(0).([]repo.TopDishRow)
	return rows, args.Error(1)
}

type AddressRepoMock struct{ mock.Mock }

func (m *AddressRepoMock) FindByUserAndID(ctx context.Context, userID string, addressID string) (*model.Address, error) {
	args := m.Called(ctx, userID, addressID)
	a, _ := args.Get(0).(*model.Address)
	return a, args.Error(1)
}

func (m *AddressRepoMock) ListByUserID(ctx context.Context, userID string) ([]model.Address, error) {
	panic("not used in OrderUsecase tests")
}

func (m *AddressRepoMock) Create(ctx context.Context, address *model.Address) error {
	panic("not used in OrderUsecase tests")
}

func (m *AddressRepoMock) Update(ctx context.Context, address *model.Address) error {
	panic("not used in OrderUsecase tests")
}

type DishRepoMock struct{ mock.Mock }

func (m *DishRepoMock) FindByID(ctx context.Context, dishID string) (*model.Dish, error) {
	args := m.Called(ctx, dishID)
	d, _ := args.Get(0).(*model.Dish)
	return d, args.Error(1)
}

func (m *DishRepoMock) ListByMenuID(ctx context.Context, menuID string) ([]model.Dish, error) {
	panic("not used in OrderUsecase tests")
}

func (m *DishRepoMock) ListAll(ctx context.Context) ([]repo.DishDetail, error) {
	panic("not used in OrderUsecase tests")
}

func (m *DishRepoMock) ListByCategory(ctx context.Context, category string) ([]model.Dish, error) {
	panic("not used in OrderUsecase tests")
}

func (m *DishRepoMock) ListPopular(ctx context.Context, limit int) ([]model.Dish, error) {
	panic("not used in OrderUsecase tests")
}

func (m *DishRepoMock) ListAvailableByIDs(ctx context.Context, dishIDs []string) ([]repo.DishDetail, error) {
	args := m.Called(ctx, dishIDs)
	details, _ := args.Get(0).([]repo.DishDetail)
	return details, args.Error(1)
}

func (m *DishRepoMock) Create(ctx context.Context, dish *model.Dish) error {
	panic("not used in OrderUsecase tests")
}

func (m *DishRepoMock) Update(ctx context.Context, dish *model.Dish) error {
	panic("not used in OrderUsecase tests")
}

func (m *DishRepoMock) Delete(ctx context.Context, dishID string) error {
	panic("not used in OrderUsecase tests")
}

func (m *DishRepoMock) UpdateAvgRating(ctx context.Context, dishID string, avg *float64) error {
	args := m.Called(ctx, dishID, avg)
	return args.Error(0)
}

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) CreateCheckoutSession(ctx context.Context, data payment.CheckoutData) (payment.CheckoutSession, error) {
	args := m.Called(ctx, data)
	s, _ := args.Get(0).(payment.CheckoutSession)
	return s, args.Error(1)
}

func (m *GatewayMock) RetrieveSession(ctx context.Context, sessionID string) (payment.SessionStatus, error) {
	args := m.Called(ctx, sessionID)
	s, _ := args.Get(0).(payment.SessionStatus)
	return s, args.Error(1)
}

// =====================
// Helper
// =====================

func assertHTTPError(t *testing.T, err error, wantStatus int, wantSubstr string) {
	t.Helper()
	if !assert.Error(t, err) {
		return
	}
	he, ok := AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %T", err) {
		assert.Equal(t, wantStatus, he.Status)
		assert.Contains(t, he.Message, wantSubstr)
	}
}

func newOrderUsecaseForTest(
	tx *TxManagerMock,
	orders *OrderRepoMock,
	items *OrderItemRepoMock,
	addresses *AddressRepoMock,
	dishes *DishRepoMock,
	gw *GatewayMock,
) *OrderUsecase {
	return NewOrderUsecase(tx, orders, items, addresses, dishes, gw, &seqIDGen{prefix: "id"}, &fixedClock{t: testNow})
}

func pastaDetail() repo.DishDetail {
	return repo.DishDetail{
		Dish: model.Dish{
			ID:          "dish-1",
			Name:        "Pasta Carbonara",
			Price:       decimal.RequireFromString("10.00"),
			IsAvailable: true,
		},
		RestaurantID:   "rest-1",
		RestaurantName: "Trattoria",
	}
}

func saladDetail() repo.DishDetail {
	return repo.DishDetail{
		Dish: model.Dish{
			ID:          "dish-2",
			Name:        "Caesar Salad",
			Price:       decimal.RequireFromString("5.00"),
			IsAvailable: true,
		},
		RestaurantID:   "rest-1",
		RestaurantName: "Trattoria",
	}
}

// =====================
// Checkout tests
// =====================

func TestOrderUsecase_Checkout_EmptyCart(t *testing.T) {
	uc := newOrderUsecaseForTest(new(TxManagerMock), new(OrderRepoMock), new(OrderItemRepoMock), new(AddressRepoMock), new(DishRepoMock), new(GatewayMock))

	_, err := uc.Checkout(context.Background(), "user-1", CheckoutInput{AddressID: "addr-1"})
	assertHTTPError(t, err, http.StatusBadRequest, "cart is empty")
}

func TestOrderUsecase_Checkout_AddressNotOwned(t *testing.T) {
	addresses := new(AddressRepoMock)
	addresses.On("FindByUserAndID", mock.Anything, "user-1", "addr-9").Return(nil, repo.ErrNotFound)

	uc := newOrderUsecaseForTest(new(TxManagerMock), new(OrderRepoMock), new(OrderItemRepoMock), addresses, new(DishRepoMock), new(GatewayMock))

	_, err := uc.Checkout(context.Background(), "user-1", CheckoutInput{
		AddressID: "addr-9",
		Items:     []CartLine{{DishID: "dish-1", Quantity: 1}},
	})
	assertHTTPError(t, err, http.StatusNotFound, "address not found")
	addresses.AssertExpectations(t)
}

func TestOrderUsecase_Checkout_DishUnavailable(t *testing.T) {
	addresses := new(AddressRepoMock)
	addresses.On("FindByUserAndID", mock.Anything, "user-1", "addr-1").Return(&model.Address{ID: "addr-1"}, nil)

	dishes := new(DishRepoMock)
	//dish-2 は提供停止中なので結果から抜ける
	dishes.On("ListAvailableByIDs", mock.Anything, []string{"dish-1", "dish-2"}).
		Return([]repo.DishDetail{pastaDetail()}, nil)

	uc := newOrderUsecaseForTest(new(TxManagerMock), new(OrderRepoMock), new(OrderItemRepoMock), addresses, dishes, new(GatewayMock))

	_, err := uc.Checkout(context.Background(), "user-1", CheckoutInput{
		AddressID: "addr-1",
		Items: []CartLine{
			{DishID: "dish-1", Quantity: 1},
			{DishID: "dish-2", Quantity: 1},
		},
	})
	assertHTTPError(t, err, http.StatusNotFound, "some dishes are not available")
}

func TestOrderUsecase_Checkout_MixedRestaurants(t *testing.T) {
	addresses := new(AddressRepoMock)
	addresses.On("FindByUserAndID", mock.Anything, "user-1", "addr-1").Return(&model.Address{ID: "addr-1"}, nil)

	other := saladDetail()
	other.RestaurantID = "rest-2"
	other.RestaurantName = "Sushi Bar"

	dishes := new(DishRepoMock)
	dishes.On("ListAvailableByIDs", mock.Anything, []string{"dish-1", "dish-2"}).
		Return([]repo.DishDetail{pastaDetail(), other}, nil)

	uc := newOrderUsecaseForTest(new(TxManagerMock), new(OrderRepoMock), new(OrderItemRepoMock), addresses, dishes, new(GatewayMock))

	_, err := uc.Checkout(context.Background(), "user-1", CheckoutInput{
		AddressID: "addr-1",
		Items: []CartLine{
			{DishID: "dish-1", Quantity: 1},
			{DishID: "dish-2", Quantity: 1},
		},
	})
	assertHTTPError(t, err, http.StatusBadRequest, "same restaurant")
}

func TestOrderUsecase_Checkout_PricesFromCatalog(t *testing.T) {
	addresses := new(AddressRepoMock)
	addresses.On("FindByUserAndID", mock.Anything, "user-1", "addr-1").Return(&model.Address{ID: "addr-1"}, nil)

	dishes := new(DishRepoMock)
	dishes.On("ListAvailableByIDs", mock.Anything, []string{"dish-1", "dish-2"}).
		Return([]repo.DishDetail{pastaDetail(), saladDetail()}, nil)

	var captured payment.CheckoutData
	gw := new(GatewayMock)
	gw.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(payment.CheckoutData)
		}).
		Return(payment.CheckoutSession{URL: "https://pay.example/s", SessionID: "cs_123"}, nil)

	uc := newOrderUsecaseForTest(new(TxManagerMock), new(OrderRepoMock), new(OrderItemRepoMock), addresses, dishes, gw)

	//クライアントは嘘の単価を申告してくる
	out, err := uc.Checkout(context.Background(), "user-1", CheckoutInput{
		AddressID: "addr-1",
		Items: []CartLine{
			{DishID: "dish-1", Quantity: 2, UnitPrice: decimal.RequireFromString("0.01")},
			{DishID: "dish-2", Quantity: 1, UnitPrice: decimal.RequireFromString("0.01")},
		},
		Notes: "extra cheese",
	})
	assert.NoError(t, err)

	// 10.00*2 + 5.00 = 25.00, 税5% = 1.25, 配送料 3.00, 合計 29.25
	assert.Equal(t, "25.00", out.OrderPreview.Subtotal)
	assert.Equal(t, "3.00", out.OrderPreview.DeliveryFee)
	assert.Equal(t, "1.25", out.OrderPreview.Tax)
	assert.Equal(t, "29.25", out.OrderPreview.Total)
	assert.Equal(t, "Trattoria", out.OrderPreview.RestaurantName)
	assert.Equal(t, "https://pay.example/s", out.CheckoutURL)
	assert.Equal(t, "cs_123", out.SessionID)

	//ゲートウェイに渡す単価もカタログ値
	assert.Equal(t, "10.00", captured.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "5.00", captured.Items[1].UnitPrice.StringFixed(2))
	assert.Equal(t, "29.25", captured.Metadata.Total.StringFixed(2))
	assert.Equal(t, "rest-1", captured.Metadata.RestaurantID)

	var recon reconciliationData
	assert.NoError(t, json.Unmarshal([]byte(captured.Metadata.OrderData), &recon))
	assert.Len(t, recon.Items, 2)
	assert.Equal(t, "10.00", recon.Items[0].Price)
	assert.Equal(t, "extra cheese", recon.Notes)

	gw.AssertExpectations(t)
}

// =====================
// ConfirmPayment tests
// =====================

func paidSessionMetadata(t *testing.T) map[string]string {
	t.Helper()
	orderData, err := json.Marshal(reconciliationData{
		Items: []reconciliationLine{
			{DishID: "dish-1", Quantity: 2, Price: "10.00"},
			{DishID: "dish-2", Quantity: 1, Price: "5.00"},
		},
		Notes: "extra cheese",
	})
	assert.NoError(t, err)

	return map[string]string{
		"userId":       "user-1",
		"addressId":    "addr-1",
		"restaurantId": "rest-1",
		"orderData":    string(orderData),
		"itemCount":    "2",
		"subtotal":     "25.00",
		"deliveryFee":  "3.00",
		"tax":          "1.25",
		"total":        "29.25",
	}
}

func TestOrderUsecase_ConfirmPayment_Unpaid(t *testing.T) {
	gw := new(GatewayMock)
	gw.On("RetrieveSession", mock.Anything, "cs_123").
		Return(payment.SessionStatus{ID: "cs_123", PaymentStatus: payment.StatusUnpaid}, nil)

	tx := new(TxManagerMock)
	uc := newOrderUsecaseForTest(tx, new(OrderRepoMock), new(OrderItemRepoMock), new(AddressRepoMock), new(DishRepoMock), gw)

	_, err := uc.ConfirmPayment(context.Background(), "user-1", "cs_123")
	assertHTTPError(t, err, http.StatusNotFound, "payment not completed")

	//未払いなら一切書き込まない
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestOrderUsecase_ConfirmPayment_UserMismatch(t *testing.T) {
	gw := new(GatewayMock)
	gw.On("RetrieveSession", mock.Anything, "cs_123").
		Return(payment.SessionStatus{ID: "cs_123", PaymentStatus: payment.StatusPaid, Metadata: paidSessionMetadata(t)}, nil)

	uc := newOrderUsecaseForTest(new(TxManagerMock), new(OrderRepoMock), new(OrderItemRepoMock), new(AddressRepoMock), new(DishRepoMock), gw)

	_, err := uc.ConfirmPayment(context.Background(), "user-2", "cs_123")
	assertHTTPError(t, err, http.StatusNotFound, "does not belong")
}

func TestOrderUsecase_ConfirmPayment_Success(t *testing.T) {
	gw := new(GatewayMock)
	gw.On("RetrieveSession", mock.Anything, "cs_123").
		Return(payment.SessionStatus{ID: "cs_123", PaymentStatus: payment.StatusPaid, Metadata: paidSessionMetadata(t)}, nil)

	addresses := new(AddressRepoMock)
	addresses.On("FindByUserAndID", mock.Anything, "user-1", "addr-1").Return(&model.Address{ID: "addr-1"}, nil)

	dishes := new(DishRepoMock)
	dishes.On("ListAvailableByIDs", mock.Anything, []string{"dish-1", "dish-2"}).
		Return([]repo.DishDetail{pastaDetail(), saladDetail()}, nil)

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	tx := &TxManagerMock{Repos: &TxReposMock{orders: orders, orderItems: items}}
	tx.On("WithinTx", mock.Anything).Return(nil)

	var createdOrder *model.Order
	orders.On("FindBySessionID", mock.Anything, "cs_123").Return(nil, false, nil)
	orders.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			createdOrder = args.Get(1).(*model.Order)
		}).
		Return(nil)
	items.On("CreateBulk", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	uc := newOrderUsecaseForTest(tx, new(OrderRepoMock), new(OrderItemRepoMock), addresses, dishes, gw)

	out, err := uc.ConfirmPayment(context.Background(), "user-1", "cs_123")
	assert.NoError(t, err)

	assert.Equal(t, string(model.OrderStatusConfirmed), out.Status)
	assert.Equal(t, "25.00", out.Subtotal)
	assert.Equal(t, "3.00", out.DeliveryFee)
	assert.Equal(t, "1.25", out.Tax)
	assert.Equal(t, "29.25", out.Total)
	assert.Equal(t, 30, out.EstimatedTime)
	assert.Equal(t, 2, out.ItemCount)
	assert.Equal(t, "Trattoria", out.RestaurantName)
	assert.Equal(t, "cs_123", out.SessionID)

	if assert.NotNil(t, createdOrder) {
		assert.Equal(t, "user-1", createdOrder.CustomerID)
		assert.Equal(t, "rest-1", createdOrder.RestaurantID)
		assert.Equal(t, "cs_123", createdOrder.StripeSessionID)
		assert.Equal(t, "extra cheese", createdOrder.Notes)
		assert.True(t, createdOrder.Total.Equal(decimal.RequireFromString("29.25")))
	}

	orders.AssertExpectations(t)
	items.AssertExpectations(t)
	tx.AssertExpectations(t)
}

func TestOrderUsecase_ConfirmPayment_Idempotent(t *testing.T) {
	gw := new(GatewayMock)
	gw.On("RetrieveSession", mock.Anything, "cs_123").
		Return(payment.SessionStatus{ID: "cs_123", PaymentStatus: payment.StatusPaid, Metadata: paidSessionMetadata(t)}, nil)

	addresses := new(AddressRepoMock)
	addresses.On("FindByUserAndID", mock.Anything, "user-1", "addr-1").Return(&model.Address{ID: "addr-1"}, nil)

	dishes := new(DishRepoMock)
	dishes.On("ListAvailableByIDs", mock.Anything, []string{"dish-1", "dish-2"}).
		Return([]repo.DishDetail{pastaDetail(), saladDetail()}, nil)

	existing := &model.Order{
		ID:              "order-1",
		CustomerID:      "user-1",
		Status:          model.OrderStatusConfirmed,
		Subtotal:        decimal.RequireFromString("25.00"),
		DeliveryFee:     decimal.RequireFromString("3.00"),
		Tax:             decimal.RequireFromString("1.25"),
		Total:           decimal.RequireFromString("29.25"),
		EstimatedTime:   30,
		StripeSessionID: "cs_123",
	}

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	tx := &TxManagerMock{Repos: &TxReposMock{orders: orders, orderItems: items}}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orders.On("FindBySessionID", mock.Anything, "cs_123").Return(existing, true, nil)

	uc := newOrderUsecaseForTest(tx, new(OrderRepoMock), new(OrderItemRepoMock), addresses, dishes, gw)

	out, err := uc.ConfirmPayment(context.Background(), "user-1", "cs_123")
	assert.NoError(t, err)
	assert.Equal(t, "order-1", out.ID)

	//2回目の確定は既存の注文を返すだけで何も作らない
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	items.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_ConfirmPayment_ItemInsertFails_RollsBack(t *testing.T) {
	gw := new(GatewayMock)
	gw.On("RetrieveSession", mock.Anything, "cs_123").
		Return(payment.SessionStatus{ID: "cs_123", PaymentStatus: payment.StatusPaid, Metadata: paidSessionMetadata(t)}, nil)

	addresses := new(AddressRepoMock)
	addresses.On("FindByUserAndID", mock.Anything, "user-1", "addr-1").Return(&model.Address{ID: "addr-1"}, nil)

	dishes := new(DishRepoMock)
	dishes.On("ListAvailableByIDs", mock.Anything, []string{"dish-1", "dish-2"}).
		Return([]repo.DishDetail{pastaDetail(), saladDetail()}, nil)

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	tx := &TxManagerMock{Repos: &TxReposMock{orders: orders, orderItems: items}}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orders.On("FindBySessionID", mock.Anything, "cs_123").Return(nil, false, nil)
	orders.On("Create", mock.Anything, mock.Anything).Return(nil)
	items.On("CreateBulk", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	uc := newOrderUsecaseForTest(tx, new(OrderRepoMock), new(OrderItemRepoMock), addresses, dishes, gw)

	_, err := uc.ConfirmPayment(context.Background(), "user-1", "cs_123")
	assert.Error(t, err)
}

// =====================
// UpdateOrderStatus tests
// =====================

func TestOrderUsecase_UpdateStatus_ForwardTransition(t *testing.T) {
	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)

	orders.On("FindByID", mock.Anything, "order-1").
		Return(&model.Order{ID: "order-1", Status: model.OrderStatusConfirmed}, nil)
	orders.On("UpdateStatus", mock.Anything, "order-1", model.OrderStatusPreparing).Return(nil)
	items.On("ListByOrderID", mock.Anything, "order-1").Return([]model.OrderItem{}, nil)

	uc := newOrderUsecaseForTest(new(TxManagerMock), orders, items, new(AddressRepoMock), new(DishRepoMock), new(GatewayMock))

	out, err := uc.UpdateOrderStatus(context.Background(), "order-1", model.OrderStatusPreparing)
	assert.NoError(t, err)
	assert.Equal(t, string(model.OrderStatusPreparing), out.Status)
	orders.AssertExpectations(t)
}

func TestOrderUsecase_UpdateStatus_BackwardTransition(t *testing.T) {
	orders := new(OrderRepoMock)
	orders.On("FindByID", mock.Anything, "order-1").
		Return(&model.Order{ID: "order-1", Status: model.OrderStatusDelivered}, nil)

	uc := newOrderUsecaseForTest(new(TxManagerMock), orders, new(OrderItemRepoMock), new(AddressRepoMock), new(DishRepoMock), new(GatewayMock))

	_, err := uc.UpdateOrderStatus(context.Background(), "order-1", model.OrderStatusPreparing)
	assertHTTPError(t, err, http.StatusConflict, "invalid status transition")

	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_UpdateStatus_CancelOutForDelivery(t *testing.T) {
	orders := new(OrderRepoMock)
	orders.On("FindByID", mock.Anything, "order-1").
		Return(&model.Order{ID: "order-1", Status: model.OrderStatusOutForDelivery}, nil)

	uc := newOrderUsecaseForTest(new(TxManagerMock), orders, new(OrderItemRepoMock), new(AddressRepoMock), new(DishRepoMock), new(GatewayMock))

	_, err := uc.UpdateOrderStatus(context.Background(), "order-1", model.OrderStatusCancelled)
	assertHTTPError(t, err, http.StatusConflict, "invalid status transition")
}

func TestOrderUsecase_UpdateStatus_UnknownStatus(t *testing.T) {
	uc := newOrderUsecaseForTest(new(TxManagerMock), new(OrderRepoMock), new(OrderItemRepoMock), new(AddressRepoMock), new(DishRepoMock), new(GatewayMock))

	_, err := uc.UpdateOrderStatus(context.Background(), "order-1", model.OrderStatus("SHIPPED"))
	assertHTTPError(t, err, http.StatusBadRequest, "invalid status")
}
