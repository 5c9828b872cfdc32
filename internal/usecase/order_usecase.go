package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
	"github.com/paralyuzov/food-delivery-api/internal/payment"
	repo "github.com/paralyuzov/food-delivery-api/internal/repository"
)

// 固定の配送料と税率
var (
	deliveryFee = decimal.RequireFromString("3.00")
	taxRate     = decimal.RequireFromString("0.05")
)

// 固定の到着目安（分）
const estimatedDeliveryMinutes = 30

type OrderUsecase struct {
	tx         repo.TransactionManager
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	addresses  repo.AddressRepository
	dishes     repo.DishRepository
	gateway    payment.Gateway
	idGen      IDGenerator
	clock      Clock
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	addresses repo.AddressRepository,
	dishes repo.DishRepository,
	gateway payment.Gateway,
	idGen IDGenerator,
	clock Clock,
) *OrderUsecase {
	return &OrderUsecase{
		tx:         tx,
		orders:     orders,
		orderItems: orderItems,
		addresses:  addresses,
		dishes:     dishes,
		gateway:    gateway,
		idGen:      idGen,
		clock:      clock,
	}
}

// クライアントのカート1行。価格は参考値で、合計には使わない
type CartLine struct {
	DishID    string          `json:"dish_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type CheckoutInput struct {
	AddressID string
	Items     []CartLine
	Notes     string
}

type CheckoutPreviewItem struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Price    string `json:"price"`
}

type OrderPreview struct {
	Items          []CheckoutPreviewItem `json:"items"`
	Subtotal       string                `json:"subtotal"`
	DeliveryFee    string                `json:"delivery_fee"`
	Tax            string                `json:"tax"`
	Total          string                `json:"total"`
	RestaurantName string                `json:"restaurant_name"`
	ItemCount      int                   `json:"item_count"`
}

type CheckoutOutput struct {
	CheckoutURL  string       `json:"checkout_url"`
	SessionID    string       `json:"session_id"`
	OrderPreview OrderPreview `json:"order_preview"`
}

// セッションメタデータに載せる突合明細
type reconciliationLine struct {
	DishID   string `json:"dishId"`
	Quantity int64  `json:"quantity"`
	Price    string `json:"price"`
}

type reconciliationData struct {
	Items []reconciliationLine `json:"items"`
	Notes string               `json:"notes,omitempty"`
}

// Checkoutはカートを検証して決済セッションを作る。DBには何も書かない。
// 「チェックアウト開始」はゲートウェイ側の状態であってローカルの状態ではない
func (u *OrderUsecase) Checkout(ctx context.Context, userID string, in CheckoutInput) (CheckoutOutput, error) {
	if in.AddressID == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "address is required")
	}
	if len(in.Items) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}
	for _, line := range in.Items {
		if line.DishID == "" || line.Quantity < 1 {
			return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid cart line")
		}
	}

	//住所の存在＋所有チェック
	if _, err := u.addresses.FindByUserAndID(ctx, userID, in.AddressID); err != nil {
		if err == repo.ErrNotFound {
			return CheckoutOutput{}, NewHTTPError(http.StatusNotFound, "address not found or does not belong to user")
		}
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dishByID, err := u.resolveAvailableDishes(ctx, cartDishIDs(in.Items), "some dishes are not available")
	if err != nil {
		return CheckoutOutput{}, err
	}

	//全皿が同じ店のものか
	restaurantID := ""
	restaurantName := ""
	for _, d := range dishByID {
		if restaurantID == "" {
			restaurantID = d.RestaurantID
			restaurantName = d.RestaurantName
			continue
		}
		if d.RestaurantID != restaurantID {
			return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "all dishes must belong to the same restaurant")
		}
	}

	//価格は常にカタログの現在値から再計算する。クライアント申告値は信用しない
	subtotal := decimal.Zero
	checkoutItems := make([]payment.CheckoutItem, 0, len(in.Items))
	previewItems := make([]CheckoutPreviewItem, 0, len(in.Items))
	reconLines := make([]reconciliationLine, 0, len(in.Items))

	for _, line := range in.Items {
		d := dishByID[line.DishID]
		subtotal = subtotal.Add(d.Price.Mul(decimal.NewFromInt(line.Quantity)))

		checkoutItems = append(checkoutItems, payment.CheckoutItem{
			DishID:      d.ID,
			Name:        d.Name,
			Description: d.Description,
			ImageURL:    d.ImageURL,
			UnitPrice:   d.Price,
			Quantity:    line.Quantity,
		})
		previewItems = append(previewItems, CheckoutPreviewItem{
			Name:     d.Name,
			Quantity: line.Quantity,
			Price:    d.Price.StringFixed(2),
		})
		reconLines = append(reconLines, reconciliationLine{
			DishID:   d.ID,
			Quantity: line.Quantity,
			Price:    d.Price.StringFixed(2),
		})
	}

	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(deliveryFee).Add(tax)

	orderData, err := json.Marshal(reconciliationData{Items: reconLines, Notes: in.Notes})
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	session, err := u.gateway.CreateCheckoutSession(ctx, payment.CheckoutData{
		Items:       checkoutItems,
		DeliveryFee: deliveryFee,
		Tax:         tax,
		Metadata: payment.SessionMetadata{
			UserID:       userID,
			AddressID:    in.AddressID,
			RestaurantID: restaurantID,
			OrderData:    string(orderData),
			ItemCount:    len(in.Items),
			Subtotal:     subtotal,
			DeliveryFee:  deliveryFee,
			Tax:          tax,
			Total:        total,
		},
	})
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "payment provider error")
	}

	return CheckoutOutput{
		CheckoutURL: session.URL,
		SessionID:   session.SessionID,
		OrderPreview: OrderPreview{
			Items:          previewItems,
			Subtotal:       subtotal.StringFixed(2),
			DeliveryFee:    deliveryFee.StringFixed(2),
			Tax:            tax.StringFixed(2),
			Total:          total.StringFixed(2),
			RestaurantName: restaurantName,
			ItemCount:      len(in.Items),
		},
	}, nil
}

type ConfirmedOrderOutput struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	Subtotal       string `json:"subtotal"`
	DeliveryFee    string `json:"delivery_fee"`
	Tax            string `json:"tax"`
	Total          string `json:"total"`
	EstimatedTime  int    `json:"estimated_time"`
	ItemCount      int    `json:"item_count"`
	RestaurantName string `json:"restaurant_name"`
	SessionID      string `json:"session_id"`
}

// ConfirmPaymentは支払い済みセッションを検証して注文を確定する。
// 注文と明細は1トランザクションで書き、片方だけ残ることはない
func (u *OrderUsecase) ConfirmPayment(ctx context.Context, userID string, sessionID string) (ConfirmedOrderOutput, error) {
	if sessionID == "" {
		return ConfirmedOrderOutput{}, NewHTTPError(http.StatusBadRequest, "session_id is required")
	}

	session, err := u.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return ConfirmedOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "payment provider error")
	}

	if session.PaymentStatus != payment.StatusPaid {
		return ConfirmedOrderOutput{}, NewHTTPError(http.StatusNotFound, "payment not completed or failed")
	}

	md := session.Metadata
	if md == nil || md["orderData"] == "" {
		return ConfirmedOrderOutput{}, NewHTTPError(http.StatusNotFound, "session metadata not found")
	}

	//他人のセッションから注文を作らせない
	if md["userId"] != userID {
		return ConfirmedOrderOutput{}, NewHTTPError(http.StatusNotFound, "session does not belong to this user")
	}

	addressID := md["addressId"]
	restaurantID := md["restaurantId"]

	if _, err := u.addresses.FindByUserAndID(ctx, userID, addressID); err != nil {
		if err == repo.ErrNotFound {
			return ConfirmedOrderOutput{}, NewHTTPError(http.StatusNotFound, "address not found or does not belong to user")
		}
		return ConfirmedOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var recon reconciliationData
	if err := json.Unmarshal([]byte(md["orderData"]), &recon); err != nil || len(recon.Items) == 0 {
		return ConfirmedOrderOutput{}, NewHTTPError(http.StatusNotFound, "session metadata not found")
	}

	reconIDs := make([]string, 0, len(recon.Items))
	for _, line := range recon.Items {
		reconIDs = append(reconIDs, line.DishID)
	}
	dishByID, err := u.resolveAvailableDishes(ctx, reconIDs, "some dishes are no longer available")
	if err != nil {
		return ConfirmedOrderOutput{}, err
	}
	restaurantName := dishByID[recon.Items[0].DishID].RestaurantName

	//金額はセッション作成時に確定した値をそのまま読む。逆算はしない
	subtotal, err1 := decimal.NewFromString(md["subtotal"])
	fee, err2 := decimal.NewFromString(md["deliveryFee"])
	tax, err3 := decimal.NewFromString(md["tax"])
	total, err4 := decimal.NewFromString(md["total"])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return ConfirmedOrderOutput{}, NewHTTPError(http.StatusNotFound, "session metadata not found")
	}

	var out ConfirmedOrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//同じセッションを二度確定しても同じ注文を返す
		existing, found, err := r.Orders().FindBySessionID(ctx, sessionID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			out = toConfirmedOutput(*existing, len(recon.Items), restaurantName)
			return nil
		}

		now := u.clock.Now()
		order := model.Order{
			ID:              u.idGen.NewID(),
			CustomerID:      userID,
			RestaurantID:    restaurantID,
			AddressID:       addressID,
			Subtotal:        subtotal,
			DeliveryFee:     fee,
			Tax:             tax,
			Total:           total,
			Notes:           recon.Notes,
			EstimatedTime:   estimatedDeliveryMinutes,
			Status:          model.OrderStatusConfirmed,
			StripeSessionID: sessionID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if err := r.Orders().Create(ctx, &order); err != nil {
			if err == repo.ErrDuplicate {
				//同時確定の競合。先に入った注文を返す
				ex2, found2, err2 := r.Orders().FindBySessionID(ctx, sessionID)
				if err2 == nil && found2 {
					out = toConfirmedOutput(*ex2, len(recon.Items), restaurantName)
					return nil
				}
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items := make([]model.OrderItem, 0, len(recon.Items))
		for _, line := range recon.Items {
			price, err := decimal.NewFromString(line.Price)
			if err != nil {
				return NewHTTPError(http.StatusNotFound, "session metadata not found")
			}
			items = append(items, model.OrderItem{
				ID:        u.idGen.NewID(),
				DishID:    line.DishID,
				Quantity:  line.Quantity,
				Price:     price,
				CreatedAt: now,
			})
		}

		if err := r.OrderItems().CreateBulk(ctx, order.ID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toConfirmedOutput(order, len(items), restaurantName)
		return nil
	})

	if err != nil {
		return ConfirmedOrderOutput{}, err
	}
	return out, nil
}

type OrderItemOutput struct {
	DishID   string `json:"dish_id"`
	Quantity int64  `json:"quantity"`
	Price    string `json:"price"`
}

type OrderOutput struct {
	ID            string            `json:"id"`
	CustomerID    string            `json:"customer_id"`
	RestaurantID  string            `json:"restaurant_id"`
	Status        string            `json:"status"`
	Subtotal      string            `json:"subtotal"`
	DeliveryFee   string            `json:"delivery_fee"`
	Tax           string            `json:"tax"`
	Total         string            `json:"total"`
	EstimatedTime int               `json:"estimated_time"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

func (u *OrderUsecase) ListUserOrders(ctx context.Context, userID string) ([]OrderOutput, error) {
	orders, err := u.orders.ListByCustomer(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items, err := u.orderItems.ListByOrderID(ctx, o.ID)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		outs = append(outs, toOrderOutput(o, items))
	}
	return outs, nil
}

func (u *OrderUsecase) ListOrdersByStatus(ctx context.Context, status string) ([]OrderOutput, error) {
	if status != "" && !isKnownStatus(model.OrderStatus(status)) {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	orders, err := u.orders.ListByStatus(ctx, status)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items, err := u.orderItems.ListByOrderID(ctx, o.ID)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		outs = append(outs, toOrderOutput(o, items))
	}
	return outs, nil
}

// 前進のみ許すステータス遷移
var statusTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusConfirmed:      {model.OrderStatusPreparing, model.OrderStatusCancelled},
	model.OrderStatusPreparing:      {model.OrderStatusOutForDelivery, model.OrderStatusCancelled},
	model.OrderStatusOutForDelivery: {model.OrderStatusDelivered},
}

func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (OrderOutput, error) {
	if orderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	if !isKnownStatus(status) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	order, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		if err == repo.ErrNotFound {
			return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
		}
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !canTransition(order.Status, status) {
		return OrderOutput{}, NewHTTPError(http.StatusConflict, "invalid status transition")
	}

	if err := u.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.orderItems.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	order.Status = status
	return toOrderOutput(*order, items), nil
}

func (u *OrderUsecase) resolveAvailableDishes(ctx context.Context, dishIDs []string, notFoundMsg string) (map[string]repo.DishDetail, error) {
	details, err := u.dishes.ListAvailableByIDs(ctx, dishIDs)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	byID := make(map[string]repo.DishDetail, len(details))
	for _, d := range details {
		byID[d.ID] = d
	}
	for _, id := range dishIDs {
		if _, ok := byID[id]; !ok {
			return nil, NewHTTPError(http.StatusNotFound, notFoundMsg)
		}
	}
	return byID, nil
}

func cartDishIDs(items []CartLine) []string {
	ids := make([]string, 0, len(items))
	for _, line := range items {
		ids = append(ids, line.DishID)
	}
	return ids
}

func isKnownStatus(s model.OrderStatus) bool {
	switch s {
	case model.OrderStatusConfirmed, model.OrderStatusPreparing,
		model.OrderStatusOutForDelivery, model.OrderStatusDelivered,
		model.OrderStatusCancelled:
		return true
	}
	return false
}

func canTransition(from model.OrderStatus, to model.OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func toConfirmedOutput(o model.Order, itemCount int, restaurantName string) ConfirmedOrderOutput {
	return ConfirmedOrderOutput{
		ID:             o.ID,
		Status:         string(o.Status),
		Subtotal:       o.Subtotal.StringFixed(2),
		DeliveryFee:    o.DeliveryFee.StringFixed(2),
		Tax:            o.Tax.StringFixed(2),
		Total:          o.Total.StringFixed(2),
		EstimatedTime:  o.EstimatedTime,
		ItemCount:      itemCount,
		RestaurantName: restaurantName,
		SessionID:      o.StripeSessionID,
	}
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			DishID:   it.DishID,
			Quantity: it.Quantity,
			Price:    it.Price.StringFixed(2),
		})
	}

	return OrderOutput{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		RestaurantID:  o.RestaurantID,
		Status:        string(o.Status),
		Subtotal:      o.Subtotal.StringFixed(2),
		DeliveryFee:   o.DeliveryFee.StringFixed(2),
		Tax:           o.Tax.StringFixed(2),
		Total:         o.Total.StringFixed(2),
		EstimatedTime: o.EstimatedTime,
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}
}
