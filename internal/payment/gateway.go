package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// 決済プロバイダが報告する支払い状態
const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
)

type CheckoutItem struct {
	DishID      string
	Name        string
	Description string
	ImageURL    string
	UnitPrice   decimal.Decimal
	Quantity    int64
}

// セッションに添付する突合メタデータ。
// 確定時にクライアント入力を信用し直さないための最小情報
type SessionMetadata struct {
	UserID       string
	AddressID    string
	RestaurantID string

	//明細＋メモをJSONで直列化したもの
	OrderData string

	ItemCount   int
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

type CheckoutData struct {
	Items       []CheckoutItem
	DeliveryFee decimal.Decimal
	Tax         decimal.Decimal
	Metadata    SessionMetadata
}

type CheckoutSession struct {
	URL       string
	SessionID string
}

type SessionStatus struct {
	ID            string
	PaymentStatus string
	Metadata      map[string]string
}

// Gatewayは外部決済プロバイダのホスト型チェックアウトを包む。
// プロバイダ側のエラーはそのまま呼び出し元へ返す（リトライしない）
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, data CheckoutData) (CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (SessionStatus, error)
}
