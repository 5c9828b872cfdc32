package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文確定時点のスナップショット。後で皿の価格が変わっても不変
type OrderItem struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID string `gorm:"type:uuid;not null;index" json:"order_id"`
	DishID  string `gorm:"type:uuid;not null;index" json:"dish_id"`

	Quantity int64           `gorm:"not null" json:"quantity"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Notes    string          `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
