package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

type Order struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID   string `gorm:"type:uuid;not null;index" json:"customer_id"`
	RestaurantID string `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	AddressID    string `gorm:"type:uuid;not null" json:"address_id"`

	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	DeliveryFee decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"delivery_fee"`
	Tax         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"tax"`
	Total       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`

	Notes string `gorm:"type:text" json:"notes"`

	//到着目安（分）
	EstimatedTime int         `gorm:"not null" json:"estimated_time"`
	Status        OrderStatus `gorm:"type:varchar(30);not null;index" json:"status"`

	//同じ決済セッションから二重に注文を作らせない
	StripeSessionID string `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
