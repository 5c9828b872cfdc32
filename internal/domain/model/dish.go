package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Dish struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	MenuID string `gorm:"type:uuid;not null;index" json:"menu_id"`

	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	//通貨はdecimalで固定小数点
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	ImageURL    string `gorm:"type:varchar(500)" json:"image_url"`
	Category    string `gorm:"type:varchar(100);index" json:"category"`
	IsAvailable bool   `gorm:"not null;default:true" json:"is_available"`

	AvgRating *float64 `gorm:"index" json:"avg_rating"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
