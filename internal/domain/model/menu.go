package model

import "time"

type Menu struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID string `gorm:"type:uuid;not null;index" json:"restaurant_id"`

	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
