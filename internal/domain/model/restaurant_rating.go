package model

import "time"

type RestaurantRating struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_restaurant_rating_user" json:"restaurant_id"`
	UserID       string `gorm:"type:uuid;not null;index;uniqueIndex:idx_restaurant_rating_user" json:"user_id"`

	Rating int `gorm:"not null" json:"rating"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
