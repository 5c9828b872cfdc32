package model

import "time"

// 1ユーザーにつき1皿1行。再評価は更新する
type DishRating struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	DishID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_dish_rating_user" json:"dish_id"`
	UserID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_dish_rating_user" json:"user_id"`

	Rating int `gorm:"not null" json:"rating"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
