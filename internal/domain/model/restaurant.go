package model

import "time"

type Restaurant struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	ManagerID string `gorm:"type:uuid;not null;index" json:"manager_id"`

	Name        string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Address     string `gorm:"type:varchar(255);not null" json:"address"`
	Phone       string `gorm:"type:varchar(30)" json:"phone"`
	Email       string `gorm:"type:varchar(255)" json:"email"`
	ImageURL    string `gorm:"type:varchar(500)" json:"image_url"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`

	//全評価の算術平均。未評価ならnull
	AvgRating *float64 `gorm:"index" json:"avg_rating"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
