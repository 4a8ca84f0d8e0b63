package model

import (
	"time"

	"gorm.io/gorm"
)

type CartItem struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64          `gorm:"not null;index" json:"user_id"`
	ProductID int64          `gorm:"not null;index" json:"product_id"`
	Quantity  int64          `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
