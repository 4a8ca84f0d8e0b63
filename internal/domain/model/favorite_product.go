package model

import (
	"time"

	"gorm.io/gorm"
)

type FavoriteProduct struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64          `gorm:"not null;index" json:"user_id"`
	ProductID int64          `gorm:"not null;index" json:"product_id"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
