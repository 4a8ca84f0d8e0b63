package model

import "time"

type OrderDetail struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64     `gorm:"not null;index" json:"order_id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatorID int64     `gorm:"not null;index" json:"creator_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
