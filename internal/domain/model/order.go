package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusDone    OrderStatus = "DONE"
)

type PaymentMethod string

const (
	PaymentMethodCOD     PaymentMethod = "COD"
	PaymentMethodBanking PaymentMethod = "BANKING"
)

type Order struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`
	//Priceはサーバー側で計算した確定金額。クライアントからは受け取らない。
	Price         decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"price"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(10);not null;default:'COD'" json:"payment_method"`
	Status        OrderStatus     `gorm:"type:varchar(10);not null;index;default:'PENDING'" json:"status"`
	Address       string          `gorm:"type:text;not null" json:"address"`
	Note          string          `gorm:"type:text" json:"note"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
