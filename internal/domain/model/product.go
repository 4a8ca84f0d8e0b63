package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductStatus string

const (
	ProductStatusEnable  ProductStatus = "ENABLE"
	ProductStatusDisable ProductStatus = "DISABLE"
)

type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Image       string          `gorm:"type:varchar(500)" json:"image"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"price"`
	CategoryID  int64           `gorm:"not null;index" json:"category_id"`
	Description string          `gorm:"type:text" json:"description"`
	//Quantityは表示用の数値。注文時に減算はしない。
	Quantity  int64          `gorm:"not null;default:0" json:"quantity"`
	Status    ProductStatus  `gorm:"type:varchar(10);not null;default:'ENABLE'" json:"status"`
	CreatorID int64          `gorm:"not null" json:"creator_id"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// 注文対象にできる商品かどうか。
// ソフトデリート済みは履歴参照のために取得はできるが、新規注文では拒否する。
func (p Product) Orderable() bool {
	return !p.DeletedAt.Valid && p.Status == ProductStatusEnable
}
