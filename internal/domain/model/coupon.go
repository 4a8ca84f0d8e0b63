package model

import "time"

// Discountはパーセント値。作成時に 1〜100 の範囲で検証する。
type Coupon struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Code       string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	Discount   int       `gorm:"not null" json:"discount"`
	ExpiryDate time.Time `gorm:"not null" json:"expiry_date"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (c Coupon) Expired(now time.Time) bool {
	return now.After(c.ExpiryDate)
}
