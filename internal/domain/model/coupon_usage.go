package model

import "time"

// クーポン消費記録。
// (coupon_id, user_id) のunique indexが二重利用の最終防衛線。
type CouponUsage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CouponID  int64     `gorm:"not null;uniqueIndex:idx_coupon_user" json:"coupon_id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_coupon_user" json:"user_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
