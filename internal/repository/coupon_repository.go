package repository

import (
	"context"

	"shop/internal/domain/model"
)

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (model.Coupon, error)
	List(ctx context.Context) ([]model.Coupon, error)
	Create(ctx context.Context, c model.Coupon) (model.Coupon, error)
}

// クーポン消費記録の約束。
// Existsは先行チェック用の最適化で、最終的な二重利用防止は
// (coupon_id, user_id) のunique制約に任せる。
type CouponUsageRepository interface {
	Exists(ctx context.Context, couponID int64, userID int64) (bool, error)
	Create(ctx context.Context, usage model.CouponUsage) error
}
