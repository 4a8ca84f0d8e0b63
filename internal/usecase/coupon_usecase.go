package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/google/uuid"
)

type CouponUsecase struct {
	couponRepo repo.CouponRepository
	auditRepo  repo.AuditLogRepository
}

func NewCouponUsecase(couponRepo repo.CouponRepository, auditRepo repo.AuditLogRepository) *CouponUsecase {
	return &CouponUsecase{
		couponRepo: couponRepo,
		auditRepo:  auditRepo,
	}
}

func (u *CouponUsecase) ListCoupons(ctx context.Context) ([]model.Coupon, error) {
	items, err := u.couponRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// コードでクーポンを1件取得。期限切れは「ない」扱いで返す。
func (u *CouponUsecase) GetCouponByCode(ctx context.Context, code string) (model.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "invalid code")
	}

	c, err := u.couponRepo.FindByCode(ctx, code)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Coupon{}, NewHTTPError(http.StatusNotFound, "coupon not found")
	}
	if err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if c.Expired(time.Now()) {
		return model.Coupon{}, NewHTTPError(http.StatusNotFound, "coupon not found")
	}

	return c, nil
}

type CreateCouponInput struct {
	Code       string
	Discount   int
	ExpiryDate time.Time
}

// 管理者用のクーポン作成。
// discountは1〜100のパーセント値。codeが空なら生成する。
func (u *CouponUsecase) CreateCoupon(ctx context.Context, adminUserID int64, in CreateCouponInput) (model.Coupon, error) {
	if adminUserID <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Discount <= 0 || in.Discount > 100 {
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "invalid discount")
	}
	if in.ExpiryDate.IsZero() || in.ExpiryDate.Before(time.Now()) {
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "invalid expiry date")
	}

	code := strings.TrimSpace(in.Code)
	if code == "" {
		code = uuid.NewString()
	}

	c, err := u.couponRepo.Create(ctx, model.Coupon{
		Code:       code,
		Discount:   in.Discount,
		ExpiryDate: in.ExpiryDate,
	})
	if err != nil {
		//code重複
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "query error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID: adminUserID,
		Message:     fmt.Sprintf("coupon %s created", c.Code),
	}); err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return c, nil
}
