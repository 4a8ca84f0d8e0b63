package usecase

import (
	"context"
	"errors"
	"net/http"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

type ReviewUsecase struct {
	reviewRepo repo.ReviewRepository
	orderRepo  repo.OrderRepository
	auditRepo  repo.AuditLogRepository
}

func NewReviewUsecase(
	reviewRepo repo.ReviewRepository,
	orderRepo repo.OrderRepository,
	auditRepo repo.AuditLogRepository,
) *ReviewUsecase {
	return &ReviewUsecase{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
		auditRepo:  auditRepo,
	}
}

type CreateReviewInput struct {
	OrderID int64
	Content string
	Rating  float64
}

// レビュー投稿。自分の注文にだけ、1注文1件まで。
func (u *ReviewUsecase) CreateReview(ctx context.Context, userID int64, in CreateReviewInput) (model.Review, error) {
	if userID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.OrderID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "order is required")
	}
	if in.Rating < 0 || in.Rating > 5 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid rating")
	}

	//既にレビュー済みなら拒否
	if _, err := u.reviewRepo.FindByOrderID(ctx, in.OrderID); err == nil {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "review for this order is existed")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	order, err := u.orderRepo.FindByID(ctx, in.OrderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Review{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//他人の注文へのレビューは403
	if order.UserID != userID {
		return model.Review{}, NewHTTPError(http.StatusForbidden, "not user order")
	}

	review, err := u.reviewRepo.Create(ctx, model.Review{
		OrderID: in.OrderID,
		UserID:  userID,
		Content: in.Content,
		Rating:  in.Rating,
		//現状は投稿時に即公開
		Status: model.ReviewStatusApprove,
	})
	if err != nil {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "query error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID: userID,
		Message:     "order reviewed",
	}); err != nil {
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return review, nil
}

func (u *ReviewUsecase) ListProductReviews(ctx context.Context, productID int64) ([]model.Review, error) {
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	reviews, err := u.reviewRepo.ListApprovedByProductID(ctx, productID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return reviews, nil
}

func (u *ReviewUsecase) ListUserReviews(ctx context.Context, userID int64) ([]model.Review, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	reviews, err := u.reviewRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return reviews, nil
}
