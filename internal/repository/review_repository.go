package repository

import (
	"context"

	"shop/internal/domain/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, r model.Review) (model.Review, error)
	FindByOrderID(ctx context.Context, orderID int64) (model.Review, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Review, error)
	//商品を含む注文に紐づくAPPROVE済みレビューを返す。
	ListApprovedByProductID(ctx context.Context, productID int64) ([]model.Review, error)
}
