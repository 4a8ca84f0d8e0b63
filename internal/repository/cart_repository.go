package repository

import (
	"context"

	"shop/internal/domain/model"
)

type CartRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)
	FindByID(ctx context.Context, id int64) (model.CartItem, error)
	//同一商品の既存カート行を探す（upsert用）。
	FindByProductID(ctx context.Context, userID int64, productID int64) (model.CartItem, error)
	Create(ctx context.Context, item model.CartItem) (model.CartItem, error)
	Update(ctx context.Context, item model.CartItem) error
	SoftDelete(ctx context.Context, id int64) error
}
