package repository

import (
	"context"

	"shop/internal/domain/model"
)

type FavoriteRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.FavoriteProduct, error)
	//同一商品の登録済みお気に入りを探す（重複登録・解除用）。
	FindByProductID(ctx context.Context, userID int64, productID int64) (model.FavoriteProduct, error)
	Create(ctx context.Context, fav model.FavoriteProduct) (model.FavoriteProduct, error)
	SoftDelete(ctx context.Context, id int64) error
}
