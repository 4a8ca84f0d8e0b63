package usecase

import (
	"context"
	"errors"
	"net/http"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

type FavoriteUsecase struct {
	favoriteRepo repo.FavoriteRepository
	productRepo  repo.ProductRepository
}

func NewFavoriteUsecase(favoriteRepo repo.FavoriteRepository, productRepo repo.ProductRepository) *FavoriteUsecase {
	return &FavoriteUsecase{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
	}
}

// お気に入り一覧は商品として返す。商品が消えていたら一覧から落とす。
func (u *FavoriteUsecase) ListMyFavorites(ctx context.Context, userID int64) ([]model.Product, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	favs, err := u.favoriteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	products := make([]model.Product, 0, len(favs))
	for _, fav := range favs {
		p, err := u.productRepo.FindByID(ctx, fav.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		products = append(products, p)
	}
	return products, nil
}

// 登録。同じ商品が既にお気に入りなら何もせずそのまま返す。
func (u *FavoriteUsecase) AddFavorite(ctx context.Context, userID int64, productID int64) (model.FavoriteProduct, error) {
	if userID <= 0 {
		return model.FavoriteProduct{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.FavoriteProduct{}, NewFieldErrors(map[string]string{"product": "This field is required"})
	}

	_, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.FavoriteProduct{}, NewHTTPError(http.StatusBadRequest, "product not found")
	}
	if err != nil {
		return model.FavoriteProduct{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	existing, err := u.favoriteRepo.FindByProductID(ctx, userID, productID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.FavoriteProduct{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	fav, err := u.favoriteRepo.Create(ctx, model.FavoriteProduct{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		return model.FavoriteProduct{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return fav, nil
}

func (u *FavoriteUsecase) RemoveFavorite(ctx context.Context, userID int64, productID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewFieldErrors(map[string]string{"product": "This field is required"})
	}

	fav, err := u.favoriteRepo.FindByProductID(ctx, userID, productID)
	if errors.Is(err, repo.ErrNotFound) {
		//二重解除は「もう消えてる」で返す
		return NewHTTPError(http.StatusBadRequest, "favorite product is already deleted")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.favoriteRepo.SoftDelete(ctx, fav.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
