package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type favoriteGormRepository struct {
	db *gorm.DB
}

func NewFavoriteGormRepository(db *gorm.DB) repo.FavoriteRepository {
	return &favoriteGormRepository{db: db}
}

func (r *favoriteGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.FavoriteProduct, error) {
	var favs []model.FavoriteProduct
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&favs).Error
	if err != nil {
		return nil, err
	}
	return favs, nil
}

func (r *favoriteGormRepository) FindByProductID(ctx context.Context, userID int64, productID int64) (model.FavoriteProduct, error) {
	var fav model.FavoriteProduct
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&fav).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.FavoriteProduct{}, repo.ErrNotFound
	}
	if err != nil {
		return model.FavoriteProduct{}, err
	}
	return fav, nil
}

func (r *favoriteGormRepository) Create(ctx context.Context, fav model.FavoriteProduct) (model.FavoriteProduct, error) {
	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		return model.FavoriteProduct{}, err
	}
	return fav, nil
}

func (r *favoriteGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.FavoriteProduct{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
