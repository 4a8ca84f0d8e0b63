package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type reviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) repo.ReviewRepository {
	return &reviewGormRepository{db: db}
}

func (r *reviewGormRepository) Create(ctx context.Context, review model.Review) (model.Review, error) {
	if err := r.db.WithContext(ctx).Create(&review).Error; err != nil {
		return model.Review{}, err
	}
	return review, nil
}

func (r *reviewGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Review{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Review{}, err
	}
	return review, nil
}

func (r *reviewGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// 商品を含む注文に紐づくAPPROVE済みレビューを返す。
// order_details経由で注文→レビューとたどる。
func (r *reviewGormRepository) ListApprovedByProductID(ctx context.Context, productID int64) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Where("status = ?", model.ReviewStatusApprove).
		Where("order_id IN (?)",
			r.db.Model(&model.OrderDetail{}).
				Select("order_id").
				Where("product_id = ?", productID),
		).
		Order("id desc").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
