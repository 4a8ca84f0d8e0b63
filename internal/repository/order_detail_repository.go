package repository

import (
	"context"

	"shop/internal/domain/model"
)

type OrderDetailRepository interface {
	//注文明細の一括作成。orderIDを全行に振ってから保存する。
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderDetail) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderDetail, error)
}
