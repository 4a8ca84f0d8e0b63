package usecase_test

import (
	"context"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// cacheはnilで動かす（cache無し構成と同じ）
func newProductUC(products *ProductRepoMock, audit *AuditRepoMock) *usecase.ProductUsecase {
	return usecase.NewProductUsecase(products, audit, nil)
}

func TestListPublicProducts_InvalidPage(t *testing.T) {
	uc := newProductUC(new(ProductRepoMock), new(AuditRepoMock))

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Page: 0, Limit: 20})
	assertHTTPError(t, err, 400, "invalid page")
}

func TestListPublicProducts_InvalidLimit(t *testing.T) {
	uc := newProductUC(new(ProductRepoMock), new(AuditRepoMock))

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: 101})
	assertHTTPError(t, err, 400, "invalid limit")
}

func TestListPublicProducts_Success(t *testing.T) {
	products := new(ProductRepoMock)
	uc := newProductUC(products, new(AuditRepoMock))

	items := []model.Product{activeProduct(1, 1000)}
	products.On("ListPublic", mock.Anything, repo.ProductListQuery{Page: 1, Limit: 20, Q: "coffee", Sort: "new"}).
		Return(items, int64(1), nil)

	out, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{
		Page: 1, Limit: 20, Q: "coffee", Sort: "new",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Len(t, out.Items, 1)
}

func TestGetProduct_NotFound(t *testing.T) {
	products := new(ProductRepoMock)
	uc := newProductUC(products, new(AuditRepoMock))

	products.On("FindByID", mock.Anything, int64(404)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProduct(context.Background(), 404)
	assertHTTPError(t, err, 404, "product not found")
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	uc := newProductUC(new(ProductRepoMock), new(AuditRepoMock))

	_, err := uc.CreateProduct(context.Background(), 1, usecase.CreateProductInput{
		Name:       "coffee",
		Price:      decimal.NewFromInt(-1),
		CategoryID: 1,
	})
	assertHTTPError(t, err, 400, "invalid price")
}

func TestCreateProduct_Success(t *testing.T) {
	products := new(ProductRepoMock)
	audit := new(AuditRepoMock)
	uc := newProductUC(products, audit)

	products.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "coffee" && p.CreatorID == 1 && p.Status == model.ProductStatusEnable
	})).Return(activeProduct(7, 1000), nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.CreateProduct(context.Background(), 1, usecase.CreateProductInput{
		Name:       "coffee",
		Price:      decimal.NewFromInt(1000),
		CategoryID: 1,
		Quantity:   10,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.ID)

	products.AssertExpectations(t)
}

func TestUpdateProduct_InvalidStatus(t *testing.T) {
	products := new(ProductRepoMock)
	uc := newProductUC(products, new(AuditRepoMock))

	products.On("FindByID", mock.Anything, int64(7)).Return(activeProduct(7, 1000), nil)

	bad := "ARCHIVED"
	_, err := uc.UpdateProduct(context.Background(), 1, 7, usecase.UpdateProductInput{Status: &bad})
	assertHTTPError(t, err, 400, "invalid status")
}

func TestDeleteProduct_SoftDeletes(t *testing.T) {
	products := new(ProductRepoMock)
	audit := new(AuditRepoMock)
	uc := newProductUC(products, audit)

	products.On("SoftDelete", mock.Anything, int64(7)).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := uc.DeleteProduct(context.Background(), 1, 7)
	assert.NoError(t, err)

	products.AssertExpectations(t)
}

// 監査ログが書けなかったら操作ごと失敗にする
func TestCreateProduct_AuditWriteFailure(t *testing.T) {
	products := new(ProductRepoMock)
	audit := new(AuditRepoMock)
	uc := newProductUC(products, audit)

	products.On("Create", mock.Anything, mock.Anything).Return(activeProduct(7, 1000), nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := uc.CreateProduct(context.Background(), 1, usecase.CreateProductInput{
		Name:       "coffee",
		Price:      decimal.NewFromInt(1000),
		CategoryID: 1,
		Quantity:   10,
	})
	assertHTTPError(t, err, 500, "db error")
}

func TestDeleteProduct_NotFound(t *testing.T) {
	products := new(ProductRepoMock)
	uc := newProductUC(products, new(AuditRepoMock))

	products.On("SoftDelete", mock.Anything, int64(404)).Return(repo.ErrNotFound)

	err := uc.DeleteProduct(context.Background(), 1, 404)
	assertHTTPError(t, err, 404, "product not found")
}
