package usecase_test

import (
	"context"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type FavoriteRepoMock struct{ mock.Mock }

func (m *FavoriteRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.FavoriteProduct, error) {
	args := m.Called(ctx, userID)
	favs, _ := args.Get(0).([]model.FavoriteProduct)
	return favs, args.Error(1)
}

func (m *FavoriteRepoMock) FindByProductID(ctx context.Context, userID int64, productID int64) (model.FavoriteProduct, error) {
	args := m.Called(ctx, userID, productID)
	fav, _ := args.Get(0).(model.FavoriteProduct)
	return fav, args.Error(1)
}

func (m *FavoriteRepoMock) Create(ctx context.Context, fav model.FavoriteProduct) (model.FavoriteProduct, error) {
	args := m.Called(ctx, fav)
	created, _ := args.Get(0).(model.FavoriteProduct)
	return created, args.Error(1)
}

func (m *FavoriteRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestAddFavorite_New(t *testing.T) {
	favs := new(FavoriteRepoMock)
	products := new(ProductRepoMock)
	uc := usecase.NewFavoriteUsecase(favs, products)

	products.On("FindByID", mock.Anything, int64(101)).Return(activeProduct(101, 1000), nil)
	favs.On("FindByProductID", mock.Anything, int64(1), int64(101)).Return(model.FavoriteProduct{}, repo.ErrNotFound)
	favs.On("Create", mock.Anything, model.FavoriteProduct{UserID: 1, ProductID: 101}).
		Return(model.FavoriteProduct{ID: 5, UserID: 1, ProductID: 101}, nil)

	out, err := uc.AddFavorite(context.Background(), 1, 101)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), out.ID)

	favs.AssertExpectations(t)
}

// 同じ商品の二度目の登録は何もしない
func TestAddFavorite_AlreadyFavorited(t *testing.T) {
	favs := new(FavoriteRepoMock)
	products := new(ProductRepoMock)
	uc := usecase.NewFavoriteUsecase(favs, products)

	products.On("FindByID", mock.Anything, int64(101)).Return(activeProduct(101, 1000), nil)
	favs.On("FindByProductID", mock.Anything, int64(1), int64(101)).
		Return(model.FavoriteProduct{ID: 5, UserID: 1, ProductID: 101}, nil)

	out, err := uc.AddFavorite(context.Background(), 1, 101)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), out.ID)

	favs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddFavorite_ProductNotFound(t *testing.T) {
	favs := new(FavoriteRepoMock)
	products := new(ProductRepoMock)
	uc := usecase.NewFavoriteUsecase(favs, products)

	products.On("FindByID", mock.Anything, int64(404)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddFavorite(context.Background(), 1, 404)
	assertHTTPError(t, err, 400, "product not found")
}

func TestAddFavorite_MissingProductID(t *testing.T) {
	uc := usecase.NewFavoriteUsecase(new(FavoriteRepoMock), new(ProductRepoMock))

	_, err := uc.AddFavorite(context.Background(), 1, 0)

	fe, ok := usecase.AsFieldErrors(err)
	if !ok {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	assert.Equal(t, "This field is required", fe.Fields["product"])
}

// 一覧は商品で返す。消えた商品は黙って落とす
func TestListMyFavorites_SkipsDeletedProducts(t *testing.T) {
	favs := new(FavoriteRepoMock)
	products := new(ProductRepoMock)
	uc := usecase.NewFavoriteUsecase(favs, products)

	favs.On("ListByUserID", mock.Anything, int64(1)).Return([]model.FavoriteProduct{
		{ID: 5, UserID: 1, ProductID: 101},
		{ID: 6, UserID: 1, ProductID: 102},
	}, nil)
	products.On("FindByID", mock.Anything, int64(101)).Return(activeProduct(101, 1000), nil)
	products.On("FindByID", mock.Anything, int64(102)).Return(model.Product{}, repo.ErrNotFound)

	out, err := uc.ListMyFavorites(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, int64(101), out[0].ID)
}

func TestRemoveFavorite_Success(t *testing.T) {
	favs := new(FavoriteRepoMock)
	uc := usecase.NewFavoriteUsecase(favs, new(ProductRepoMock))

	favs.On("FindByProductID", mock.Anything, int64(1), int64(101)).
		Return(model.FavoriteProduct{ID: 5, UserID: 1, ProductID: 101}, nil)
	favs.On("SoftDelete", mock.Anything, int64(5)).Return(nil)

	err := uc.RemoveFavorite(context.Background(), 1, 101)
	assert.NoError(t, err)

	favs.AssertExpectations(t)
}

func TestRemoveFavorite_AlreadyDeleted(t *testing.T) {
	favs := new(FavoriteRepoMock)
	uc := usecase.NewFavoriteUsecase(favs, new(ProductRepoMock))

	favs.On("FindByProductID", mock.Anything, int64(1), int64(101)).
		Return(model.FavoriteProduct{}, repo.ErrNotFound)

	err := uc.RemoveFavorite(context.Background(), 1, 101)
	assertHTTPError(t, err, 400, "favorite product is already deleted")

	favs.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
}
