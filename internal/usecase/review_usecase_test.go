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

type ReviewRepoMock struct{ mock.Mock }

func (m *ReviewRepoMock) Create(ctx context.Context, r model.Review) (model.Review, error) {
	args := m.Called(ctx, r)
	created, _ := args.Get(0).(model.Review)
	return created, args.Error(1)
}

func (m *ReviewRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.Review, error) {
	args := m.Called(ctx, orderID)
	r, _ := args.Get(0).(model.Review)
	return r, args.Error(1)
}

func (m *ReviewRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Review, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.Review)
	return items, args.Error(1)
}

func (m *ReviewRepoMock) ListApprovedByProductID(ctx context.Context, productID int64) ([]model.Review, error) {
	args := m.Called(ctx, productID)
	items, _ := args.Get(0).([]model.Review)
	return items, args.Error(1)
}

func TestCreateReview_Success(t *testing.T) {
	reviews := new(ReviewRepoMock)
	orders := new(OrderRepoMock)
	audit := new(AuditRepoMock)
	uc := usecase.NewReviewUsecase(reviews, orders, audit)

	reviews.On("FindByOrderID", mock.Anything, int64(10)).Return(model.Review{}, repo.ErrNotFound)
	orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{ID: 10, UserID: 1}, nil)
	reviews.On("Create", mock.Anything, mock.MatchedBy(func(r model.Review) bool {
		return r.OrderID == 10 && r.UserID == 1 && r.Status == model.ReviewStatusApprove
	})).Return(model.Review{ID: 3, OrderID: 10, UserID: 1, Rating: 4.5}, nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.CreateReview(context.Background(), 1, usecase.CreateReviewInput{
		OrderID: 10,
		Content: "good",
		Rating:  4.5,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.ID)

	reviews.AssertExpectations(t)
}

func TestCreateReview_DuplicateOrder(t *testing.T) {
	reviews := new(ReviewRepoMock)
	uc := usecase.NewReviewUsecase(reviews, new(OrderRepoMock), new(AuditRepoMock))

	reviews.On("FindByOrderID", mock.Anything, int64(10)).Return(model.Review{ID: 3, OrderID: 10}, nil)

	_, err := uc.CreateReview(context.Background(), 1, usecase.CreateReviewInput{OrderID: 10, Rating: 4})
	assertHTTPError(t, err, 400, "review for this order is existed")
}

func TestCreateReview_NotUserOrder(t *testing.T) {
	reviews := new(ReviewRepoMock)
	orders := new(OrderRepoMock)
	uc := usecase.NewReviewUsecase(reviews, orders, new(AuditRepoMock))

	reviews.On("FindByOrderID", mock.Anything, int64(10)).Return(model.Review{}, repo.ErrNotFound)
	orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{ID: 10, UserID: 2}, nil)

	_, err := uc.CreateReview(context.Background(), 1, usecase.CreateReviewInput{OrderID: 10, Rating: 4})
	assertHTTPError(t, err, 403, "not user order")
}

func TestCreateReview_InvalidRating(t *testing.T) {
	uc := usecase.NewReviewUsecase(new(ReviewRepoMock), new(OrderRepoMock), new(AuditRepoMock))

	_, err := uc.CreateReview(context.Background(), 1, usecase.CreateReviewInput{OrderID: 10, Rating: 5.5})
	assertHTTPError(t, err, 400, "invalid rating")
}
