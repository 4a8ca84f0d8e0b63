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

func newAdminOrderUC(s *txReposStub) *usecase.AdminOrderUsecase {
	return usecase.NewAdminOrderUsecase(&txManagerStub{repos: s}, s.audits)
}

func TestAdminUpdateStatus_PendingToDone(t *testing.T) {
	s := newTxReposStub()
	uc := newAdminOrderUC(s)

	s.orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{ID: 10, Status: model.OrderStatusPending}, nil)
	s.orders.On("UpdateStatus", mock.Anything, int64(10), model.OrderStatusDone).Return(nil)
	s.audits.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.ActorUserID == 99 && l.Message == "order 10 status PENDING -> DONE"
	})).Return(nil)

	err := uc.UpdateStatus(context.Background(), 99, 10, usecase.AdminUpdateOrderStatusInput{Status: "DONE"})
	assert.NoError(t, err)

	s.orders.AssertExpectations(t)
	s.audits.AssertExpectations(t)
}

// DONEに入った注文は戻せない
func TestAdminUpdateStatus_DoneIsTerminal(t *testing.T) {
	s := newTxReposStub()
	uc := newAdminOrderUC(s)

	s.orders.On("FindByID", mock.Anything, int64(11)).Return(model.Order{ID: 11, Status: model.OrderStatusDone}, nil)

	err := uc.UpdateStatus(context.Background(), 99, 11, usecase.AdminUpdateOrderStatusInput{Status: "PENDING"})
	assertHTTPError(t, err, 400, "cannot change done order")

	s.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// 同じステータスへの更新は何もせず成功扱い
func TestAdminUpdateStatus_SameStatusIsNoop(t *testing.T) {
	s := newTxReposStub()
	uc := newAdminOrderUC(s)

	s.orders.On("FindByID", mock.Anything, int64(12)).Return(model.Order{ID: 12, Status: model.OrderStatusDone}, nil)

	err := uc.UpdateStatus(context.Background(), 99, 12, usecase.AdminUpdateOrderStatusInput{Status: "DONE"})
	assert.NoError(t, err)

	s.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	s.audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminUpdateStatus_UnknownStatus(t *testing.T) {
	s := newTxReposStub()
	uc := newAdminOrderUC(s)

	err := uc.UpdateStatus(context.Background(), 99, 13, usecase.AdminUpdateOrderStatusInput{Status: "SHIPPED"})
	assertHTTPError(t, err, 400, "invalid status")
}

func TestAdminUpdateStatus_OrderNotFound(t *testing.T) {
	s := newTxReposStub()
	uc := newAdminOrderUC(s)

	s.orders.On("FindByID", mock.Anything, int64(404)).Return(model.Order{}, repo.ErrNotFound)

	err := uc.UpdateStatus(context.Background(), 99, 404, usecase.AdminUpdateOrderStatusInput{Status: "DONE"})
	assertHTTPError(t, err, 400, "order not found")
}

func TestAdminList_InvalidPage(t *testing.T) {
	s := newTxReposStub()
	uc := newAdminOrderUC(s)

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 0, Limit: 20})
	assertHTTPError(t, err, 400, "invalid page")
}

func TestAdminList_Success(t *testing.T) {
	s := newTxReposStub()
	uc := newAdminOrderUC(s)

	orders := []model.Order{
		{ID: 1, UserID: 5, Status: model.OrderStatusPending, Price: dec(1000)},
	}
	s.orders.On("ListAdmin", mock.Anything, mock.Anything).Return(orders, int64(1), nil)
	s.details.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderDetail{
		{OrderID: 1, ProductID: 101, Quantity: 1},
	}, nil)
	s.products.On("FindByIDAnyState", mock.Anything, int64(101)).Return(activeProduct(101, 1000), nil)

	outs, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 1, Limit: 20})
	assert.NoError(t, err)
	assert.Len(t, outs, 1)
	assert.Equal(t, int64(5), outs[0].UserID)
	assert.Len(t, outs[0].Items, 1)
}

func TestAdminListAuditLogs(t *testing.T) {
	s := newTxReposStub()
	uc := newAdminOrderUC(s)

	logs := []model.AuditLog{
		{ID: 1, ActorUserID: 99, Message: "order created"},
	}
	s.audits.On("List", mock.Anything, mock.Anything).Return(logs, nil)

	out, err := uc.ListAuditLogs(context.Background(), repo.AuditLogFilter{Limit: 50})
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "order created", out[0].Message)
}

func TestParseDateTimeRFC3339(t *testing.T) {
	_, ok := usecase.ParseDateTimeRFC3339("")
	assert.False(t, ok)

	_, ok = usecase.ParseDateTimeRFC3339("2026-13-01")
	assert.False(t, ok)

	ts, ok := usecase.ParseDateTimeRFC3339("2026-08-01T00:00:00Z")
	assert.True(t, ok)
	assert.Equal(t, 2026, ts.Year())
}
