package usecase_test

import (
	"context"
	"testing"

	"shop/internal/domain/model"
	"shop/internal/usecase"
	"shop/internal/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAdminUserUC(users *UserRepoMock, audit *AuditRepoMock) *usecase.AdminUserUsecase {
	return usecase.NewAdminUserUsecase(users, audit, validator.NewAuthValidator())
}

func validAdminUserCreateRequest() usecase.AdminUserCreateRequest {
	return usecase.AdminUserCreateRequest{
		AuthRegisterRequest: validRegisterRequest(),
		Role:                "STAFF",
	}
}

func TestAdminListUsers(t *testing.T) {
	users := new(UserRepoMock)
	uc := newAdminUserUC(users, new(AuditRepoMock))

	users.On("List", mock.Anything).Return([]model.User{
		{ID: 1, Username: "taro", Role: model.RoleCustomer},
		{ID: 2, Username: "staff", Role: model.RoleStaff},
	}, nil)

	out, err := uc.ListUsers(context.Background())
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "taro", out[0].Username)
	assert.Equal(t, "STAFF", out[1].Role)
}

func TestAdminCreateUser_Success(t *testing.T) {
	users := new(UserRepoMock)
	audit := new(AuditRepoMock)
	uc := newAdminUserUC(users, audit)

	users.On("FindByUsername", mock.Anything, "taro").Return(nil, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		//指定ロールで作られ、パスワードは平文で残らないこと
		return u.Role == model.RoleStaff &&
			u.IsActive &&
			u.Balance.Equal(decimal.NewFromInt(1_000_000)) &&
			u.PasswordHash != "password123" &&
			u.PasswordHash != ""
	})).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.CreateUser(context.Background(), 99, validAdminUserCreateRequest())
	assert.NoError(t, err)
	assert.Equal(t, "taro", out.Username)
	assert.Equal(t, "STAFF", out.Role)

	users.AssertExpectations(t)
}

func TestAdminCreateUser_DuplicateUsername(t *testing.T) {
	users := new(UserRepoMock)
	uc := newAdminUserUC(users, new(AuditRepoMock))

	users.On("FindByUsername", mock.Anything, "taro").Return(&model.User{ID: 1, Username: "taro"}, nil)

	_, err := uc.CreateUser(context.Background(), 99, validAdminUserCreateRequest())
	assertHTTPError(t, err, 400, "username is existed")

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminCreateUser_MissingRole(t *testing.T) {
	uc := newAdminUserUC(new(UserRepoMock), new(AuditRepoMock))

	req := validAdminUserCreateRequest()
	req.Role = ""

	_, err := uc.CreateUser(context.Background(), 99, req)

	fe, ok := usecase.AsFieldErrors(err)
	if !ok {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	assert.Equal(t, "This field is required", fe.Fields["role"])
}

func TestAdminCreateUser_InvalidRole(t *testing.T) {
	uc := newAdminUserUC(new(UserRepoMock), new(AuditRepoMock))

	req := validAdminUserCreateRequest()
	req.Role = "SUPERUSER"

	_, err := uc.CreateUser(context.Background(), 99, req)

	fe, ok := usecase.AsFieldErrors(err)
	if !ok {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	assert.Equal(t, "Invalid role", fe.Fields["role"])
}

// 渡したフィールドだけ更新される
func TestAdminUpdateUser_PartialFields(t *testing.T) {
	users := new(UserRepoMock)
	audit := new(AuditRepoMock)
	uc := newAdminUserUC(users, audit)

	users.On("FindByID", mock.Anything, int64(2)).Return(&model.User{
		ID:       2,
		Name:     "old name",
		Username: "hanako",
		Phone:    "0000",
		Role:     model.RoleCustomer,
		IsActive: true,
	}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Name == "new name" && u.Role == model.RoleStaff && u.Phone == "0000"
	})).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	name := "new name"
	role := "STAFF"
	out, err := uc.UpdateUser(context.Background(), 99, 2, usecase.AdminUserUpdateInput{
		Name: &name,
		Role: &role,
	})
	assert.NoError(t, err)
	assert.Equal(t, "new name", out.Name)
	assert.Equal(t, "STAFF", out.Role)

	users.AssertExpectations(t)
}

func TestAdminUpdateUser_RehashesPassword(t *testing.T) {
	users := new(UserRepoMock)
	audit := new(AuditRepoMock)
	uc := newAdminUserUC(users, audit)

	users.On("FindByID", mock.Anything, int64(2)).Return(&model.User{
		ID:           2,
		Username:     "hanako",
		PasswordHash: "old-hash",
		IsActive:     true,
	}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.PasswordHash != "old-hash" && u.PasswordHash != "newpassword1"
	})).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	pw := "newpassword1"
	_, err := uc.UpdateUser(context.Background(), 99, 2, usecase.AdminUserUpdateInput{Password: &pw})
	assert.NoError(t, err)

	users.AssertExpectations(t)
}

func TestAdminUpdateUser_NotFound(t *testing.T) {
	users := new(UserRepoMock)
	uc := newAdminUserUC(users, new(AuditRepoMock))

	users.On("FindByID", mock.Anything, int64(404)).Return(nil, nil)

	name := "x"
	_, err := uc.UpdateUser(context.Background(), 99, 404, usecase.AdminUserUpdateInput{Name: &name})
	assertHTTPError(t, err, 404, "user not found")
}

// 削除はis_activeを落とすだけ。行は消さない
func TestAdminDeactivateUser(t *testing.T) {
	users := new(UserRepoMock)
	audit := new(AuditRepoMock)
	uc := newAdminUserUC(users, audit)

	users.On("FindByID", mock.Anything, int64(2)).Return(&model.User{
		ID:       2,
		Username: "hanako",
		IsActive: true,
	}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.ID == 2 && !u.IsActive
	})).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := uc.DeactivateUser(context.Background(), 99, 2)
	assert.NoError(t, err)

	users.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAdminDeactivateUser_NotFound(t *testing.T) {
	users := new(UserRepoMock)
	uc := newAdminUserUC(users, new(AuditRepoMock))

	users.On("FindByID", mock.Anything, int64(404)).Return(nil, nil)

	err := uc.DeactivateUser(context.Background(), 99, 404)
	assertHTTPError(t, err, 404, "user not found")
}
