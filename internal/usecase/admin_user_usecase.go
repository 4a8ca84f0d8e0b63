package usecase

import (
	"context"
	"net/http"
	"time"

	"shop/internal/domain/model"
	"shop/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// スタッフ向けのユーザー管理。
// 削除は物理削除ではなくis_activeを落とすだけ。ログインできなくなる。
type AdminUserUsecase struct {
	users     repository.UserRepository
	audit     repository.AuditLogRepository
	validator AuthValidator
}

func NewAdminUserUsecase(
	users repository.UserRepository,
	audit repository.AuditLogRepository,
	validator AuthValidator,
) *AdminUserUsecase {
	return &AdminUserUsecase{
		users:     users,
		audit:     audit,
		validator: validator,
	}
}

type AdminUserCreateRequest struct {
	AuthRegisterRequest
	Role string `json:"role"`
}

type AdminUserUpdateInput struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	DateOfBirth *string `json:"date_of_birth"`
	Role        *string `json:"role"`
	IsActive    *bool   `json:"is_active"`
}

func parseRole(s string) (model.Role, bool) {
	switch model.Role(s) {
	case model.RoleCustomer, model.RoleStaff, model.RoleAdmin:
		return model.Role(s), true
	}
	return "", false
}

func (u *AdminUserUsecase) ListUsers(ctx context.Context) ([]UserDTO, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, toUserDTO(&users[i]))
	}
	return out, nil
}

// 管理画面からのユーザー作成。セルフ登録と違ってロールを指定できる。
func (u *AdminUserUsecase) CreateUser(ctx context.Context, adminUserID int64, req AdminUserCreateRequest) (*UserDTO, error) {
	if err := u.validator.ValidateRegister(ctx, req.AuthRegisterRequest); err != nil {
		return nil, err
	}
	if req.Role == "" {
		return nil, NewFieldErrors(map[string]string{"role": "This field is required"})
	}
	role, ok := parseRole(req.Role)
	if !ok {
		return nil, NewFieldErrors(map[string]string{"role": "Invalid role"})
	}

	existing, err := u.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "username is existed")
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		t, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, NewFieldErrors(map[string]string{"date_of_birth": "Invalid date format"})
		}
		dob = &t
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(pwHash),
		Phone:        req.Phone,
		Address:      req.Address,
		DateOfBirth:  dob,
		Balance:      initialBalance,
		Role:         role,
		IsActive:     true,
	}

	if err := u.users.Create(ctx, user); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "query error")
	}

	if err := u.audit.Create(ctx, model.AuditLog{
		ActorUserID: adminUserID,
		Message:     "user " + user.Username + " created",
	}); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dto := toUserDTO(user)
	return &dto, nil
}

func (u *AdminUserUsecase) GetUser(ctx context.Context, userID int64) (*UserDTO, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return nil, NewHTTPError(http.StatusNotFound, "user not found")
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// 部分更新。渡ってきたフィールドだけ書き換える。
func (u *AdminUserUsecase) UpdateUser(ctx context.Context, adminUserID int64, userID int64, in AdminUserUpdateInput) (*UserDTO, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return nil, NewHTTPError(http.StatusNotFound, "user not found")
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Password != nil {
		pwHash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		user.PasswordHash = string(pwHash)
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.DateOfBirth != nil {
		t, err := time.Parse("2006-01-02", *in.DateOfBirth)
		if err != nil {
			return nil, NewFieldErrors(map[string]string{"date_of_birth": "Invalid date format"})
		}
		user.DateOfBirth = &t
	}
	if in.Role != nil {
		role, ok := parseRole(*in.Role)
		if !ok {
			return nil, NewFieldErrors(map[string]string{"role": "Invalid role"})
		}
		user.Role = role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := u.users.Update(ctx, user); err != nil {
		// email等のunique違反はここ
		return nil, NewHTTPError(http.StatusBadRequest, "query error")
	}

	if err := u.audit.Create(ctx, model.AuditLog{
		ActorUserID: adminUserID,
		Message:     "user " + user.Username + " updated",
	}); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// 無効化。行は残すのでログイン拒否の判定に使える。
func (u *AdminUserUsecase) DeactivateUser(ctx context.Context, adminUserID int64, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return NewHTTPError(http.StatusNotFound, "user not found")
	}

	user.IsActive = false
	if err := u.users.Update(ctx, user); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.audit.Create(ctx, model.AuditLog{
		ActorUserID: adminUserID,
		Message:     "user " + user.Username + " deactivated",
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
