package validator

import (
	"context"
	"net/mail"
	"strings"

	"shop/internal/usecase"
)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// サインアップの入力を検証。
// 欠けているフィールドはまとめてフィールド名→メッセージで返す。
func (v *authValidator) ValidateRegister(ctx context.Context, req usecase.AuthRegisterRequest) error {
	fields := map[string]string{}

	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "This field is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "This field is required"
	}
	if strings.TrimSpace(req.Username) == "" {
		fields["username"] = "This field is required"
	}
	if req.Password == "" {
		fields["password"] = "This field is required"
	}
	if strings.TrimSpace(req.Phone) == "" {
		fields["phone"] = "This field is required"
	}
	if strings.TrimSpace(req.Address) == "" {
		fields["address"] = "This field is required"
	}
	if strings.TrimSpace(req.DateOfBirth) == "" {
		fields["date_of_birth"] = "This field is required"
	}

	if len(fields) > 0 {
		return usecase.NewFieldErrors(fields)
	}

	// email形式
	if !isEmailLike(req.Email) {
		return usecase.NewFieldErrors(map[string]string{"email": "Invalid email format"})
	}

	// パスワード最低文字数（MVP: 8）
	if len(req.Password) < 8 {
		return usecase.NewFieldErrors(map[string]string{"password": "Password must be at least 8 characters"})
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, username string, password string) error {
	fields := map[string]string{}

	if strings.TrimSpace(username) == "" {
		fields["username"] = "This field is required"
	}
	if password == "" {
		fields["password"] = "This field is required"
	}

	if len(fields) > 0 {
		return usecase.NewFieldErrors(fields)
	}

	return nil
}

func isEmailLike(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}
