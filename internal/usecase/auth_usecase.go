package usecase

import (
	"context"
	"net/http"
	"time"

	"shop/internal/config"
	"shop/internal/domain/model"
	"shop/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 60 * time.Minute

// 新規ユーザーの初期残高
var initialBalance = decimal.NewFromInt(1_000_000)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, req AuthRegisterRequest) error
	ValidateLogin(ctx context.Context, username string, password string) error
}

type UserDTO struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Username string          `json:"username"`
	Phone    string          `json:"phone"`
	Address  string          `json:"address"`
	Balance  decimal.Decimal `json:"balance"`
	Role     string          `json:"role"`
	IsActive bool            `json:"is_active"`
}

type AuthRegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DateOfBirth string `json:"date_of_birth"`
	Image       string `json:"image"`
}

type AuthRegisterResponse struct {
	Detail string  `json:"detail"`
	User   UserDTO `json:"user"`
}

type AuthLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthLoginResponse struct {
	JWT       string  `json:"jwt"`
	UserID    int64   `json:"user_id"`
	Detail    string  `json:"detail"`
	Role      string  `json:"role"`
	ExpiresIn int     `json:"expires_in"`
	User      UserDTO `json:"user"`
}

type TopUpBalanceResponse struct {
	UserID  int64           `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

type AuthUsecase struct {
	cfg       config.Config
	users     repository.UserRepository
	audit     repository.AuditLogRepository
	validator AuthValidator
	tx        repository.TransactionManager
}

func NewAuthUsecase(
	cfg config.Config,
	users repository.UserRepository,
	audit repository.AuditLogRepository,
	validator AuthValidator,
	tx repository.TransactionManager,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		audit:     audit,
		validator: validator,
		tx:        tx,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, req AuthRegisterRequest) (*AuthRegisterResponse, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, req); err != nil {
		return nil, err
	}

	//username重複チェック
	existing, err := u.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "username is existed")
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
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

	//ユーザー作成。残高は初期額から始まる。
	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(pwHash),
		Phone:        req.Phone,
		Address:      req.Address,
		DateOfBirth:  dob,
		Balance:      initialBalance,
		Role:         model.RoleCustomer,
		IsActive:     true,
	}

	if err := u.users.Create(ctx, user); err != nil {
		// email等のunique違反はここ
		return nil, NewHTTPError(http.StatusBadRequest, "query error")
	}

	if err := u.audit.Create(ctx, model.AuditLog{
		ActorUserID: user.ID,
		Message:     "user " + user.Username + " registered",
	}); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return &AuthRegisterResponse{
		Detail: "User created successfully",
		User:   toUserDTO(user),
	}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest) (*AuthLoginResponse, error) {
	if err := u.validator.ValidateLogin(ctx, req.Username, req.Password); err != nil {
		return nil, err
	}

	user, err := u.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "incorrect password")
	}

	if !user.IsActive {
		return nil, NewHTTPError(http.StatusUnauthorized, "username or password is invalid")
	}

	token, expiresIn, err := u.issueAccessToken(user)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &AuthLoginResponse{
		JWT:       token,
		UserID:    user.ID,
		Detail:    "Login successfully",
		Role:      string(user.Role),
		ExpiresIn: expiresIn,
		User:      toUserDTO(user),
	}, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (*UserDTO, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// 残高チャージ。正の金額だけ受け付ける。
// 注文の減算と同じ行ロックの中で読んで足す。
// ロック無しのread-add-saveだと、同時に走った注文の減算をSaveで上書きしてしまう。
func (u *AuthUsecase) TopUpBalance(ctx context.Context, userID int64, amount decimal.Decimal) (*TopUpBalanceResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !amount.IsPositive() {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid amount")
	}

	var out *TopUpBalanceResponse

	err := u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		user, err := r.Users().FindByIDForUpdate(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if user == nil {
			return NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}

		user.Balance = user.Balance.Add(amount)
		if err := r.Users().Update(ctx, user); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID: user.ID,
			Message:     "balance topped up by " + amount.String(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = &TopUpBalanceResponse{
			UserID:  user.ID,
			Balance: user.Balance,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

// jwt発行
func (u *AuthUsecase) issueAccessToken(user *model.User) (string, int, error) {
	now := time.Now()
	exp := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}

	return signed, int(accessTokenTTL.Seconds()), nil
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Username: u.Username,
		Phone:    u.Phone,
		Address:  u.Address,
		Balance:  u.Balance,
		Role:     string(u.Role),
		IsActive: u.IsActive,
	}
}
