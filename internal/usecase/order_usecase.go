package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderLineInput struct {
	ProductID int64 `json:"product"`
	Quantity  int64 `json:"quantity"`
}

type PlaceOrderInput struct {
	Address       string
	Note          string
	ShippingCost  decimal.Decimal
	PaymentMethod string
	Products      []OrderLineInput
	CouponCode    string
}

type OrderDetailOutput struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

type OrderOutput struct {
	ID            int64               `json:"id"`
	UserID        int64               `json:"user_id"`
	Status        string              `json:"status"`
	Price         decimal.Decimal     `json:"price"`
	PaymentMethod string              `json:"payment_method"`
	Address       string              `json:"address"`
	Note          string              `json:"note,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	Items         []OrderDetailOutput `json:"items"`
}

// PlaceOrderは注文確定処理。
// ヘッダ作成・監査ログ・明細・クーポン消費・残高減算を1トランザクションで行い、
// 途中で何か失敗したら全部戻す。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//入力チェックはトランザクションを開く前に済ませる
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "address is required")
	}
	if len(in.Products) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "products is required")
	}
	for _, line := range in.Products {
		if line.ProductID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
		}
		//0以下の数量は黙って通さず弾く
		if line.Quantity <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
	}
	if in.ShippingCost.IsNegative() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid shipping cost")
	}

	pm := model.PaymentMethodCOD
	if in.PaymentMethod != "" {
		switch model.PaymentMethod(in.PaymentMethod) {
		case model.PaymentMethodCOD, model.PaymentMethodBanking:
			pm = model.PaymentMethod(in.PaymentMethod)
		default:
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment method")
		}
	}

	var out OrderOutput

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//ヘッダを価格0で先に作る。確定金額は最後に入れる。
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:        userID,
			Price:         decimal.Zero,
			PaymentMethod: pm,
			Status:        model.OrderStatusPending,
			Address:       address,
			Note:          in.Note,
		})
		if err != nil {
			return mapStorageError(err)
		}

		//注文作成の監査ログ
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID: userID,
			Message:     "order created",
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細を書く前に全商品の価格を確定させる。
		//1つでも引けなければここで打ち切って全部戻す。
		subtotal := decimal.Zero
		products := make(map[int64]model.Product, len(in.Products))
		details := make([]model.OrderDetail, 0, len(in.Products))

		for _, line := range in.Products {
			p, err := r.Products().FindByIDAnyState(ctx, line.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusBadRequest, "product not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			//削除済み・停止中は新規注文に使えない
			if !p.Orderable() {
				return NewHTTPError(http.StatusBadRequest, "product not found")
			}

			subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(line.Quantity)))
			products[p.ID] = p
			details = append(details, model.OrderDetail{
				ProductID: p.ID,
				Quantity:  line.Quantity,
				CreatorID: userID,
			})
		}

		//残高チェック。行ロック付きで読んで同時注文の取り合いを防ぐ。
		user, err := r.Users().FindByIDForUpdate(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if user == nil {
			return NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		if user.Balance.LessThan(subtotal) {
			return NewHTTPError(http.StatusBadRequest, "account balance is insufficient")
		}

		//明細一括作成
		if err := r.OrderDetails().CreateBulk(ctx, orderID, details); err != nil {
			return mapStorageError(err)
		}

		//クーポン適用。失敗したら注文ごと戻す。
		price := subtotal
		if code := strings.TrimSpace(in.CouponCode); code != "" {
			discounted, err := applyCoupon(ctx, r, code, userID, subtotal)
			if err != nil {
				return err
			}
			price = discounted
		}

		//送料を足して確定
		price = price.Add(in.ShippingCost)

		//送料込みで残高を超えるなら確定しない
		if user.Balance.LessThan(price) {
			return NewHTTPError(http.StatusBadRequest, "account balance is insufficient")
		}

		if err := r.Orders().UpdatePrice(ctx, orderID, price); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//残高減算
		user.Balance = user.Balance.Sub(price)
		if err := r.Users().Update(ctx, user); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items := make([]OrderDetailOutput, 0, len(details))
		for _, d := range details {
			p := products[d.ProductID]
			items = append(items, OrderDetailOutput{
				ProductID: d.ProductID,
				Name:      p.Name,
				Price:     p.Price,
				Quantity:  d.Quantity,
			})
		}

		out = OrderOutput{
			ID:            orderID,
			UserID:        userID,
			Status:        string(model.OrderStatusPending),
			Price:         price,
			PaymentMethod: string(pm),
			Address:       address,
			Note:          in.Note,
			CreatedAt:     time.Now(),
			Items:         items,
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// applyCouponはコード→検証→消費記録→割引後金額まで。
// 消費記録はこの注文と同じトランザクションに乗る。
func applyCoupon(ctx context.Context, r repo.TxRepos, code string, userID int64, subtotal decimal.Decimal) (decimal.Decimal, error) {
	coupon, err := r.Coupons().FindByCode(ctx, code)
	if errors.Is(err, repo.ErrNotFound) {
		return decimal.Zero, NewHTTPError(http.StatusBadRequest, "invalid coupon code")
	}
	if err != nil {
		return decimal.Zero, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if coupon.Expired(time.Now()) {
		return decimal.Zero, NewHTTPError(http.StatusBadRequest, "coupon expired")
	}

	used, err := r.CouponUsages().Exists(ctx, coupon.ID, userID)
	if err != nil {
		return decimal.Zero, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if used {
		return decimal.Zero, NewHTTPError(http.StatusBadRequest, "coupon already used")
	}

	if err := r.CouponUsages().Create(ctx, model.CouponUsage{
		CouponID: coupon.ID,
		UserID:   userID,
	}); err != nil {
		//同時リクエストでunique制約に当たった場合もここで止まる
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return decimal.Zero, NewHTTPError(http.StatusBadRequest, "coupon already used")
		}
		return decimal.Zero, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// subtotal × (100 - discount) / 100
	rate := decimal.NewFromInt(int64(100 - coupon.Discount)).Div(decimal.NewFromInt(100))
	return subtotal.Mul(rate), nil
}

// unique違反などの整合性エラーは400、それ以外は500。
func mapStorageError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return NewHTTPError(http.StatusBadRequest, "query error")
	}
	return NewHTTPError(http.StatusInternalServerError, "db error")
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//ページングはまず固定で取る
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			out, err := buildOrderOutput(ctx, r, o)
			if err != nil {
				return err
			}
			outs = append(outs, out)
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		out, err = buildOrderOutput(ctx, r, o)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 明細と商品名を引いてレスポンス形に組み立てる。
// 商品は削除済みでも履歴として名前と当時の参照を返す。
func buildOrderOutput(ctx context.Context, r repo.TxRepos, o model.Order) (OrderOutput, error) {
	details, err := r.OrderDetails().ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]OrderDetailOutput, 0, len(details))
	for _, d := range details {
		p, err := r.Products().FindByIDAnyState(ctx, d.ProductID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		items = append(items, OrderDetailOutput{
			ProductID: d.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  d.Quantity,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		UserID:        o.UserID,
		Status:        string(o.Status),
		Price:         o.Price,
		PaymentMethod: string(o.PaymentMethod),
		Address:       o.Address,
		Note:          o.Note,
		CreatedAt:     o.CreatedAt,
		Items:         items,
	}, nil
}
