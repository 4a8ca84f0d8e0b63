package repository

import (
	"context"

	"shop/internal/domain/model"
)

// ユーザーの保存・取得を約束。
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//ユーザー名から1件取得する。
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	//行ロック付き取得。残高のread-check-debitはこれで守る。
	FindByIDForUpdate(ctx context.Context, userID int64) (*model.User, error)
	//残高・プロフィールなどの更新
	Update(ctx context.Context, user *model.User) error
	//全ユーザー一覧。管理画面用。
	List(ctx context.Context) ([]model.User, error)
}
