package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shop/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// 商品詳細のread-throughキャッシュ。
// Redisが落ちていてもエラーにせず、素通しでDBに行く。
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, ttl: ttl}
}

func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

func (c *ProductCache) key(productID int64) string {
	return fmt.Sprintf("product:%d", productID)
}

func (c *ProductCache) Get(ctx context.Context, productID int64) (model.Product, bool) {
	if c == nil || c.client == nil {
		return model.Product{}, false
	}

	raw, err := c.client.Get(ctx, c.key(productID)).Result()
	if err != nil {
		return model.Product{}, false
	}

	var p model.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return model.Product{}, false
	}
	return p, true
}

func (c *ProductCache) Set(ctx context.Context, p model.Product) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	//書き込み失敗は無視（キャッシュなので）
	c.client.Set(ctx, c.key(p.ID), data, c.ttl)
}

// 商品更新・削除時に古い値を消す。
func (c *ProductCache) Invalidate(ctx context.Context, productID int64) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, c.key(productID))
}
