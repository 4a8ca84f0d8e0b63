package main

import (
	"log"
	"time"

	"shop/internal/config"
	"shop/internal/domain/model"
	"shop/internal/handler"
	"shop/internal/infra/cache"
	"shop/internal/infra/db"
	infraRepo "shop/internal/infra/repository"
	"shop/internal/server"
	"shop/internal/usecase"
	"shop/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envはローカル開発用。無ければ環境変数だけで動く。
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderDetail{},
		&model.Coupon{},
		&model.CouponUsage{},
		&model.CartItem{},
		&model.FavoriteProduct{},
		&model.Review{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	favoriteRepo := infraRepo.NewFavoriteGormRepository(gormDB)
	couponRepo := infraRepo.NewCouponGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//商品キャッシュ（REDIS_ADDRが空ならnilのまま動く）
	var productCache *cache.ProductCache
	if cfg.RedisAddr != "" {
		productCache = cache.NewProductCache(cache.NewRedisClient(cfg.RedisAddr), 5*time.Minute)
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, auditRepo, validator.NewAuthValidator(), txManager)
	productUC := usecase.NewProductUsecase(productRepo, auditRepo, productCache)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	favoriteUC := usecase.NewFavoriteUsecase(favoriteRepo, productRepo)
	couponUC := usecase.NewCouponUsecase(couponRepo, auditRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, orderRepo, auditRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, auditRepo)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo, auditRepo, validator.NewAuthValidator())

	//Handler生成
	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Product:      handler.NewProductHandler(productUC),
		Category:     handler.NewCategoryHandler(categoryUC),
		Cart:         handler.NewCartHandler(cartUC),
		Favorite:     handler.NewFavoriteHandler(favoriteUC),
		Coupon:       handler.NewCouponHandler(couponUC),
		Order:        handler.NewOrderHandler(orderUC),
		Review:       handler.NewReviewHandler(reviewUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		AdminUser:    handler.NewAdminUserHandler(adminUserUC),
	}

	//Server起動
	e := server.New(cfg, handlers, userRepo)
	if err := server.Start(e, cfg.Port); err != nil {
		log.Fatal(err)
	}
}
