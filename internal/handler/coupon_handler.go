package handler

import (
	"net/http"
	"time"

	"shop/internal/config"
	"shop/internal/middleware"
	"shop/internal/repository"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CouponHandler struct {
	uc *usecase.CouponUsecase
}

func NewCouponHandler(uc *usecase.CouponUsecase) *CouponHandler {
	return &CouponHandler{uc: uc}
}

type couponCreateRequest struct {
	Code       string `json:"code"`
	Discount   int    `json:"discount"`
	ExpiryDate string `json:"expiry_date"`
}

func (h *CouponHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	e.GET("/coupons", h.list)
	e.GET("/coupons/:code", h.detail)

	//作成はスタッフ・管理者のみ
	g := e.Group("/admin/coupons")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.StaffRoleGuard(userRepo))
	g.POST("", h.create)
}

func (h *CouponHandler) list(c echo.Context) error {
	out, err := h.uc.ListCoupons(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CouponHandler) detail(c echo.Context) error {
	out, err := h.uc.GetCouponByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CouponHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req couponCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	expiry, err := time.Parse(time.RFC3339, req.ExpiryDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid expiry_date"})
	}

	out, err := h.uc.CreateCoupon(c.Request().Context(), userID, usecase.CreateCouponInput{
		Code:       req.Code,
		Discount:   req.Discount,
		ExpiryDate: expiry,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
