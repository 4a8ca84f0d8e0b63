package middleware

import (
	"net/http"

	"shop/internal/repository"

	"github.com/labstack/echo/v4"
)

// DBに保存されたroleがSTAFF以上かを確認する。
// tokenのrole claimではなくDBの値を正とする。
// STAFFかADMINのどちらかであれば通す（両方は要求しない）。
func StaffRoleGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する
			rawUserID := c.Get(CtxUserIDKey)
			userID, ok := rawUserID.(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//DBから最新のuserを取得する
			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil || user == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if !user.IsActive {
				return c.JSON(http.StatusForbidden, errorJSON("access denied"))
			}

			//CUSTOMERは拒否
			if !user.Role.IsElevated() {
				return c.JSON(http.StatusForbidden, errorJSON("access denied"))
			}

			return next(c)
		}
	}
}
