package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shop/internal/domain/model"
	"shop/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// StaffRoleGuardを通す。userIDが0なら未認証扱い。
func runStaffGuard(t *testing.T, userRepo *MockUserRepoForMiddleware, userID int64) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID > 0 {
		c.Set(middleware.CtxUserIDKey, userID)
	}

	mw := middleware.StaffRoleGuard(userRepo)
	h := mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"detail": "ok"})
	})

	if err := h(c); err != nil {
		t.Fatal(err)
	}
	return rec
}

func guardErr(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body mwErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	return body.Error
}

func TestStaffRoleGuard_StaffPasses(t *testing.T) {
	repo := new(MockUserRepoForMiddleware)
	repo.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Role: model.RoleStaff, IsActive: true}, nil)

	rec := runStaffGuard(t, repo, 1)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStaffRoleGuard_AdminPasses(t *testing.T) {
	repo := new(MockUserRepoForMiddleware)
	repo.On("FindByID", mock.Anything, int64(2)).Return(&model.User{ID: 2, Role: model.RoleAdmin, IsActive: true}, nil)

	rec := runStaffGuard(t, repo, 2)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// STAFFでもADMINでもない一般ユーザーは403
func TestStaffRoleGuard_CustomerDenied(t *testing.T) {
	repo := new(MockUserRepoForMiddleware)
	repo.On("FindByID", mock.Anything, int64(3)).Return(&model.User{ID: 3, Role: model.RoleCustomer, IsActive: true}, nil)

	rec := runStaffGuard(t, repo, 3)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "access denied", guardErr(t, rec))
}

func TestStaffRoleGuard_InactiveStaffDenied(t *testing.T) {
	repo := new(MockUserRepoForMiddleware)
	repo.On("FindByID", mock.Anything, int64(4)).Return(&model.User{ID: 4, Role: model.RoleStaff, IsActive: false}, nil)

	rec := runStaffGuard(t, repo, 4)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "access denied", guardErr(t, rec))
}

func TestStaffRoleGuard_NoUserIDInContext(t *testing.T) {
	repo := new(MockUserRepoForMiddleware)

	rec := runStaffGuard(t, repo, 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// tokenのrole claimがADMINでもDBがCUSTOMERなら拒否する
func TestStaffRoleGuard_DBRoleWins(t *testing.T) {
	repo := new(MockUserRepoForMiddleware)
	repo.On("FindByID", mock.Anything, int64(5)).Return(&model.User{ID: 5, Role: model.RoleCustomer, IsActive: true}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserIDKey, int64(5))
	c.Set(middleware.CtxUserRoleKey, "ADMIN")

	mw := middleware.StaffRoleGuard(repo)
	h := mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"detail": "ok"})
	})
	assert.NoError(t, h(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
