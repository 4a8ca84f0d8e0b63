package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleStaff    Role = "STAFF"
	RoleAdmin    Role = "ADMIN"
)

// スタッフ以上（STAFFまたはADMIN）かどうか。
// 旧仕様のstaff/superuserフラグは「どちらか片方あれば可」に統一した。
func (r Role) IsElevated() bool {
	return r == RoleStaff || r == RoleAdmin
}

type User struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string          `gorm:"type:varchar(255)" json:"name"`
	Email        string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username     string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string          `gorm:"column:password_hash;not null" json:"-"`
	Phone        string          `gorm:"type:varchar(15)" json:"phone"`
	Address      string          `gorm:"type:text" json:"address"`
	DateOfBirth  *time.Time      `json:"date_of_birth"`
	Balance      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"balance"`
	Role         Role            `gorm:"type:varchar(20);not null;default:'CUSTOMER'" json:"role"`
	IsActive     bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
