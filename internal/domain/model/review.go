package model

import "time"

type ReviewStatus string

const (
	ReviewStatusPending ReviewStatus = "PENDING"
	ReviewStatusApprove ReviewStatus = "APPROVE"
)

type Review struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	//1注文につきレビューは1件だけ。
	OrderID   int64        `gorm:"not null;uniqueIndex" json:"order_id"`
	UserID    int64        `gorm:"not null;index" json:"user_id"`
	Content   string       `gorm:"type:text" json:"content"`
	Rating    float64      `gorm:"not null" json:"rating"`
	Status    ReviewStatus `gorm:"type:varchar(10);not null;default:'PENDING'" json:"status"`
	CreatedAt time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
