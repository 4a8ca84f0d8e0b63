package model

import "time"

// 監査ログ。「誰が」「何をしたか」を追記だけで残す。更新・削除はしない。
type AuditLog struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID int64     `gorm:"not null;index" json:"actor_user_id"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	CreatedAt   time.Time `gorm:"not null;index;autoCreateTime" json:"created_at"`
}
