package model

import (
	"time"

	"gorm.io/gorm"
)

// ステータス更新の副作用としてだけ作られる。
// ユーザーが直接作ることはない。
type Notification struct {
	ID                  int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64          `gorm:"not null;index" json:"order_id"`
	UserID              int64          `gorm:"not null;index" json:"user_id"`
	NotificationMessage string         `gorm:"column:notification_message;type:varchar(255);not null" json:"notification_message"`
	Viewed              bool           `gorm:"not null;default:false" json:"viewed"`
	CreatedAt           time.Time      `gorm:"not null;index;autoCreateTime" json:"created_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}
