package repository

import (
	"context"

	"github.com/IcaroDrumond17/onhappy/internal/domain/model"
)

// 通知の保存・取得の約束。
type NotificationRepository interface {
	//通知を1件保存
	Create(ctx context.Context, n *model.Notification) error

	//受信者の通知一覧（未読が先、各グループ内は新しい順）
	ListByUserID(ctx context.Context, userID int64) ([]model.Notification, error)

	//IDで1件取得
	FindByID(ctx context.Context, notificationID int64) (model.Notification, error)

	//viewedをtrueにする
	MarkViewed(ctx context.Context, notificationID int64) error
}
