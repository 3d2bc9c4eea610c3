package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/IcaroDrumond17/onhappy/internal/domain/model"
	repo "github.com/IcaroDrumond17/onhappy/internal/repository"
)

type NotificationUsecase struct {
	notifications repo.NotificationRepository
	logger        *slog.Logger
}

func NewNotificationUsecase(notifications repo.NotificationRepository, logger *slog.Logger) *NotificationUsecase {
	return &NotificationUsecase{notifications: notifications, logger: logger}
}

// 自分宛ての通知一覧（未読が先、各グループ内は新しい順）
func (u *NotificationUsecase) List(ctx context.Context, caller Caller) ([]model.Notification, error) {
	items, err := u.notifications.ListByUserID(ctx, caller.ID)
	if err != nil {
		u.logger.Error("erro ao listar notificações", slog.Int64("user_id", caller.ID), slog.Any("error", err))
		return []model.Notification{}, NewHTTPError(http.StatusInternalServerError, "Erro ao listar notificações.")
	}
	return items, nil
}

// viewedをtrueにする。
// 他人の通知は「存在しない扱い」で404（403は返さない）。
func (u *NotificationUsecase) MarkViewed(ctx context.Context, caller Caller, notificationID int64) (model.Notification, error) {
	n, err := u.notifications.FindByID(ctx, notificationID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Notification{}, NewHTTPError(http.StatusNotFound, "Notificação não encontrada.")
	}
	if err != nil {
		u.logger.Error("erro ao marcar notificação", slog.Int64("notification_id", notificationID), slog.Int64("user_id", caller.ID), slog.Any("error", err))
		return model.Notification{}, NewHTTPError(http.StatusInternalServerError, "Erro ao marcar notificação.")
	}

	if n.UserID != caller.ID {
		return model.Notification{}, NewHTTPError(http.StatusNotFound, "Notificação não encontrada.")
	}

	if err := u.notifications.MarkViewed(ctx, notificationID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Notification{}, NewHTTPError(http.StatusNotFound, "Notificação não encontrada.")
		}
		u.logger.Error("erro ao marcar notificação", slog.Int64("notification_id", notificationID), slog.Int64("user_id", caller.ID), slog.Any("error", err))
		return model.Notification{}, NewHTTPError(http.StatusInternalServerError, "Erro ao marcar notificação.")
	}

	n.Viewed = true
	return n, nil
}
