package service

import (
	"social-backend/internal/errors"
	"social-backend/internal/model"
	"social-backend/internal/repository/interfaces"
	"social-backend/internal/util"
	"time"

	"go.uber.org/zap"
)

// NotificationService 管理用户的站内通知
type NotificationService struct {
	userRepo interfaces.UserRepository
}

func NewNotificationService(userRepo interfaces.UserRepository) *NotificationService {
	return &NotificationService{userRepo: userRepo}
}

// Notify 给指定用户追加一条通知。
// 用户给自己的内容做出的操作不产生通知。
func (s *NotificationService) Notify(toUserID, fromUserID int, notificationType string, entityID *int) error {
	if toUserID == fromUserID {
		return nil
	}

	// 通知编号在仓库锁内分配，并发通知不会分到同一个编号
	found, err := s.userRepo.Mutate(toUserID, func(user *model.User) error {
		nextID := 1
		for _, n := range user.Notifications {
			if n.ID >= nextID {
				nextID = n.ID + 1
			}
		}

		user.Notifications = append(user.Notifications, model.Notification{
			ID:         nextID,
			Type:       notificationType,
			FromUserID: fromUserID,
			EntityID:   entityID,
			CreatedAt:  time.Now(),
		})
		return nil
	})
	if err != nil {
		return err
	}
	if !found {
		return errors.New(errors.ErrUserNotFound, "用户不存在")
	}

	util.Logger.Info("通知已创建",
		zap.Int("to_user_id", toUserID),
		zap.Int("from_user_id", fromUserID),
		zap.String("type", notificationType))
	return nil
}

// List 返回用户的全部通知，最新的在前
func (s *NotificationService) List(userID int) ([]model.Notification, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}

	notifications := make([]model.Notification, 0, len(user.Notifications))
	for i := len(user.Notifications) - 1; i >= 0; i-- {
		notifications = append(notifications, user.Notifications[i])
	}
	return notifications, nil
}

// MarkRead 将指定通知标记为已读
func (s *NotificationService) MarkRead(userID, notificationID int) error {
	found, err := s.userRepo.Mutate(userID, func(user *model.User) error {
		for i := range user.Notifications {
			if user.Notifications[i].ID == notificationID {
				user.Notifications[i].Read = true
				return nil
			}
		}
		return errors.New(errors.ErrNotificationNotFound, "通知不存在")
	})
	if err != nil {
		return err
	}
	if !found {
		return errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	return nil
}
