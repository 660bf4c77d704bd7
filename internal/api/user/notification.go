package user

import (
	"strconv"

	"social-backend/internal/errors"
	"social-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationHandler 处理站内通知相关的HTTP请求
type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService}
}

// List 返回当前用户的通知，最新的在前
func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.GetInt("user_id")

	notifications, err := h.notificationService.List(userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"notifications": notifications,
	}, "")
}

// MarkRead 将指定通知标记为已读
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.GetInt("user_id")

	notificationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的通知ID", err))
		return
	}

	if err := h.notificationService.MarkRead(userID, notificationID); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "通知已标记为已读")
}
