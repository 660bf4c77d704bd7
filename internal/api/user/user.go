package user

import (
	"strconv"

	"social-backend/internal/errors"
	"social-backend/internal/service"
	"social-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler 处理公开用户资料和好友关系相关的HTTP请求
type UserHandler struct {
	userService   *service.UserService
	friendService *service.FriendService
}

func NewUserHandler(userService *service.UserService, friendService *service.FriendService) *UserHandler {
	return &UserHandler{userService, friendService}
}

// SearchUsers 按关键字搜索用户，q 为空时返回空列表
func (h *UserHandler) SearchUsers(c *gin.Context) {
	users, err := h.userService.SearchUsers(c.Query("q"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"users": users,
	}, "")
}

// GetUser 返回用户的公开资料
func (h *UserHandler) GetUser(c *gin.Context) {
	targetID, ok := pathUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(targetID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	// 通知是私有数据，公开资料中不返回
	user.Notifications = nil

	errors.HandleSuccess(c, gin.H{
		"user": user,
	}, "")
}

// GetUserProfile 返回用户的公开资料和好友列表
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	targetID, ok := pathUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(targetID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	user.Notifications = nil

	friends, err := h.friendService.GetFriends(targetID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"user":    user,
		"friends": friends,
	}, "")
}

// GetFriends 返回用户的好友列表
func (h *UserHandler) GetFriends(c *gin.Context) {
	targetID, ok := pathUserID(c)
	if !ok {
		return
	}

	friends, err := h.friendService.GetFriends(targetID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"friends": friends,
	}, "")
}

// SendFriendRequest 向目标用户发送好友请求
func (h *UserHandler) SendFriendRequest(c *gin.Context) {
	targetID, ok := pathUserID(c)
	if !ok {
		return
	}
	userID := c.GetInt("user_id")

	if err := h.friendService.SendRequest(userID, targetID); err != nil {
		util.Logger.Warn("发送好友请求失败",
			zap.Int("user_id", userID),
			zap.Int("target_id", targetID),
			zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "好友请求已发送")
}

// AcceptFriendRequest 接受来自目标用户的好友请求
func (h *UserHandler) AcceptFriendRequest(c *gin.Context) {
	requesterID, ok := pathUserID(c)
	if !ok {
		return
	}
	userID := c.GetInt("user_id")

	if err := h.friendService.AcceptRequest(userID, requesterID); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "好友请求已接受")
}

// RejectFriendRequest 拒绝来自目标用户的好友请求
func (h *UserHandler) RejectFriendRequest(c *gin.Context) {
	requesterID, ok := pathUserID(c)
	if !ok {
		return
	}
	userID := c.GetInt("user_id")

	if err := h.friendService.RejectRequest(userID, requesterID); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "好友请求已拒绝")
}

// RemoveFriend 删除好友关系
func (h *UserHandler) RemoveFriend(c *gin.Context) {
	friendID, ok := pathUserID(c)
	if !ok {
		return
	}
	userID := c.GetInt("user_id")

	if err := h.friendService.RemoveFriend(userID, friendID); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "好友已删除")
}

// GetFriendRequests 返回当前用户收到的待处理好友请求
func (h *UserHandler) GetFriendRequests(c *gin.Context) {
	userID := c.GetInt("user_id")

	requests, err := h.friendService.GetFriendRequests(userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"requests": requests,
	}, "")
}

func pathUserID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的用户ID", err))
		return 0, false
	}
	return id, true
}
