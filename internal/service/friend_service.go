package service

import (
	"social-backend/internal/errors"
	"social-backend/internal/model"
	"social-backend/internal/repository/interfaces"
	"social-backend/internal/util"

	"go.uber.org/zap"
)

// FriendService 处理好友关系的完整状态机：
// 发送请求 -> 接受/拒绝 -> 好友 -> 删除。
// 好友关系始终是对称的，接受请求时双方同时写入。
type FriendService struct {
	userRepo     interfaces.UserRepository
	notification *NotificationService
	email        *EmailService
}

func NewFriendService(userRepo interfaces.UserRepository, notification *NotificationService, email *EmailService) *FriendService {
	return &FriendService{
		userRepo:     userRepo,
		notification: notification,
		email:        email,
	}
}

// SendRequest 发送好友请求
func (s *FriendService) SendRequest(fromID, toID int) error {
	if fromID == toID {
		return errors.New(errors.ErrSelfRequest, "不能向自己发送好友请求")
	}

	from, err := s.userRepo.FindByID(fromID)
	if err != nil {
		return err
	}
	if from == nil {
		return errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	// 对方已经先发来请求时不允许重复请求，应直接接受
	if from.HasPendingRequestFrom(toID) {
		return errors.New(errors.ErrRelationConflict, "对方已向你发送好友请求")
	}

	// 校验和写入都在目标用户的仓库锁内完成，重复请求不会写入两次
	found, err := s.userRepo.Mutate(toID, func(to *model.User) error {
		if to.IsFriend(fromID) {
			return errors.New(errors.ErrRelationConflict, "你们已经是好友")
		}
		if to.HasPendingRequestFrom(fromID) {
			return errors.New(errors.ErrRelationConflict, "好友请求已发送，等待对方处理")
		}
		to.FriendRequests = append(to.FriendRequests, fromID)
		return nil
	})
	if err != nil {
		return err
	}
	if !found {
		return errors.New(errors.ErrUserNotFound, "目标用户不存在")
	}

	if err := s.notification.Notify(toID, fromID, model.NotificationFriendRequest, nil); err != nil {
		util.Logger.Error("创建好友请求通知失败", zap.Error(err))
	}
	s.email.SendFriendRequestEmail(toID, fromID)

	util.Logger.Info("好友请求已发送",
		zap.Int("from_user_id", fromID),
		zap.Int("to_user_id", toID))
	return nil
}

// AcceptRequest 接受好友请求，双方互相加入好友列表
func (s *FriendService) AcceptRequest(userID, requesterID int) error {
	requester, err := s.userRepo.FindByID(requesterID)
	if err != nil {
		return err
	}
	if requester == nil {
		return errors.New(errors.ErrUserNotFound, "请求方用户不存在")
	}

	found, err := s.userRepo.Mutate(userID, func(user *model.User) error {
		if !user.HasPendingRequestFrom(requesterID) {
			return errors.New(errors.ErrRelationConflict, "没有来自该用户的好友请求")
		}
		user.FriendRequests = removeID(user.FriendRequests, requesterID)
		if !user.IsFriend(requesterID) {
			user.Friends = append(user.Friends, requesterID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !found {
		return errors.New(errors.ErrUserNotFound, "用户不存在")
	}

	if _, err := s.userRepo.Mutate(requesterID, func(requester *model.User) error {
		if !requester.IsFriend(userID) {
			requester.Friends = append(requester.Friends, userID)
		}
		return nil
	}); err != nil {
		return err
	}

	if err := s.notification.Notify(requesterID, userID, model.NotificationFriendAccept, nil); err != nil {
		util.Logger.Error("创建好友接受通知失败", zap.Error(err))
	}
	s.email.SendFriendAcceptEmail(requesterID, userID)

	util.Logger.Info("好友请求已接受",
		zap.Int("user_id", userID),
		zap.Int("requester_id", requesterID))
	return nil
}

// RejectRequest 拒绝好友请求
func (s *FriendService) RejectRequest(userID, requesterID int) error {
	found, err := s.userRepo.Mutate(userID, func(user *model.User) error {
		if !user.HasPendingRequestFrom(requesterID) {
			return errors.New(errors.ErrRelationConflict, "没有来自该用户的好友请求")
		}
		user.FriendRequests = removeID(user.FriendRequests, requesterID)
		return nil
	})
	if err != nil {
		return err
	}
	if !found {
		return errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	return nil
}

// RemoveFriend 删除好友，双方的好友列表同时移除
func (s *FriendService) RemoveFriend(userID, friendID int) error {
	friend, err := s.userRepo.FindByID(friendID)
	if err != nil {
		return err
	}
	if friend == nil {
		return errors.New(errors.ErrUserNotFound, "好友用户不存在")
	}

	found, err := s.userRepo.Mutate(userID, func(user *model.User) error {
		if !user.IsFriend(friendID) {
			return errors.New(errors.ErrRelationConflict, "你们不是好友")
		}
		user.Friends = removeID(user.Friends, friendID)
		return nil
	})
	if err != nil {
		return err
	}
	if !found {
		return errors.New(errors.ErrUserNotFound, "用户不存在")
	}

	if _, err := s.userRepo.Mutate(friendID, func(friend *model.User) error {
		friend.Friends = removeID(friend.Friends, userID)
		return nil
	}); err != nil {
		return err
	}

	util.Logger.Info("好友关系已解除",
		zap.Int("user_id", userID),
		zap.Int("friend_id", friendID))
	return nil
}

// GetFriends 返回用户的好友摘要列表
func (s *FriendService) GetFriends(userID int) ([]*model.UserSummary, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	return s.summaries(user.Friends)
}

// GetFriendRequests 返回待处理好友请求的发起人摘要列表
func (s *FriendService) GetFriendRequests(userID int) ([]*model.UserSummary, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	return s.summaries(user.FriendRequests)
}

func (s *FriendService) summaries(ids []int) ([]*model.UserSummary, error) {
	result := []*model.UserSummary{}
	for _, id := range ids {
		user, err := s.userRepo.FindByID(id)
		if err != nil {
			return nil, err
		}
		if user == nil {
			// 好友列表引用的用户已不存在时直接跳过
			continue
		}
		result = append(result, user.Summary())
	}
	return result, nil
}

func removeID(ids []int, target int) []int {
	result := make([]int, 0, len(ids))
	for _, id := range ids {
		if id != target {
			result = append(result, id)
		}
	}
	return result
}
