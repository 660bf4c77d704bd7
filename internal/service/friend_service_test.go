package service

import (
	"fmt"
	"sync"
	"testing"

	"social-backend/internal/errors"
	"social-backend/internal/model"
	"social-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
)

func newFriendFixture(t *testing.T) (*memory.UserRepository, *FriendService) {
	t.Helper()
	userRepo := memory.NewUserRepository()
	for _, username := range []string{"alice", "bob", "carol"} {
		err := userRepo.Create(&model.User{Username: username, FullName: username})
		assert.NoError(t, err)
	}
	notification := NewNotificationService(userRepo)
	email := NewEmailService(userRepo)
	return userRepo, NewFriendService(userRepo, notification, email)
}

// TestSendRequestToSelf 测试不能给自己发送好友请求
func TestSendRequestToSelf(t *testing.T) {
	_, svc := newFriendFixture(t)

	err := svc.SendRequest(1, 1)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrSelfRequest, errors.CodeOf(err))
}

// TestSendRequestToUnknownUser 测试目标用户不存在
func TestSendRequestToUnknownUser(t *testing.T) {
	_, svc := newFriendFixture(t)

	err := svc.SendRequest(1, 99)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrUserNotFound, errors.CodeOf(err))
}

// TestSendAndAcceptRequest 测试完整的请求-接受流程，好友关系必须对称
func TestSendAndAcceptRequest(t *testing.T) {
	userRepo, svc := newFriendFixture(t)

	assert.NoError(t, svc.SendRequest(1, 2))

	bob, _ := userRepo.FindByID(2)
	assert.True(t, bob.HasPendingRequestFrom(1))
	assert.False(t, bob.IsFriend(1))

	// 好友请求产生通知
	assert.Len(t, bob.Notifications, 1)
	assert.Equal(t, model.NotificationFriendRequest, bob.Notifications[0].Type)
	assert.Equal(t, 1, bob.Notifications[0].FromUserID)

	assert.NoError(t, svc.AcceptRequest(2, 1))

	alice, _ := userRepo.FindByID(1)
	bob, _ = userRepo.FindByID(2)
	assert.True(t, alice.IsFriend(2))
	assert.True(t, bob.IsFriend(1))
	assert.False(t, bob.HasPendingRequestFrom(1))

	// 接受后请求方收到通知
	assert.Len(t, alice.Notifications, 1)
	assert.Equal(t, model.NotificationFriendAccept, alice.Notifications[0].Type)
}

// TestDuplicateRequestConflict 测试重复请求和已是好友时的冲突
func TestDuplicateRequestConflict(t *testing.T) {
	_, svc := newFriendFixture(t)

	assert.NoError(t, svc.SendRequest(1, 2))

	// 同方向重复请求
	err := svc.SendRequest(1, 2)
	assert.Equal(t, errors.ErrRelationConflict, errors.CodeOf(err))

	// 反方向请求同样冲突
	err = svc.SendRequest(2, 1)
	assert.Equal(t, errors.ErrRelationConflict, errors.CodeOf(err))

	// 已是好友后继续冲突
	assert.NoError(t, svc.AcceptRequest(2, 1))
	err = svc.SendRequest(1, 2)
	assert.Equal(t, errors.ErrRelationConflict, errors.CodeOf(err))
}

// TestSendRequestConcurrent 测试多个用户同时发送好友请求时请求不丢失
func TestSendRequestConcurrent(t *testing.T) {
	userRepo, svc := newFriendFixture(t)

	const senders = 20
	for i := 0; i < senders; i++ {
		assert.NoError(t, userRepo.Create(&model.User{Username: fmt.Sprintf("sender%d", i)}))
	}

	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(fromID int) {
			defer wg.Done()
			assert.NoError(t, svc.SendRequest(fromID, 1))
		}(i + 4)
	}
	wg.Wait()

	alice, _ := userRepo.FindByID(1)
	assert.Len(t, alice.FriendRequests, senders)
}

// TestAcceptWithoutRequest 测试接受不存在的请求
func TestAcceptWithoutRequest(t *testing.T) {
	_, svc := newFriendFixture(t)

	err := svc.AcceptRequest(2, 1)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrRelationConflict, errors.CodeOf(err))
}

// TestRejectRequest 测试拒绝请求后双方都不是好友
func TestRejectRequest(t *testing.T) {
	userRepo, svc := newFriendFixture(t)

	assert.NoError(t, svc.SendRequest(1, 2))
	assert.NoError(t, svc.RejectRequest(2, 1))

	bob, _ := userRepo.FindByID(2)
	assert.False(t, bob.HasPendingRequestFrom(1))
	assert.False(t, bob.IsFriend(1))

	// 拒绝后可以重新发送请求
	assert.NoError(t, svc.SendRequest(1, 2))
}

// TestRemoveFriend 测试删除好友后关系对称解除
func TestRemoveFriend(t *testing.T) {
	userRepo, svc := newFriendFixture(t)

	assert.NoError(t, svc.SendRequest(1, 2))
	assert.NoError(t, svc.AcceptRequest(2, 1))
	assert.NoError(t, svc.RemoveFriend(1, 2))

	alice, _ := userRepo.FindByID(1)
	bob, _ := userRepo.FindByID(2)
	assert.False(t, alice.IsFriend(2))
	assert.False(t, bob.IsFriend(1))

	// 非好友时删除失败
	err := svc.RemoveFriend(1, 3)
	assert.Equal(t, errors.ErrRelationConflict, errors.CodeOf(err))
}

// TestGetFriendRequests 测试待处理请求列表返回请求方摘要
func TestGetFriendRequests(t *testing.T) {
	_, svc := newFriendFixture(t)

	assert.NoError(t, svc.SendRequest(1, 3))
	assert.NoError(t, svc.SendRequest(2, 3))

	requests, err := svc.GetFriendRequests(3)
	assert.NoError(t, err)
	assert.Len(t, requests, 2)
	assert.Equal(t, "alice", requests[0].Username)
	assert.Equal(t, "bob", requests[1].Username)
}
